// Package handlers defines the directive handler contract and the registry
// the dispatcher looks directives up in.
//
// A handler owns one directive of the install configuration (link, create).
// It receives the directive's raw YAML data together with the defaults in
// effect and returns a report with one result per entry. Malformed data is
// returned as an error and aborts the directive before any entry is
// processed; everything else is recorded in the report.
package handlers
