// Package types defines the core types and interfaces used throughout dotlink.
// This includes the filesystem interface, the declarative link and create
// entries decoded from the install configuration, their resolved policies,
// and the per-entry outcomes that handlers report.
package types
