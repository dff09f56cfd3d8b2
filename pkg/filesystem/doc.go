// Package filesystem provides filesystem implementations for dotlink.
//
// This package contains implementations of the types.FS interface. The OS
// implementation is what the CLI wires in; tests wrap it to inject faults.
package filesystem
