// Package create implements the create directive: idempotent creation of
// empty directories. Its Creator is also used by the link directive to
// make missing parent directories.
package create
