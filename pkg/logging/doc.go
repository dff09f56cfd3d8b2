// Package logging configures zerolog for dotlink and exposes the leveled
// Sink that directive handlers write their per-entry messages to.
package logging
