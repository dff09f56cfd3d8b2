// Package ui renders the outcome of an install run for people (styled
// terminal or plain text) and for tools (JSON).
package ui
