// Package ui renders user-facing output: prefixed notices on the command's
// streams and human-readable logging of shell command lifecycle events.
package ui
