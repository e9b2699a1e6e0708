// Package execshell provides structured helpers for invoking the git CLI.
//
// It wraps os/exec with zap lifecycle logging via ShellExecutor, exposes
// OSCommandRunner for default process execution, and defines the typed
// failure errors used throughout wtx to surface git stderr verbatim.
package execshell
