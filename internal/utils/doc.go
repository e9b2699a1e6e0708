// Package utils provides shared infrastructure for the command-line surface:
// logger construction, layered configuration loading, context plumbing for
// command execution, and an eagerly flushing writer for interactive prompts.
package utils
