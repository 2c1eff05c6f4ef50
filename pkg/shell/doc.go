// Package shell runs recipe command lines.
//
// Every line is handed to a shell interpreter (/bin/sh -c by default) so
// pipes, redirections and && chains behave as written. Lines run one after
// the other; the first non-zero exit stops the sequence and is reported as a
// COMMAND_FAILED error carrying the line and its exit code.
package shell
