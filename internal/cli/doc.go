// Package cli is responsible for parsing the process-level flags, validating
// them and handling exit codes. Everything after the flags is handed to the
// task tree untouched.
package cli
