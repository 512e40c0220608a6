// Package app contains the core application logic. It registers the built-in
// modules and manifest tasks under one root task and dispatches command lines
// through it, decoupled from any specific entrypoint like a CLI.
package app
