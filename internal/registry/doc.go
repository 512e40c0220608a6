// Package registry is the glue between task manifests and compiled Go code.
//
// The Registry maps the handler names used in manifests (e.g. "OnRunGreet")
// to Go handler functions and their typed input structs, keeps the parsed
// manifest definitions, and holds the tasks that built-in modules declare
// directly in Go. Before any task tree is built, the registry is validated
// so that a manifest and the Go struct behind its handler agree on every
// input name and type.
package registry
