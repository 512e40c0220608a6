package argtype

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Kind is the closed set of semantic types an argument or option may declare.
type Kind int

const (
	String Kind = iota
	Boolean
	Number
	Enum
	File
	Directory
)

var kindNames = map[Kind]string{
	String:    "string",
	Boolean:   "bool",
	Number:    "number",
	Enum:      "enum",
	File:      "file",
	Directory: "directory",
}

// String returns the manifest keyword for k.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Resource reports whether values of k are materialized from the file system.
func (k Kind) Resource() bool {
	return k == File || k == Directory
}

// ParseKind converts a manifest keyword such as "string" or "bool" into a Kind.
func ParseKind(keyword string) (Kind, error) {
	switch strings.ToLower(keyword) {
	case "string":
		return String, nil
	case "bool", "boolean":
		return Boolean, nil
	case "number":
		return Number, nil
	case "enum":
		return Enum, nil
	case "file":
		return File, nil
	case "directory", "dir":
		return Directory, nil
	}
	return 0, fmt.Errorf("unknown type %q, supported types are: string, number, bool, enum, file, directory", keyword)
}

// PrimitiveType returns the cty type that the coercion layer produces for
// the primitive kinds. Resource kinds have capsule types owned by the fsarg
// package and report ok=false here.
func PrimitiveType(k Kind) (ty cty.Type, ok bool) {
	switch k {
	case String, Enum:
		return cty.String, true
	case Boolean:
		return cty.Bool, true
	case Number:
		return cty.Number, true
	}
	return cty.NilType, false
}
