package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/gridtask/internal/argtype"
)

// typeKeywordToKind converts the expression of a `type` attribute, a bare
// keyword such as `string`, into its argtype.Kind.
func typeKeywordToKind(expr hcl.Expression) (argtype.Kind, hcl.Diagnostics) {
	traversal, travDiags := hcl.AbsTraversalForExpr(expr)
	if travDiags.HasErrors() || len(traversal) != 1 {
		return 0, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "The 'type' attribute must be a bare keyword: string, number, bool, enum, file or directory.",
			Subject:  expr.Range().Ptr(),
		}}
	}

	name := traversal.RootName()
	kind, err := argtype.ParseKind(name)
	if err != nil {
		return 0, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported type",
			Detail:   fmt.Sprintf("The keyword '%s' is not a valid type. Supported types are: string, number, bool, enum, file, directory.", name),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return kind, nil
}
