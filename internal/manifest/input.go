package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/gridtask/internal/argtype"
	"github.com/specialistvlad/gridtask/internal/decl"
)

// InputDef is one `argument` or `option` block.
type InputDef struct {
	Name        string
	Kind        argtype.Kind
	Description string
	Required    bool
	Values      []string

	// AllowNew and AllowExisting are nil when the manifest leaves the
	// default in place.
	AllowNew      *bool
	AllowExisting *bool

	DefRange hcl.Range
}

// Configure applies the definition to a declaration config.
func (in InputDef) Configure(c *decl.Config) {
	c.Description = in.Description
	c.Required = in.Required
	c.Values = in.Values
	if in.AllowNew != nil {
		c.AllowNew = *in.AllowNew
	}
	if in.AllowExisting != nil {
		c.AllowExisting = *in.AllowExisting
	}
}

var inputBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		// `type` is required, but checked manually for a better message.
		{Name: "type"},
		{Name: "description"},
		{Name: "required"},
		{Name: "values"},
		{Name: "allow_new"},
		{Name: "allow_existing"},
	},
}

// parseInputs decodes argument or option blocks in source order.
func parseInputs(blocks hcl.Blocks) ([]InputDef, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	inputs := make([]InputDef, 0, len(blocks))
	seen := make(map[string]struct{})

	for _, block := range blocks {
		name := block.Labels[0]
		if _, exists := seen[name]; exists {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  fmt.Sprintf("Duplicate %s definition", block.Type),
				Detail:   fmt.Sprintf("An %s named '%s' has already been defined.", block.Type, name),
				Subject:  &block.DefRange,
			})
			continue
		}
		seen[name] = struct{}{}

		content, contentDiags := block.Body.Content(inputBodySchema)
		diags = append(diags, contentDiags...)
		if contentDiags.HasErrors() {
			continue
		}

		typeAttr, exists := content.Attributes["type"]
		if !exists {
			missing := block.Body.MissingItemRange()
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Missing 'type' attribute",
				Detail:   fmt.Sprintf("The 'type' attribute is required for %s '%s'.", block.Type, name),
				Subject:  &missing,
			})
			continue
		}

		kind, typeDiags := typeKeywordToKind(typeAttr.Expr)
		diags = append(diags, typeDiags...)
		if typeDiags.HasErrors() {
			continue
		}

		in := InputDef{Name: name, Kind: kind, DefRange: block.DefRange}

		if attr, ok := content.Attributes["description"]; ok {
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &in.Description)...)
		}
		if attr, ok := content.Attributes["required"]; ok {
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &in.Required)...)
		}
		if attr, ok := content.Attributes["allow_new"]; ok {
			in.AllowNew = new(bool)
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, in.AllowNew)...)
		}
		if attr, ok := content.Attributes["allow_existing"]; ok {
			in.AllowExisting = new(bool)
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, in.AllowExisting)...)
		}

		valuesAttr, hasValues := content.Attributes["values"]
		if hasValues {
			diags = append(diags, gohcl.DecodeExpression(valuesAttr.Expr, nil, &in.Values)...)
		}

		switch {
		case kind == argtype.Enum && len(in.Values) == 0:
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Enum without values",
				Detail:   fmt.Sprintf("The enum %s '%s' must list at least one allowed value in 'values'.", block.Type, name),
				Subject:  &block.DefRange,
			})
			continue
		case kind != argtype.Enum && hasValues:
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unexpected 'values' attribute",
				Detail:   fmt.Sprintf("Only enum inputs take 'values'; '%s' is of type %s.", name, kind),
				Subject:  valuesAttr.Range.Ptr(),
			})
			continue
		case !kind.Resource() && (in.AllowNew != nil || in.AllowExisting != nil):
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unexpected path mode",
				Detail:   fmt.Sprintf("'allow_new' and 'allow_existing' only apply to file and directory inputs; '%s' is of type %s.", name, kind),
				Subject:  &block.DefRange,
			})
			continue
		}

		inputs = append(inputs, in)
	}

	return inputs, diags
}
