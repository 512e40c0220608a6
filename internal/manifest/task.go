// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines TaskDef, the parsed form of a `task` block in a manifest.
//
// A manifest declares the shape of a command: its positional arguments, its
// options and its nested sub-commands. The Go code that runs the command is
// referenced by name through the `handler` attribute and resolved against the
// registry when the task tree is built.
//
//	task "fs" {
//	  description = "File helpers"
//
//	  task "cat" {
//	    handler = "OnRunCat"
//	    argument "file" {
//	      type     = file
//	      required = true
//	    }
//	  }
//	}
package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/gridtask/internal/ctxlog"
)

// TaskDef is the format-agnostic representation of one `task` block.
type TaskDef struct {
	Name        string
	Description string
	// Handler names a registered handler. Empty means a namespace task.
	Handler string

	Arguments []InputDef
	Options   []InputDef
	SubTasks  []*TaskDef

	FilePath string
	DefRange hcl.Range
}

// rootSchema is the top level of a manifest file: one or more task blocks.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "task", LabelNames: []string{"name"}},
	},
}

// taskBodySchema is the body of a task block.
var taskBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "handler"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "argument", LabelNames: []string{"name"}},
		{Type: "option", LabelNames: []string{"name"}},
		{Type: "task", LabelNames: []string{"name"}},
	},
}

// ParseFile decodes every top-level task block of an HCL file.
func ParseFile(ctx context.Context, file *hcl.File, filePath string) ([]*TaskDef, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing task definitions from file", "file_path", filePath)

	if file == nil {
		return nil, hcl.Diagnostics{{Severity: hcl.DiagError, Summary: "HCL file is nil"}}
	}

	content, diags := file.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	defs, taskDiags := parseTaskBlocks(content.Blocks.OfType("task"), filePath)
	diags = append(diags, taskDiags...)
	if diags.HasErrors() {
		return nil, diags
	}

	logger.Debug("Successfully parsed task definitions", "file_path", filePath, "count", len(defs))
	return defs, diags
}

func parseTaskBlocks(blocks hcl.Blocks, filePath string) ([]*TaskDef, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	defs := make([]*TaskDef, 0, len(blocks))
	seen := make(map[string]hcl.Range)

	for _, block := range blocks {
		name := block.Labels[0]
		if prev, exists := seen[name]; exists {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate task definition",
				Detail:   fmt.Sprintf("A task named '%s' was already defined at %s.", name, prev),
				Subject:  block.DefRange.Ptr(),
			})
			continue
		}
		seen[name] = block.DefRange

		def, taskDiags := parseTaskBlock(block, filePath)
		diags = append(diags, taskDiags...)
		if def != nil {
			defs = append(defs, def)
		}
	}
	return defs, diags
}

func parseTaskBlock(block *hcl.Block, filePath string) (*TaskDef, hcl.Diagnostics) {
	content, diags := block.Body.Content(taskBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	def := &TaskDef{
		Name:     block.Labels[0],
		FilePath: filePath,
		DefRange: block.DefRange,
	}

	if attr, exists := content.Attributes["description"]; exists {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &def.Description)...)
	}
	if attr, exists := content.Attributes["handler"]; exists {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &def.Handler)...)
	}

	var inputDiags hcl.Diagnostics
	def.Arguments, inputDiags = parseInputs(content.Blocks.OfType("argument"))
	diags = append(diags, inputDiags...)

	def.Options, inputDiags = parseInputs(content.Blocks.OfType("option"))
	diags = append(diags, inputDiags...)

	var subDiags hcl.Diagnostics
	def.SubTasks, subDiags = parseTaskBlocks(content.Blocks.OfType("task"), filePath)
	diags = append(diags, subDiags...)

	return def, diags
}

// Walk calls fn for def and every nested sub-task, depth first, with the
// path of task names leading to each.
func (def *TaskDef) Walk(fn func(path []string, d *TaskDef)) {
	def.walk(nil, fn)
}

func (def *TaskDef) walk(parent []string, fn func(path []string, d *TaskDef)) {
	path := append(append([]string(nil), parent...), def.Name)
	fn(path, def)
	for _, sub := range def.SubTasks {
		sub.walk(path, fn)
	}
}
