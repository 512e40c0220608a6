package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/fsutil"
)

// LoadDir parses every .hcl file below dir. Diagnostics from all files are
// collected before failing so one run reports every problem.
func LoadDir(ctx context.Context, dir string) ([]*TaskDef, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading task manifests...", "path", dir)

	filePaths, err := fsutil.FindFilesByExtension(dir, ".hcl")
	if err != nil {
		logger.Error("Failed to walk manifests directory", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to walk manifests directory %s: %w", dir, err)
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl manifest files found in path", "path", dir)
		return nil, nil
	}
	logger.Debug("Found HCL files to load", "files", filePaths)

	parser := hclparse.NewParser()
	var defs []*TaskDef
	var diags hcl.Diagnostics

	for _, filePath := range filePaths {
		file, parseDiags := parser.ParseHCLFile(filePath)
		diags = append(diags, parseDiags...)
		if parseDiags.HasErrors() {
			continue
		}

		fileDefs, fileDiags := ParseFile(ctx, file, filePath)
		diags = append(diags, fileDiags...)
		defs = append(defs, fileDefs...)
	}

	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to load task manifests from %s: %w", dir, diags)
	}

	logger.Info("Task manifests loaded.", "tasks", len(defs), "files", len(filePaths))
	return defs, nil
}

// ParseSource parses manifest source held in memory. filename is used in
// diagnostics only.
func ParseSource(ctx context.Context, src []byte, filename string) ([]*TaskDef, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}
	defs, diags := ParseFile(ctx, file, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}
	return defs, nil
}
