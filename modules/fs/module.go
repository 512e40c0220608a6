// Package fs provides the 'fs cat' and 'fs ls' tasks. Their declarations live
// in manifest.hcl, which is compiled into the binary.
package fs

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/fsarg"
	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

//go:embed manifest.hcl
var manifestSrc []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// CatInput defines the inputs of 'fs cat'.
type CatInput struct {
	File cty.Value `cty:"file"`
}

// LsInput defines the inputs of 'fs ls'.
type LsInput struct {
	Dir cty.Value `cty:"dir"`
	All *bool     `cty:"all"`
}

// OnRunFsCat returns the contents of the file argument.
func OnRunFsCat(ctx context.Context, input *CatInput) (any, error) {
	f := fsarg.AsFile(input.File)
	if f == nil {
		return nil, errors.New("file argument was not materialized")
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", f.Name(), err)
	}
	ctxlog.FromContext(ctx).Debug("File read.", "path", f.Name(), "bytes", len(data))

	return strings.TrimSuffix(string(data), "\n"), nil
}

// OnRunFsLs returns the names of the directory's entries, directories
// suffixed with a slash.
func OnRunFsLs(ctx context.Context, input *LsInput) (any, error) {
	path := "."
	if d := fsarg.AsDirectory(input.Dir); d != nil {
		path = d.Path
	}
	all := input.All != nil && *input.All

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list '%s': %w", path, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !all && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	ctxlog.FromContext(ctx).Debug("Directory listed.", "path", path, "entries", len(names))

	return names, nil
}

// Register registers the manifest and its handlers with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.MustAddManifestSource("fs/manifest.hcl", manifestSrc)
	r.RegisterHandler("OnRunFsCat", registry.Typed(OnRunFsCat))
	r.RegisterHandler("OnRunFsLs", registry.Typed(OnRunFsLs))
}
