package s3

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/specialistvlad/gridtask/internal/argtype"
	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/decl"
	"github.com/specialistvlad/gridtask/internal/fsarg"
	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/specialistvlad/gridtask/internal/task"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Client sends the upload requests. http.DefaultClient when nil.
	Client *http.Client
}

// UploadInput defines the inputs of 's3 upload'.
type UploadInput struct {
	File      cty.Value `cty:"file"`
	UploadURL string    `cty:"url"`
}

// OnRunUpload uploads the file argument to a pre-signed URL.
func (m *Module) OnRunUpload(ctx context.Context, input *UploadInput) (any, error) {
	file := fsarg.AsFile(input.File)
	if file == nil {
		return nil, errors.New("file argument was not materialized")
	}
	logger := ctxlog.FromContext(ctx).With("action", "upload")

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file stats for '%s': %w", file.Name(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, input.UploadURL, file)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 upload request: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(file.Name()))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = stat.Size()

	logger.Info("Uploading file to S3", "source", file.Name(), "size", stat.Size(), "contentType", contentType)

	client := m.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute S3 upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("S3 upload failed with status: %s", resp.Status)
	}

	logger.Info("Successfully uploaded file", "status", resp.Status)

	return cty.ObjectVal(map[string]cty.Value{
		"success": cty.BoolVal(true),
		"status":  cty.StringVal(resp.Status),
		"bytes":   cty.NumberIntVal(stat.Size()),
	}), nil
}

// Register registers the 's3' namespace and its 'upload' task.
func (m *Module) Register(r *registry.Registry) {
	upload := registry.MustTask("upload", func(b *task.Builder) error {
		b.Describe("Uploads a file to a pre-signed S3 URL with a PUT request.")
		if err := b.AddArgument("file", argtype.File, func(c *decl.Config) {
			c.Description = "File to upload."
			c.Required = true
		}); err != nil {
			return err
		}
		if err := b.AddArgument("url", argtype.String, func(c *decl.Config) {
			c.Description = "Pre-signed upload URL."
			c.Required = true
		}); err != nil {
			return err
		}
		b.Handle(task.Bind(m.OnRunUpload))
		return nil
	})

	r.RegisterTask(registry.MustTask("s3", func(b *task.Builder) error {
		b.Describe("S3 object storage helpers.")
		b.AddSubTask(upload)
		return nil
	}))
}
