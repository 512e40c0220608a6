// Package fsarg materializes file and directory arguments.
//
// A File value is an opened *os.File and a Directory value is a *Directory
// descriptor; both travel through the parameter record as cty capsule values.
// Whether a path may already exist, may be new, or both, is controlled by a
// Mode attached to the declaration.
package fsarg

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"

	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/taskerr"
	"github.com/zclconf/go-cty/cty"
)

var (
	// FileType is the cty capsule type wrapping an opened os.File.
	FileType = cty.Capsule("file", reflect.TypeOf(os.File{}))
	// DirectoryType is the cty capsule type wrapping a Directory.
	DirectoryType = cty.Capsule("directory", reflect.TypeOf(Directory{}))
)

// Mode selects which path states a materializer accepts.
type Mode struct {
	AllowNew      bool
	AllowExisting bool
}

// DefaultMode accepts existing paths only.
func DefaultMode() Mode {
	return Mode{AllowNew: false, AllowExisting: true}
}

func (m Mode) validate() error {
	if !m.AllowNew && !m.AllowExisting {
		return taskerr.Configf(taskerr.NoMaterializeMode, "neither allow_new nor allow_existing is set, no path can be accepted")
	}
	return nil
}

// Directory describes a directory argument. It is not created on the
// caller's behalf; handlers that accept new directories call Create.
type Directory struct {
	Path    string
	Existed bool
}

// Create makes the directory and any missing parents.
func (d *Directory) Create() error {
	return os.MkdirAll(d.Path, 0o755)
}

// Materializer turns a path token into a file handle or directory descriptor.
type Materializer interface {
	OpenFile(ctx context.Context, path string, mode Mode) (*os.File, error)
	OpenDirectory(ctx context.Context, path string, mode Mode) (*Directory, error)
}

// OS materializes paths against the local file system. Relative paths are
// resolved against Dir when it is set, otherwise against the process
// working directory.
type OS struct {
	Dir string
}

func (o OS) resolve(path string) string {
	if o.Dir != "" && !filepath.IsAbs(path) {
		return filepath.Join(o.Dir, path)
	}
	return filepath.Clean(path)
}

// OpenFile implements Materializer.
func (o OS) OpenFile(ctx context.Context, path string, mode Mode) (*os.File, error) {
	if err := mode.validate(); err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(ctx)
	full := o.resolve(path)

	info, err := os.Stat(full)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if !mode.AllowNew {
			return nil, taskerr.Typef(taskerr.PathNotFound, "file %q does not exist", path)
		}
		logger.Debug("Creating new file for argument.", "path", full)
		f, err := os.OpenFile(full, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return nil, taskerr.Typef(taskerr.PathExists, "cannot create file %q: %v", path, err)
		}
		return f, nil
	case err != nil:
		return nil, taskerr.Typef(taskerr.PathNotFound, "cannot access %q: %v", path, err)
	}

	if info.IsDir() {
		return nil, taskerr.Typef(taskerr.NotAFile, "%q is a directory, not a file", path)
	}
	if !mode.AllowExisting {
		return nil, taskerr.Typef(taskerr.PathExists, "file %q already exists", path)
	}

	flag := os.O_RDONLY
	if mode.AllowNew {
		flag = os.O_RDWR
	}
	logger.Debug("Opening existing file for argument.", "path", full, "writable", mode.AllowNew)
	f, err := os.OpenFile(full, flag, 0)
	if err != nil {
		return nil, taskerr.Typef(taskerr.PathNotFound, "cannot open %q: %v", path, err)
	}
	return f, nil
}

// OpenDirectory implements Materializer.
func (o OS) OpenDirectory(ctx context.Context, path string, mode Mode) (*Directory, error) {
	if err := mode.validate(); err != nil {
		return nil, err
	}
	full := o.resolve(path)

	info, err := os.Stat(full)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if !mode.AllowNew {
			return nil, taskerr.Typef(taskerr.PathNotFound, "directory %q does not exist", path)
		}
		return &Directory{Path: full, Existed: false}, nil
	case err != nil:
		return nil, taskerr.Typef(taskerr.PathNotFound, "cannot access %q: %v", path, err)
	}

	if !info.IsDir() {
		return nil, taskerr.Typef(taskerr.NotADirectory, "%q is a file, not a directory", path)
	}
	if !mode.AllowExisting {
		return nil, taskerr.Typef(taskerr.PathExists, "directory %q already exists", path)
	}
	ctxlog.FromContext(ctx).Debug("Resolved existing directory for argument.", "path", full)
	return &Directory{Path: full, Existed: true}, nil
}
