// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package decl holds the immutable declarations of a task's positional
// arguments and named options.
//
// A declaration is built in two phases: a mutable Config is handed to the
// caller's configure function exactly once, and the result is frozen into a
// Decl. Nothing can change a Decl after New returns.
package decl

import (
	"context"
	"errors"
	"slices"

	"github.com/specialistvlad/gridtask/internal/argtype"
	"github.com/specialistvlad/gridtask/internal/fsarg"
	"github.com/specialistvlad/gridtask/internal/taskerr"
	"github.com/zclconf/go-cty/cty"
)

// Role tells whether a declaration is positional or named.
type Role int

const (
	Argument Role = iota
	Option
)

// Config is the mutation surface offered to a configure function.
type Config struct {
	Description string
	Required    bool

	// Values lists the allowed values of an Enum.
	Values []string

	// AllowNew and AllowExisting apply to File and Directory.
	AllowNew      bool
	AllowExisting bool
}

// Decl is one frozen argument or option declaration.
type Decl struct {
	name        string
	role        Role
	kind        argtype.Kind
	description string
	required    bool
	values      []string
	mode        fsarg.Mode
}

// New builds a declaration, applying configure (which may be nil) to a
// Config seeded with the defaults.
func New(role Role, name string, kind argtype.Kind, configure func(*Config)) (*Decl, error) {
	if !kind.Valid() {
		return nil, taskerr.Configf(taskerr.UnknownType, "unsupported type %s", kind).WithField(label(role, name))
	}

	def := fsarg.DefaultMode()
	cfg := Config{AllowNew: def.AllowNew, AllowExisting: def.AllowExisting}
	if configure != nil {
		configure(&cfg)
	}

	return &Decl{
		name:        name,
		role:        role,
		kind:        kind,
		description: cfg.Description,
		required:    cfg.Required,
		values:      slices.Clone(cfg.Values),
		mode:        fsarg.Mode{AllowNew: cfg.AllowNew, AllowExisting: cfg.AllowExisting},
	}, nil
}

func label(role Role, name string) string {
	if role == Argument {
		return "<" + name + ">"
	}
	return "--" + name
}

// Name is the declared name without decoration.
func (d *Decl) Name() string { return d.name }

// Role tells arguments and options apart.
func (d *Decl) Role() Role { return d.role }

// Kind is the declared semantic type.
func (d *Decl) Kind() argtype.Kind { return d.kind }

// Description is the help text, possibly empty.
func (d *Decl) Description() string { return d.description }

// Required reports whether a value must be supplied.
func (d *Decl) Required() bool { return d.required }

// Mode is the materialization mode of File and Directory inputs.
func (d *Decl) Mode() fsarg.Mode { return d.mode }

// Values returns a copy of the allowed enum values.
func (d *Decl) Values() []string { return slices.Clone(d.values) }

// Label is the name as shown to users: "<name>" or "--name".
func (d *Decl) Label() string { return label(d.role, d.name) }

// Type is the cty type of a coerced value.
func (d *Decl) Type() cty.Type {
	switch d.kind {
	case argtype.File:
		return fsarg.FileType
	case argtype.Directory:
		return fsarg.DirectoryType
	}
	ty, _ := argtype.PrimitiveType(d.kind)
	return ty
}

// Absent is the value bound when an optional input is not provided.
func (d *Decl) Absent() cty.Value {
	return cty.NullVal(d.Type())
}

// Coerce validates raw against the declaration. File and Directory values are
// materialized through m, which defaults to the local file system when nil.
// Every error returned carries the declaration's label.
func (d *Decl) Coerce(ctx context.Context, raw any, m fsarg.Materializer) (cty.Value, error) {
	v, err := d.coerce(ctx, raw, m)
	if err != nil {
		var te *taskerr.Error
		if errors.As(err, &te) {
			return cty.NilVal, te.WithField(d.Label())
		}
		return cty.NilVal, err
	}
	return v, nil
}

func (d *Decl) coerce(ctx context.Context, raw any, m fsarg.Materializer) (cty.Value, error) {
	if !d.kind.Resource() {
		return argtype.Coerce(d.kind, raw, d.values)
	}

	pathVal, err := argtype.CoerceString(raw)
	if err != nil {
		return cty.NilVal, err
	}
	if m == nil {
		m = fsarg.OS{}
	}

	if d.kind == argtype.File {
		f, err := m.OpenFile(ctx, pathVal.AsString(), d.mode)
		if err != nil {
			return cty.NilVal, err
		}
		return fsarg.FileVal(f), nil
	}
	dir, err := m.OpenDirectory(ctx, pathVal.AsString(), d.mode)
	if err != nil {
		return cty.NilVal, err
	}
	return fsarg.DirectoryVal(dir), nil
}
