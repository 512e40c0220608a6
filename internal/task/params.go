package task

import (
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/specialistvlad/gridtask/internal/fsarg"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Params is the parameter record of one invocation: every declared argument
// and option name mapped to its coerced value, or to a null value of the
// declared type when the input was optional and not provided.
type Params map[string]cty.Value

// Value returns the record as a cty object.
func (p Params) Value() cty.Value {
	if len(p) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(p)
}

// Decode copies the record into target, a pointer to a struct whose fields
// carry `cty:"name"` tags. Optional inputs need pointer fields. File and
// Directory inputs decode into cty.Value fields; see fsarg.AsFile.
func (p Params) Decode(target any) error {
	return gocty.FromCtyValue(p.Value(), target)
}

// Has reports whether name was bound to a non-null value.
func (p Params) Has(name string) bool {
	v, ok := p[name]
	return ok && !v.IsNull()
}

// String returns a string or enum value.
func (p Params) String(name string) (string, bool) {
	v, ok := p[name]
	if !ok || v.IsNull() || !v.Type().Equals(cty.String) {
		return "", false
	}
	return v.AsString(), true
}

// Bool returns a boolean value.
func (p Params) Bool(name string) (bool, bool) {
	v, ok := p[name]
	if !ok || v.IsNull() || !v.Type().Equals(cty.Bool) {
		return false, false
	}
	return v.True(), true
}

// Number returns a number value.
func (p Params) Number(name string) (*big.Float, bool) {
	v, ok := p[name]
	if !ok || v.IsNull() || !v.Type().Equals(cty.Number) {
		return nil, false
	}
	return v.AsBigFloat(), true
}

// File returns a materialized file.
func (p Params) File(name string) (*os.File, bool) {
	f := fsarg.AsFile(p[name])
	return f, f != nil
}

// Directory returns a materialized directory descriptor.
func (p Params) Directory(name string) (*fsarg.Directory, bool) {
	d := fsarg.AsDirectory(p[name])
	return d, d != nil
}

// Bind adapts a function taking a typed input struct into a Handler.
func Bind[T any](fn func(ctx context.Context, in *T) (any, error)) Handler {
	return func(ctx context.Context, p Params) (any, error) {
		in := new(T)
		if err := p.Decode(in); err != nil {
			return nil, fmt.Errorf("decoding parameters into %T: %w", in, err)
		}
		return fn(ctx, in)
	}
}
