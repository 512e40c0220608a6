// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file holds the coercion rules for raw command line tokens.
//
// A raw token is whatever the argv tokenizer or a programmatic caller hands
// to the runner: a Go string, a bool, or any of the Go numeric kinds. The
// functions below are pure and deterministic; they are the only place where
// the meaning of "a number" or "a boolean" is decided, and both the argument
// and the option validation paths go through them.
package argtype

import (
	"math"
	"slices"
	"strings"

	"github.com/specialistvlad/gridtask/internal/taskerr"
	"github.com/zclconf/go-cty/cty"
)

const booleanLiterals = "'true', 'false', '1' or '0' (case-insensitive), or the numbers 1 and 0"

// CoerceString accepts only string input.
func CoerceString(raw any) (cty.Value, error) {
	s, ok := raw.(string)
	if !ok {
		return cty.NilVal, taskerr.Typef(taskerr.ExpectedString, "requires a string, got %s", describe(raw))
	}
	return cty.StringVal(s), nil
}

// CoerceNumber accepts numbers as-is and strings that parse completely as a
// finite decimal number.
func CoerceNumber(raw any) (cty.Value, error) {
	if s, ok := raw.(string); ok {
		v, err := cty.ParseNumberVal(s)
		if err != nil || v.AsBigFloat().IsInf() {
			return cty.NilVal, taskerr.Typef(taskerr.ExpectedNumber, "requires a number, got %q", s)
		}
		return v, nil
	}

	f, ok := AsFloat(raw)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return cty.NilVal, taskerr.Typef(taskerr.ExpectedNumber, "requires a number, got %s", describe(raw))
	}
	if i, isInt := asInt(raw); isInt {
		return cty.NumberIntVal(i), nil
	}
	return cty.NumberFloatVal(f), nil
}

// CoerceBoolean accepts native booleans, the strings true/false/1/0 in any
// case, and the numbers 1 and 0.
func CoerceBoolean(raw any) (cty.Value, error) {
	switch v := raw.(type) {
	case bool:
		return cty.BoolVal(v), nil
	case string:
		switch strings.ToLower(v) {
		case "true", "1":
			return cty.True, nil
		case "false", "0":
			return cty.False, nil
		}
	default:
		if f, ok := AsFloat(raw); ok {
			switch f {
			case 1:
				return cty.True, nil
			case 0:
				return cty.False, nil
			}
		}
	}
	return cty.NilVal, taskerr.Typef(taskerr.ExpectedBoolean, "requires a boolean, got %s; accepted values are %s", describe(raw), booleanLiterals)
}

// CoerceEnum coerces raw as a string and then checks it against allowed.
// An empty allowed set is a configuration error, never a silent pass.
func CoerceEnum(raw any, allowed []string) (cty.Value, error) {
	if len(allowed) == 0 {
		return cty.NilVal, taskerr.Configf(taskerr.EmptyEnum, "enum declares no allowed values")
	}
	v, err := CoerceString(raw)
	if err != nil {
		return cty.NilVal, err
	}
	s := v.AsString()
	if !slices.Contains(allowed, s) {
		return cty.NilVal, taskerr.Typef(taskerr.InvalidEnumValue, "invalid value %q, expected one of: %s", s, strings.Join(allowed, ", "))
	}
	return v, nil
}

// Coerce dispatches on the primitive kinds. Enum values are checked against
// allowed; resource kinds are not handled here and report a config error.
func Coerce(k Kind, raw any, allowed []string) (cty.Value, error) {
	switch k {
	case String:
		return CoerceString(raw)
	case Number:
		return CoerceNumber(raw)
	case Boolean:
		return CoerceBoolean(raw)
	case Enum:
		return CoerceEnum(raw, allowed)
	}
	return cty.NilVal, taskerr.Configf(taskerr.UnknownType, "type %s cannot be coerced without a materializer", k)
}
