package argtype

import "fmt"

// AsFloat converts any Go numeric kind to float64.
func AsFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func asInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	}
	return 0, false
}

// IsNumber reports whether raw is one of the Go numeric kinds.
func IsNumber(raw any) bool {
	_, ok := AsFloat(raw)
	return ok
}

// describe renders a raw token for error messages.
func describe(raw any) string {
	switch v := raw.(type) {
	case nil:
		return "nothing"
	case string:
		return fmt.Sprintf("%q", v)
	case bool:
		return fmt.Sprintf("boolean %t", v)
	}
	if IsNumber(raw) {
		return fmt.Sprintf("number %v", raw)
	}
	return fmt.Sprintf("%T", raw)
}
