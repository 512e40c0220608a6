package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// writeOutput prints a handler result. Strings and string slices print as
// lines, cty values and everything else as JSON. A nil result prints nothing.
func writeOutput(w io.Writer, out any) error {
	switch v := out.(type) {
	case nil:
		return nil
	case string:
		_, err := fmt.Fprintln(w, v)
		return err
	case []string:
		for _, line := range v {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	case cty.Value:
		if v.IsNull() {
			return nil
		}
		if v.Type() == cty.String && v.IsKnown() {
			_, err := fmt.Fprintln(w, v.AsString())
			return err
		}
		data, err := ctyjson.Marshal(v, v.Type())
		if err != nil {
			return fmt.Errorf("failed to encode task output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(w, v.String())
		return err
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode task output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}
