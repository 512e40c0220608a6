package socketio

import (
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// parsePayload decodes the --data option. A missing option yields nil.
func parsePayload(data *string) (any, error) {
	if data == nil {
		return nil, nil
	}
	var payload any
	if err := json.Unmarshal([]byte(*data), &payload); err != nil {
		return nil, fmt.Errorf("data is not valid JSON: %w", err)
	}
	return payload, nil
}

// toCtyValue converts an event argument, as decoded by the socket.io
// client, into a cty value by way of its JSON form.
func toCtyValue(data any) (cty.Value, error) {
	if data == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return cty.NilVal, fmt.Errorf("failed to encode received data: %w", err)
	}
	ty, err := ctyjson.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, fmt.Errorf("failed to infer type of received data: %w", err)
	}
	v, err := ctyjson.Unmarshal(raw, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("failed to convert received data: %w", err)
	}
	return v, nil
}
