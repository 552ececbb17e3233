package ir

import (
	"encoding/json"
	"fmt"
	"math"
)

// ToJSON renders the document's native value as JSON. Non-finite
// floats have no JSON form and are emitted as strings.
func (d *Document) ToJSON() ([]byte, error) {
	v, err := d.ToNative()
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonSafe(v))
}

// ToJSONIndent is ToJSON with two-space indentation.
func (d *Document) ToJSONIndent() ([]byte, error) {
	v, err := d.ToNative()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(jsonSafe(v), "", "  ")
}

func jsonSafe(v any) any {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Sprint(x)
		}
		return x
	case []any:
		res := make([]any, len(x))
		for i, e := range x {
			res[i] = jsonSafe(e)
		}
		return res
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, e := range x {
			res[k] = jsonSafe(e)
		}
		return res
	default:
		return v
	}
}
