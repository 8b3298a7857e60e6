package validation

import "encoding/json"

// The accessors below convert the loosely typed values arriving at the API
// boundary into the shape a field's declared type requires. Each reports
// ok=false when the value is present but of the wrong shape, which the
// validator surfaces as a per-field message instead of panicking on a type
// assertion deeper in the pipeline.

func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func numberValue(v any) (float64, bool) {
	switch typed := v.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case json.Number:
		f, err := typed.Float64()
		return f, err == nil
	}
	return 0, false
}

func stringSliceValue(v any) ([]string, bool) {
	switch typed := v.(type) {
	case []string:
		return typed, true
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func boolValue(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}
