package moby

import (
	"encoding/json"
	"fmt"
)

// jsonObj is a decoded JSON object. Accessors return a second result
// reporting presence so callers can tell an absent key from a null or
// zero value; the normalizer relies on that to apply defaults.
type jsonObj map[string]any

func decodeObject(data []byte) (jsonObj, error) {
	var o jsonObj
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return o, nil
}

func (o jsonObj) str(key string) (string, bool) {
	v, ok := o[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intVal reads a numeric field. encoding/json decodes JSON numbers into
// float64 when the target is any.
func (o jsonObj) intVal(key string) (int64, bool) {
	v, ok := o[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func (o jsonObj) obj(key string) (jsonObj, bool) {
	v, ok := o[key]
	if !ok {
		return nil, false
	}
	return asObj(v)
}

func (o jsonObj) arr(key string) ([]any, bool) {
	v, ok := o[key]
	if !ok {
		return nil, false
	}
	a, ok := v.([]any)
	return a, ok
}

func asObj(v any) (jsonObj, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return jsonObj(m), true
}
