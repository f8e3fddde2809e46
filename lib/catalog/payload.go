package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Payload is an untyped JSON object from an upstream source. Every accessor reports
// whether the key was present with a value of the expected shape, nothing is assumed
// to exist.
type Payload map[string]any

// DecodePayload decodes a JSON object, numbers are kept as json.Number so
// integer fields survive without float rounding.
func DecodePayload(data []byte) (Payload, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var out map[string]any
	if err := decoder.Decode(&out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("payload is null")
	}
	return Payload(out), nil
}

func (p Payload) Empty() bool {
	return len(p) == 0
}

func (p Payload) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

func (p Payload) Object(key string) (Payload, bool) {
	return asObject(p[key])
}

func (p Payload) String(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok
}

func (p Payload) Int(key string) (int64, bool) {
	return asInt(p[key])
}

func (p Payload) Float(key string) (float64, bool) {
	return asFloat(p[key])
}

func (p Payload) Bool(key string) (bool, bool) {
	b, ok := p[key].(bool)
	return b, ok
}

func (p Payload) List(key string) ([]any, bool) {
	l, ok := p[key].([]any)
	return l, ok
}

// Scalar renders a string, number or boolean value as a string.
func (p Payload) Scalar(key string) (string, bool) {
	return asScalar(p[key])
}

func asObject(v any) (Payload, bool) {
	switch m := v.(type) {
	case map[string]any:
		return Payload(m), true
	case Payload:
		return m, true
	}
	return nil, false
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return asInt(f)
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asScalar(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case bool:
		return strconv.FormatBool(s), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	}
	return "", false
}
