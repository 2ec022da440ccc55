package restkit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Params is a structured request payload. Nested maps and slices are
// supported by the default form encoding.
type Params map[string]any

// Serializer converts a payload into a wire-format body. It receives
// the HTTP method and the mutable header set, so an implementation may
// adjust Content-Type as a side effect. A resource-level serializer
// fully replaces the default form encoding; this is the escape hatch
// for non-standard endpoints such as binary uploads.
type Serializer func(method string, payload Params, header http.Header) ([]byte, error)

// FormSerializer is the default serializer. It form-encodes the payload
// (application/x-www-form-urlencoded), flattening nested maps as
// parent[child]=v and slices as key[i]=v. The body carries the payload
// for every method; it leaves Content-Type untouched. A nil or empty
// payload yields no body.
func FormSerializer(_ string, payload Params, _ http.Header) ([]byte, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	values := url.Values{}
	for k, v := range payload {
		if err := encodeFormValue(values, k, v); err != nil {
			return nil, err
		}
	}
	// Encode sorts by key, so the wire form is deterministic.
	return []byte(values.Encode()), nil
}

func encodeFormValue(values url.Values, key string, v any) error {
	switch t := v.(type) {
	case nil:
		values.Set(key, "")
	case map[string]any:
		for k, nested := range t {
			if err := encodeFormValue(values, key+"["+k+"]", nested); err != nil {
				return err
			}
		}
	case Params:
		return encodeFormValue(values, key, map[string]any(t))
	case []any:
		for i, nested := range t {
			if err := encodeFormValue(values, fmt.Sprintf("%s[%d]", key, i), nested); err != nil {
				return err
			}
		}
	case string:
		values.Set(key, t)
	case fmt.Stringer:
		values.Set(key, t.String())
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		values.Set(key, fmt.Sprint(t))
	default:
		return fmt.Errorf("restkit: cannot form-encode value of type %T for key %q", v, key)
	}
	return nil
}

// JSONSerializer encodes the payload as JSON and switches Content-Type
// accordingly. Install it as a resource serializer for JSON-body APIs.
func JSONSerializer(_ string, payload Params, header http.Header) ([]byte, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("restkit: encode JSON body: %w", err)
	}
	header.Set("Content-Type", "application/json")
	return body, nil
}
