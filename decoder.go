package restkit

import (
	"encoding/json"
	"net/http"
)

// decodeResponse parses the accumulated body and classifies the
// outcome. Parse failure yields a malformed-response error carrying the
// raw text. A decoded body carrying an error descriptor is classified
// by the descriptor's type tag, except HTTP 401, which always escalates
// to an authentication error regardless of the tag. A body without a
// descriptor is a success, whatever the status code.
func decodeResponse(statusCode int, header http.Header, raw []byte) (*Response, *Error) {
	// Empty bodies (204-style responses) carry nothing to decode.
	if len(raw) == 0 {
		return &Response{StatusCode: statusCode, Header: header, RawBody: raw}, nil
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, NewMalformedResponseError(raw, err)
	}

	// Only object bodies can carry an error descriptor; the unmarshal
	// error for other shapes is deliberately ignored.
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	_ = json.Unmarshal(raw, &envelope)

	if len(envelope.Error) > 0 && string(envelope.Error) != "null" {
		var desc ErrorDescriptor
		// Best effort: descriptors of unexpected shape keep a zero
		// type tag and fall through to the generic kind.
		_ = json.Unmarshal(envelope.Error, &desc)
		if statusCode == http.StatusUnauthorized {
			return nil, NewAuthError(statusCode, &desc, raw)
		}
		return nil, newBusinessError(statusCode, desc, raw)
	}

	return &Response{
		StatusCode: statusCode,
		Header:     header,
		RawBody:    raw,
		Data:       data,
	}, nil
}
