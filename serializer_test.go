package restkit

import (
	"net/http"
	"strings"
	"testing"
)

func TestFormSerializer(t *testing.T) {
	tests := []struct {
		name    string
		payload Params
		want    string
	}{
		{
			name:    "flat payload",
			payload: Params{"amount": 100, "currency": "usd"},
			want:    "amount=100&currency=usd",
		},
		{
			name:    "nested map",
			payload: Params{"card": map[string]any{"number": "4242", "cvc": "123"}},
			want:    "card%5Bcvc%5D=123&card%5Bnumber%5D=4242",
		},
		{
			name:    "nested Params",
			payload: Params{"card": Params{"number": "4242"}},
			want:    "card%5Bnumber%5D=4242",
		},
		{
			name:    "slice",
			payload: Params{"expand": []any{"customer", "invoice"}},
			want:    "expand%5B0%5D=customer&expand%5B1%5D=invoice",
		},
		{
			name:    "nil value",
			payload: Params{"description": nil},
			want:    "description=",
		},
		{
			name:    "bool and float",
			payload: Params{"capture": true, "rate": 0.5},
			want:    "capture=true&rate=0.5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			body, err := FormSerializer(http.MethodPost, tt.payload, header)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(body) != tt.want {
				t.Errorf("got %q, want %q", body, tt.want)
			}
			if len(header) != 0 {
				t.Errorf("FormSerializer mutated headers: %v", header)
			}
		})
	}
}

func TestFormSerializer_EmptyPayload(t *testing.T) {
	body, err := FormSerializer(http.MethodGet, nil, http.Header{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != nil {
		t.Errorf("expected nil body for empty payload, got %q", body)
	}
}

func TestFormSerializer_UnsupportedType(t *testing.T) {
	_, err := FormSerializer(http.MethodPost, Params{"ch": make(chan int)}, http.Header{})
	if err == nil {
		t.Fatal("expected error for unsupported value type")
	}
	if !strings.Contains(err.Error(), "cannot form-encode") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestJSONSerializer(t *testing.T) {
	header := http.Header{}
	header.Set("Content-Type", contentTypeForm)

	body, err := JSONSerializer(http.MethodPost, Params{"amount": 100}, header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"amount":100}` {
		t.Errorf("got %q", body)
	}
	if got := header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
}

func TestJSONSerializer_EmptyPayloadLeavesHeaders(t *testing.T) {
	header := http.Header{}
	header.Set("Content-Type", contentTypeForm)

	body, err := JSONSerializer(http.MethodGet, nil, header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != nil {
		t.Errorf("expected nil body, got %q", body)
	}
	if got := header.Get("Content-Type"); got != contentTypeForm {
		t.Errorf("Content-Type changed to %q for empty payload", got)
	}
}
