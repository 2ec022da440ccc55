package restkit

import (
	"context"
	"fmt"
	"net/http"
)

// assembleHeaders finishes the outbound header set: the bearer
// credential, the optional API version, the request id, and the
// asynchronously resolved client identifier, then caller overrides,
// which win over every computed value. The fixed defaults (Accept,
// Content-Type) are set before serialization so a custom serializer
// can still change them.
func (c *Client) assembleHeaders(ctx context.Context, header http.Header, token, requestID string, overrides map[string]string) error {
	header.Set("Authorization", "Bearer "+token)
	if v := c.provider.APIVersion(); v != "" {
		header.Set("X-API-Version", v)
	}
	header.Set("X-Request-Id", requestID)

	ident, err := c.provider.ClientIdentifier(ctx)
	if err != nil {
		return fmt.Errorf("restkit: resolve client identifier: %w", err)
	}
	header.Set("User-Agent", ident)

	for k, v := range overrides {
		header.Set(k, v)
	}
	return nil
}

func defaultHeaders() http.Header {
	header := http.Header{}
	header.Set("Accept", contentTypeJSON)
	header.Set("Content-Type", contentTypeForm)
	return header
}
