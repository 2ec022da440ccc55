// Package restkit is the request-execution core of a REST API client:
// it turns a resource-relative path template, an HTTP verb, a payload,
// and authentication material into exactly one HTTP exchange with
// exactly one typed outcome.
//
// The core handles path templating and composition, payload
// serialization (overridable per resource), header assembly (auth,
// API version, user agent), per-request timeouts with transport abort,
// JSON response decoding, and error classification (connection vs.
// authentication vs. malformed response vs. API-reported business
// error). It deliberately does not retry, pool, or rate-limit.
//
// # Basic Usage
//
//	client, err := restkit.New(restkit.Config{
//	    Host:      "https://api.example.com",
//	    BasePath:  "/v1",
//	    AuthToken: "sk_test_123",
//	})
//
//	accounts, err := client.Resource(restkit.ResourceConfig{
//	    Path: "/accounts/{account}/charges",
//	    URLParams: map[string]string{"account": "acct_1"},
//	})
//
//	d := accounts.Execute(ctx, restkit.Request{
//	    Method:  http.MethodPost,
//	    Payload: restkit.Params{"amount": 100},
//	    Timeout: 5 * time.Second,
//	})
//	resp, err := d.Wait(ctx)
//
// # Callbacks
//
// Callers that prefer callback completion pass one in the request; it
// fires exactly once, on its own goroutine, mirroring the deferred's
// outcome:
//
//	accounts.Execute(ctx, restkit.Request{
//	    Method:   http.MethodGet,
//	    Callback: func(err error, resp *restkit.Response) { ... },
//	})
package restkit
