// Package pokeapi provides an HTTP client for the public PokéAPI.
//
// # Overview
//
// This package wraps the two read-only endpoints the catalog needs: the
// paginated /pokemon list and the per-entry detail resource. Transport is
// resty; an optional politeness limiter (go.uber.org/ratelimit) spaces out
// requests.
//
// # Architecture
//
//   - client.go: Client, Catalog interface, request handling
//   - types.go: list and detail payloads
//   - errors.go: error taxonomy
//   - pokeapitest/: in-process fake server for tests
//
// # Client Usage
//
//	client, err := pokeapi.NewClient(pokeapi.Options{
//		BaseURL: cfg.API.BaseURL,
//		Logger:  logger,
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	page := client.ListPage(ctx, pokeapi.Query{Limit: 9, Offset: 0})
//	for _, ref := range page.Results {
//		p := client.FetchDetail(ctx, ref.URL)
//		if !p.Valid() {
//			continue
//		}
//		fmt.Println(p.ID, p.Name, p.TypeNames())
//	}
//
// # Swallowing vs Returning Errors
//
// ListPage, ListBasic and FetchDetail never return an error. Any failure is
// logged with url, status and error fields and reported as an empty value:
// a zero Page, an empty slice, or a zero Pokemon (Valid() == false). Callers
// that need the reason use GetPage and GetDetail, which return:
//
//   - ErrNetwork: the request never completed (dial, TLS, cancelled context)
//   - ErrMalformed: the body was not the expected shape
//   - *StatusError: the server answered with a non-2xx status
//
// Cancelled requests are logged at debug level since superseded loads are
// routine in the UI.
//
// # Request Handling
//
// All requests:
//   - Carry the caller's context; there is no client-side timeout
//   - Are never retried
//   - Set Accept: application/json and User-Agent: pokedex/0.1
//
// # Base URL
//
// The base URL defaults to https://pokeapi.co/api/v2/. A missing scheme
// becomes https, and a trailing slash is enforced so relative resolution of
// "pokemon" stays under the API root.
//
// # Detail Payload
//
// Pokemon types only the fields the UI renders. The verbatim response body is
// kept in Raw and MarshalJSON emits it unchanged, so `pokedex show --json`
// prints everything the server sent.
//
// # Thread Safety
//
// Client is safe for concurrent use.
package pokeapi
