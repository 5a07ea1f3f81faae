package rest

import (
	"context"
	"net/url"
)

// TokenSource supplies the current bearer token. Authentication itself is owned by an
// external collaborator; an empty token means the request is sent unauthenticated.
type TokenSource func() string

// The Client interface is the single seam between the agent's services and the
// platform backend. Implementations must normalize the response envelope and decode
// the data payload into out (which may be nil for endpoints whose payload is ignored).
type Client interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body any, out any) error
	Put(ctx context.Context, path string, body any, out any) error
}
