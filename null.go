package apiauth

import "context"

// NullAuth is the fail-closed default strategy: every path requires
// authentication and no request ever resolves to an identity. Use it
// wherever a Strategy is mandatory but no scheme has been configured.
type NullAuth struct{}

var _ Strategy = NullAuth{}

func NewNullAuth() NullAuth {
	return NullAuth{}
}

func (NullAuth) RequiresAuth(string) bool {
	return true
}

func (NullAuth) CurrentIdentity(context.Context, Request) (Identity, error) {
	return nil, ErrUnauthenticated
}
