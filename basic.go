package apiauth

import (
	"context"
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-router"
)

const basicScheme = "Basic "

// ExtractSchemePayload returns the portion of an Authorization header
// after the literal "Basic " prefix. The payload is returned unmodified,
// trailing whitespace included. ok is false when the header is empty or
// carries a different scheme.
func ExtractSchemePayload(header string) (string, bool) {
	if !strings.HasPrefix(header, basicScheme) {
		return "", false
	}
	return header[len(basicScheme):], true
}

// DecodeBase64 decodes a standard Base64 payload into a UTF-8 string.
// Invalid alphabet, invalid padding, and invalid UTF-8 all report failure
// instead of an error, the caller only cares that decoding did not happen.
func DecodeBase64(payload string) (string, bool) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}

// SplitCredentials splits a decoded "user:password" pair on the first
// colon only, so passwords may themselves contain colons. ok is false when
// no separator is present.
func SplitCredentials(decoded string) (user, password string, ok bool) {
	user, password, ok = strings.Cut(decoded, ":")
	if !ok {
		return "", "", false
	}
	return user, password, true
}

// BasicAuth authenticates requests that carry HTTP Basic credentials in
// the Authorization header. Credential verification goes through an
// IdentityVerifier so the store and hasher stay injectable.
type BasicAuth struct {
	excluded []string
	verifier IdentityVerifier
	logger   Logger
}

var _ Strategy = (*BasicAuth)(nil)

// NewBasicAuth returns a BasicAuth strategy gated by the given exclusion
// rules.
func NewBasicAuth(verifier IdentityVerifier, excluded []string) *BasicAuth {
	return &BasicAuth{
		excluded: excluded,
		verifier: verifier,
		logger:   defLogger{},
	}
}

func (b *BasicAuth) WithLogger(l Logger) *BasicAuth {
	b.logger = l
	return b
}

func (b *BasicAuth) RequiresAuth(path string) bool {
	return RequiresAuth(path, b.excluded)
}

// CurrentIdentity decodes the Basic credentials and resolves them to an
// identity. Every decoding or verification failure collapses into the
// same fail-closed result.
func (b *BasicAuth) CurrentIdentity(ctx context.Context, r Request) (Identity, error) {
	payload, ok := ExtractSchemePayload(r.Header(router.HeaderAuthorization))
	if !ok {
		return nil, ErrUnauthenticated
	}

	decoded, ok := DecodeBase64(payload)
	if !ok {
		return nil, ErrUnauthenticated
	}

	email, password, ok := SplitCredentials(decoded)
	if !ok {
		return nil, ErrUnauthenticated
	}

	identity, err := b.verifier.VerifyIdentity(ctx, email, password)
	if err != nil {
		if IsStorageError(err) {
			return nil, err
		}
		return nil, ErrForbidden
	}

	return identity, nil
}
