package auth

import (
	"errors"
	"strings"

	"golang.org/x/oauth2"
)

// ErrEmptyToken is returned when neither a token nor a source is given.
var ErrEmptyToken = errors.New("access token is empty")

// TokenType is the authorization scheme of every request.
const TokenType = "Bearer"

// NewStaticTokenSource returns a source that always yields token as a
// Bearer credential. The token is never refreshed.
func NewStaticTokenSource(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   TokenType,
	})
}

// NewTokenSource picks the credential source for a client: a caller
// supplied source wins over the static token. Caller sources are wrapped so
// that a still-valid token is reused between requests.
func NewTokenSource(token string, source oauth2.TokenSource) (oauth2.TokenSource, error) {
	if source != nil {
		return oauth2.ReuseTokenSource(nil, source), nil
	}

	if strings.TrimSpace(token) == "" {
		return nil, ErrEmptyToken
	}

	return NewStaticTokenSource(token), nil
}

// MaskToken hides all but the last four characters of a token for display.
func MaskToken(token string) string {
	const visible = 4

	if len(token) <= visible {
		return strings.Repeat("*", len(token))
	}

	return strings.Repeat("*", len(token)-visible) + token[len(token)-visible:]
}
