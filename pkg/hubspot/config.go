package hubspot

import (
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a client with
// hsclient.New.
//
// Domain, Token and PortalID are required. Construction fails with
// ErrMissingDomain, ErrMissingToken or ErrMissingPortalID, checked in that
// order, when one of them is empty.
//
// # Transport
//
// Every call makes exactly one attempt. Cancellation and timeouts come from
// the context passed to each call and from HTTPClient. RetryMax exists for
// tooling that wants retries on 429 and 5xx responses; it defaults to zero.
type Config struct {
	// Domain: API host, e.g. "api.hubapi.com". A scheme may be included
	// ("http://127.0.0.1:8080"); without one "https://" is assumed.
	Domain string
	// Token: private app access token sent as a Bearer credential.
	Token string
	// PortalID: the account (hub) id the token belongs to.
	PortalID string

	// Optional configurations
	// HTTPClient: pre-configured client used for every request.
	HTTPClient *http.Client
	// TokenSource: overrides Token as the source of the Bearer credential.
	// Token is still required so the credential is known at build time.
	TokenSource oauth2.TokenSource
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// RetryMax: retries for 429/5xx and connection errors. Zero disables retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration
}
