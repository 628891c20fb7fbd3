package constants

import "errors"

// Configuration errors.
var (
	ErrNoDomainConfigured   = errors.New("no domain configured, use 'hubspot config set domain <domain>'")
	ErrNoTokenConfigured    = errors.New("no access token configured, use 'hubspot config set-token'")
	ErrNoPortalIDConfigured = errors.New("no portal id configured, use 'hubspot config set portal-id <id>'")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrEmptyToken           = errors.New("access token must not be empty")
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidProperty     = errors.New("invalid property, expected name=value")
	ErrInvalidAssociation  = errors.New("invalid association type, expected [CATEGORY:]TYPE_ID")
	ErrTooManyIDs          = errors.New("too many ids for one batch call")
	ErrNoIDs               = errors.New("at least one id is required")
)
