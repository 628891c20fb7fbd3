package hubspot

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Construction errors. These are only returned while building a client,
// never from an API call.
var (
	ErrConfigRequired  = errors.New("config is required")
	ErrMissingDomain   = errors.New("domain is required")
	ErrMissingToken    = errors.New("access token is required")
	ErrMissingPortalID = errors.New("portal id is required")
)

// Static errors for err113 compliance.
var (
	ErrUnknownObjectType = errors.New("unknown object type")
	ErrInvalidObjectID   = errors.New("invalid object id")
)

// Error categories reported by the platform.
const (
	CategoryValidation            = "VALIDATION_ERROR"
	CategoryObjectNotFound        = "OBJECT_NOT_FOUND"
	CategoryConflict              = "CONFLICT"
	CategoryRateLimits            = "RATE_LIMITS"
	CategoryInvalidAuthentication = "INVALID_AUTHENTICATION"
	CategoryMissingScopes         = "MISSING_SCOPES"
)

// ErrorKind classifies a failed call.
type ErrorKind int

// Error kinds. Every call fails with exactly one of them.
const (
	KindUnknown ErrorKind = iota
	KindJSON
	KindHTTP
	KindRemote
	KindEncoding
)

func (k ErrorKind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindHTTP:
		return "http"
	case KindRemote:
		return "remote"
	case KindEncoding:
		return "encoding"
	default:
		return "unknown"
	}
}

// JSONError is a local encode or decode failure.
type JSONError struct {
	Body []byte
	Err  error
}

func (e *JSONError) Error() string {
	return "json: " + e.Err.Error()
}

func (e *JSONError) Unwrap() error {
	return e.Err
}

// HTTPError is a transport failure: the request never produced a response.
type HTTPError struct {
	Method string
	URL    string
	Err    error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// EncodingError reports a response body that is not valid UTF-8.
type EncodingError struct {
	StatusCode int
	Body       []byte
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("response body is not valid UTF-8 (status %d, %d bytes)", e.StatusCode, len(e.Body))
}

// ErrorDetail is one entry of ErrorResponse.Errors.
type ErrorDetail struct {
	Message     string              `json:"message"               yaml:"message"`
	Code        string              `json:"code,omitempty"        yaml:"code,omitempty"`
	In          string              `json:"in,omitempty"          yaml:"in,omitempty"`
	SubCategory string              `json:"subCategory,omitempty" yaml:"subCategory,omitempty"`
	Context     map[string][]string `json:"context,omitempty"     yaml:"context,omitempty"`
}

// UnmarshalJSON keeps only the context entries that are string lists.
func (d *ErrorDetail) UnmarshalJSON(data []byte) error {
	type plain ErrorDetail

	var wire struct {
		plain
		Context map[string]json.RawMessage `json:"context"`
	}

	err := json.Unmarshal(data, &wire)
	if err != nil {
		return err
	}

	*d = ErrorDetail(wire.plain)
	d.Context = stringLists(wire.Context)

	return nil
}

// ErrorResponse is the error body returned by the platform on a non-2xx
// status. The same shape appears in the errors list of a batch result.
// Decoding is lenient: a numeric status is kept as its text and context
// entries that are not string lists are dropped.
type ErrorResponse struct {
	Status        string              `json:"status,omitempty"        yaml:"status,omitempty"`
	Message       string              `json:"message"                 yaml:"message"`
	CorrelationID string              `json:"correlationId,omitempty" yaml:"correlationId,omitempty"`
	Category      string              `json:"category"                yaml:"category"`
	SubCategory   string              `json:"subCategory,omitempty"   yaml:"subCategory,omitempty"`
	Context       map[string][]string `json:"context,omitempty"       yaml:"context,omitempty"`
	Errors        []ErrorDetail       `json:"errors,omitempty"        yaml:"errors,omitempty"`
	Links         map[string]string   `json:"links,omitempty"         yaml:"links,omitempty"`
}

func (r *ErrorResponse) UnmarshalJSON(data []byte) error {
	type plain ErrorResponse

	var wire struct {
		plain
		Status  json.RawMessage            `json:"status"`
		Context map[string]json.RawMessage `json:"context"`
	}

	err := json.Unmarshal(data, &wire)
	if err != nil {
		return err
	}

	*r = ErrorResponse(wire.plain)
	r.Status = rawText(wire.Status)
	r.Context = stringLists(wire.Context)

	return nil
}

func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var text string
	if json.Unmarshal(raw, &text) == nil {
		return text
	}

	return strings.TrimSpace(string(raw))
}

func stringLists(raw map[string]json.RawMessage) map[string][]string {
	if raw == nil {
		return nil
	}

	lists := make(map[string][]string, len(raw))

	for key, value := range raw {
		var list []string
		if json.Unmarshal(value, &list) == nil {
			lists[key] = list
		}
	}

	return lists
}

// ParseErrorResponse decodes an error body.
func ParseErrorResponse(data []byte) (*ErrorResponse, error) {
	var errResp ErrorResponse

	err := json.Unmarshal(data, &errResp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal error response: %w", err)
	}

	return &errResp, nil
}

// platformError is the part of an error body that makes it structured. Every
// key must be present; anything else in the body is ignored.
type platformError struct {
	Message  *string `json:"message"`
	Category *string `json:"category"`
	Context  *struct {
		Properties *[]string `json:"properties"`
	} `json:"context"`
}

func parsePlatformError(body []byte) (*platformError, bool) {
	var shape platformError

	err := json.Unmarshal(body, &shape)
	if err != nil {
		return nil, false
	}

	if shape.Message == nil || shape.Category == nil || shape.Context == nil || shape.Context.Properties == nil {
		return nil, false
	}

	return &shape, true
}

// RemoteError is a non-2xx response. When the body carries a message, a
// category and a properties context, Error renders
// "CATEGORY: message, properties: [...]". Otherwise it renders the raw body.
type RemoteError struct {
	StatusCode int
	Body       string
	Response   *ErrorResponse
	platform   *platformError
}

// NewRemoteError builds a RemoteError from a status and a raw body. It never
// fails: bodies that do not decode are kept verbatim.
func NewRemoteError(statusCode int, body []byte) *RemoteError {
	remoteErr := &RemoteError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	if platform, ok := parsePlatformError(body); ok {
		remoteErr.platform = platform
	}

	if errResp, err := ParseErrorResponse(body); err == nil {
		remoteErr.Response = errResp
	}

	return remoteErr
}

func (e *RemoteError) Error() string {
	if e.platform != nil {
		return fmt.Sprintf("%s: %s, properties: %q", *e.platform.Category, *e.platform.Message, *e.platform.Context.Properties)
	}

	if e.Body == "" {
		return fmt.Sprintf("remote error: status %d", e.StatusCode)
	}

	return e.Body
}

// Properties returns the properties named by a structured error body.
func (e *RemoteError) Properties() []string {
	if e.platform == nil {
		return nil
	}

	return *e.platform.Context.Properties
}

// Structured reports whether the body matched the platform error shape.
func (e *RemoteError) Structured() bool {
	return e.platform != nil
}

// Category returns the platform error category, if the body carried one.
func (e *RemoteError) Category() string {
	if e.platform != nil {
		return *e.platform.Category
	}

	if e.Response == nil {
		return ""
	}

	return e.Response.Category
}

// Message returns the platform error message, if the body carried one.
func (e *RemoteError) Message() string {
	if e.platform != nil {
		return *e.platform.Message
	}

	if e.Response == nil {
		return ""
	}

	return e.Response.Message
}

// CorrelationID returns the id support needs to trace the failed request.
func (e *RemoteError) CorrelationID() string {
	if e.Response == nil {
		return ""
	}

	return e.Response.CorrelationID
}

// KindOf returns the kind of a call error, looking through wrapping.
func KindOf(err error) ErrorKind {
	var (
		jsonErr     *JSONError
		httpErr     *HTTPError
		remoteErr   *RemoteError
		encodingErr *EncodingError
	)

	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &remoteErr):
		return KindRemote
	case errors.As(err, &encodingErr):
		return KindEncoding
	case errors.As(err, &jsonErr):
		return KindJSON
	case errors.As(err, &httpErr):
		return KindHTTP
	default:
		return KindUnknown
	}
}

func asRemote(err error) (*RemoteError, bool) {
	remoteErr := &RemoteError{}
	if errors.As(err, &remoteErr) {
		return remoteErr, true
	}

	return nil, false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	remoteErr, ok := asRemote(err)
	if !ok {
		return false
	}

	return remoteErr.StatusCode == http.StatusNotFound || remoteErr.Category() == CategoryObjectNotFound
}

// IsUnauthorized checks if the error is an authentication or scope error.
func IsUnauthorized(err error) bool {
	remoteErr, ok := asRemote(err)
	if !ok {
		return false
	}

	switch remoteErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	}

	category := remoteErr.Category()

	return category == CategoryInvalidAuthentication || category == CategoryMissingScopes
}

// IsRateLimited checks if the error is a rate limit rejection.
func IsRateLimited(err error) bool {
	remoteErr, ok := asRemote(err)
	if !ok {
		return false
	}

	return remoteErr.StatusCode == http.StatusTooManyRequests || remoteErr.Category() == CategoryRateLimits
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	remoteErr, ok := asRemote(err)
	if !ok {
		return false
	}

	return remoteErr.Category() == CategoryValidation
}

// IsConflict checks if the error is a conflict, e.g. a duplicate unique value.
func IsConflict(err error) bool {
	remoteErr, ok := asRemote(err)
	if !ok {
		return false
	}

	return remoteErr.StatusCode == http.StatusConflict || strings.EqualFold(remoteErr.Category(), CategoryConflict)
}
