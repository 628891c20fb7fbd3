package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API endpoints.
const (
	// DefaultDomain is the public API host.
	DefaultDomain = "api.hubapi.com"

	// DefaultScheme is prepended to a domain given without one.
	DefaultScheme = "https://"

	// ObjectsV3Path is the root of the v3 object endpoints.
	ObjectsV3Path = "crm/v3/objects"

	// ObjectsV4Path is the root of the v4 object and association endpoints.
	ObjectsV4Path = "crm/v4/objects"

	// OwnersPath is the root of the owners endpoints.
	OwnersPath = "crm/v3/owners"

	// AssociationsSegment separates a record from its association targets.
	AssociationsSegment = "associations"

	// BatchSegment prefixes the batch actions.
	BatchSegment = "batch"
)

// Batch actions.
const (
	BatchArchive = "archive"
	BatchRead    = "read"
	BatchUpdate  = "update"
)

// HTTP defaults.
const (
	// DefaultUserAgent is sent when the config does not override it.
	DefaultUserAgent = "hubspot-client-go/1.0"

	// ContentTypeJSON is the media type of every request and response body.
	ContentTypeJSON = "application/json"

	// DefaultHTTPTimeout is the timeout of the HTTP client the CLI builds.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry settings used when retries are turned on.
const (
	// DefaultRetryWaitMin is the minimum wait between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// CLIRetryMax is the number of retries the CLI asks for.
	CLIRetryMax = 3
)

// Paging.
const (
	// DefaultPageSize is the page size the CLI requests.
	DefaultPageSize = 10

	// MaxPageSize is the largest page the object list endpoints return.
	MaxPageSize = 100

	// MaxBatchSize is the largest number of inputs a batch call accepts.
	MaxBatchSize = 100
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Environment.
const (
	// EnvPrefix prefixes every environment variable the CLI reads.
	EnvPrefix = "HUBSPOT"

	// ConfigDirName is the directory under $HOME holding the CLI config.
	ConfigDirName = ".hubspot"

	// ConfigFileName is the CLI config file name without extension.
	ConfigFileName = "config"
)
