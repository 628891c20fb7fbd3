//go:build integration

// Package integration runs the client against a real HubSpot account. Tests
// are skipped unless HUBSPOT_TOKEN and HUBSPOT_PORTAL_ID are set; the token
// needs CRM read and write scopes for contacts and companies.
package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/fivetwenty-io/hubspot-client/pkg/hsclient"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	Domain   string
	Token    string
	PortalID string
	Verbose  bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	domain := os.Getenv("HUBSPOT_DOMAIN")
	if domain == "" {
		domain = "api.hubapi.com"
	}

	return &TestConfig{
		Domain:   domain,
		Token:    os.Getenv("HUBSPOT_TOKEN"),
		PortalID: os.Getenv("HUBSPOT_PORTAL_ID"),
		Verbose:  os.Getenv("HUBSPOT_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips test if required config is missing.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Token == "" || config.PortalID == "" {
		t.Skip("HUBSPOT_TOKEN or HUBSPOT_PORTAL_ID not set, skipping integration test")
	}
}

// NewClient builds a client with retries for the account under test.
func (config *TestConfig) NewClient(t *testing.T) *hsclient.Client {
	t.Helper()

	client, err := hsclient.New(&hubspot.Config{
		Domain:   config.Domain,
		Token:    config.Token,
		PortalID: config.PortalID,
		Logger:   testLogger{t: t},
		Debug:    config.Verbose,
		RetryMax: 3,
	})
	require.NoError(t, err)

	return client
}

// testLogger sends client logs to the test log.
type testLogger struct {
	t *testing.T
}

func (l testLogger) Debug(msg string, fields map[string]interface{}) { l.t.Logf("DEBUG %s %v", msg, fields) }
func (l testLogger) Info(msg string, fields map[string]interface{})  { l.t.Logf("INFO %s %v", msg, fields) }
func (l testLogger) Warn(msg string, fields map[string]interface{})  { l.t.Logf("WARN %s %v", msg, fields) }
func (l testLogger) Error(msg string, fields map[string]interface{}) { l.t.Logf("ERROR %s %v", msg, fields) }

// GenerateTestName generates a unique name for test records.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// Context returns a context bounded for one live call sequence.
func Context(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	return ctx
}
