package commands

import (
	"net/http"
	"strings"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/pkg/hsclient"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
	"github.com/spf13/viper"
)

// newClient builds a client from the effective configuration. Missing
// values are reported with the command that fixes them.
func newClient() (*hsclient.Client, error) {
	config := loadConfig()

	switch {
	case strings.TrimSpace(config.Domain) == "":
		return nil, constants.ErrNoDomainConfigured
	case strings.TrimSpace(config.Token) == "":
		return nil, constants.ErrNoTokenConfigured
	case strings.TrimSpace(config.PortalID) == "":
		return nil, constants.ErrNoPortalIDConfigured
	}

	return hsclient.New(&hubspot.Config{
		Domain:     config.Domain,
		Token:      config.Token,
		PortalID:   config.PortalID,
		HTTPClient: &http.Client{Timeout: constants.DefaultHTTPTimeout},
		Logger:     defaultLogger(),
		Debug:      viper.GetBool("verbose"),
		RetryMax:   constants.CLIRetryMax,
	})
}
