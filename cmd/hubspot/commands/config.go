package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/hubspot-client/internal/auth"
	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration file.
type Config struct {
	Domain   string `json:"domain"              yaml:"domain"`
	Token    string `json:"token,omitempty"     yaml:"token,omitempty"`
	PortalID string `json:"portal_id,omitempty" yaml:"portal_id,omitempty"`
	Output   string `json:"output,omitempty"    yaml:"output,omitempty"`
}

// configKeys maps the user facing key names to Config fields.
var configKeys = map[string]func(*Config, string){
	"domain":    func(c *Config, v string) { c.Domain = v },
	"portal-id": func(c *Config, v string) { c.PortalID = v },
	"output":    func(c *Config, v string) { c.Output = v },
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the domain, access token and portal id the CLI uses",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigSetTokenCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration with the access token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.Token = auth.MaskToken(config.Token)

			return render(cmd.OutOrStdout(), config, func(table *tableWriter) {
				table.header("Property", "Value")
				table.row("Domain", config.Domain)
				table.row("Token", config.Token)
				table.row("Portal ID", config.PortalID)
				table.row("Output", config.Output)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set one of: domain, portal-id, output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], strings.TrimSpace(args[1])

			apply, ok := configKeys[key]
			if !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			if key == "output" {
				err := validateOutputFormat(value)
				if err != nil {
					return err
				}
			}

			config := loadConfig()
			apply(config, value)

			err := saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", key, value)

			return nil
		},
	}
}

func newConfigSetTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-token",
		Short: "Store the access token",
		Long:  "Read a private app access token from the terminal without echo, or from stdin when piped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readToken(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			config := loadConfig()
			config.Token = token

			err = saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored token %s\n", auth.MaskToken(token))

			return nil
		},
	}
}

func readToken(in io.Reader, prompt io.Writer) (string, error) {
	var raw string

	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		_, _ = fmt.Fprint(prompt, "Access token: ")

		tokenBytes, err := term.ReadPassword(int(file.Fd()))

		_, _ = fmt.Fprintln(prompt)

		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}

		raw = string(tokenBytes)
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("failed to read token: %w", err)
		}

		raw = line
	}

	token := strings.TrimSpace(raw)
	if token == "" {
		return "", constants.ErrEmptyToken
	}

	return token, nil
}

func loadConfig() *Config {
	return &Config{
		Domain:   viper.GetString("domain"),
		Token:    viper.GetString("token"),
		PortalID: viper.GetString("portal_id"),
		Output:   viper.GetString("output"),
	}
}

func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	configDir, err := configDirectory()
	if err != nil {
		return "", err
	}

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, constants.ConfigFileName+".yml"), nil
}

func saveConfig(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	viper.Set("domain", config.Domain)
	viper.Set("token", config.Token)
	viper.Set("portal_id", config.PortalID)
	viper.Set("output", config.Output)

	return nil
}
