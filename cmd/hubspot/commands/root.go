package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand builds the hubspot command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hubspot",
		Short: "HubSpot CRM API CLI",
		Long: `A command-line interface for the HubSpot CRM API.

It reads, creates, updates and archives CRM records, runs batch calls,
manages associations between records and looks up owners.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.hubspot/config.yml)")
	flags.String("env-file", "", "dotenv file loaded before reading HUBSPOT_* variables")
	flags.StringP("domain", "d", "", "API host")
	flags.StringP("token", "t", "", "private app access token")
	flags.String("portal-id", "", "HubSpot account id")
	flags.StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "log every request")
	flags.String("log-format", "text", "log format (text, json)")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("env-file", flags.Lookup("env-file"))
	_ = viper.BindPFlag("domain", flags.Lookup("domain"))
	_ = viper.BindPFlag("token", flags.Lookup("token"))
	_ = viper.BindPFlag("portal_id", flags.Lookup("portal-id"))
	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("log_format", flags.Lookup("log-format"))

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewObjectsCommand())
	rootCmd.AddCommand(NewBatchCommand())
	rootCmd.AddCommand(NewAssociationsCommand())
	rootCmd.AddCommand(NewOwnersCommand())
	rootCmd.AddCommand(NewNotesCommand())

	return rootCmd
}

func initConfig() error {
	envFile := viper.GetString("env-file")
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("domain", constants.DefaultDomain)
	viper.SetDefault("log_level", "info")

	cfgFile := viper.GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		configDir, err := configDirectory()
		if err != nil {
			return err
		}

		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName(constants.ConfigFileName)
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}

	return nil
}

func configDirectory() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName), nil
}
