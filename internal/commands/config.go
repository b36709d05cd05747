package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gestorpro/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or change the local configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}

		fmt.Printf("Config file:        %s\n", path)
		fmt.Printf("auth_url:           %s\n", orUnset(globalConfig.AuthScriptURL))
		fmt.Printf("data_url:           %s\n", orUnset(globalConfig.DataScriptURL))
		fmt.Printf("bot_poll:           %s\n", globalConfig.BotPollInterval())
		fmt.Printf("dashboard_poll:     %s\n", globalConfig.DashboardPollInterval())
		fmt.Printf("request_timeout:    %s\n", globalConfig.RequestTimeout())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration key and write the config file",
	Long: `Set a configuration key and write the config file.

Keys:
  auth_url         Auth script endpoint
  data_url         Data script endpoint
  bot_poll         Bot poll interval in seconds
  dashboard_poll   Dashboard poll interval in seconds
  request_timeout  HTTP request timeout in seconds`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		switch key {
		case "auth_url":
			globalConfig.AuthScriptURL = value
		case "data_url":
			globalConfig.DataScriptURL = value
		case "bot_poll", "dashboard_poll", "request_timeout":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return fmt.Errorf("%s must be a positive number of seconds", key)
			}
			switch key {
			case "bot_poll":
				globalConfig.BotPollSeconds = n
			case "dashboard_poll":
				globalConfig.DashboardPollSeconds = n
			case "request_timeout":
				globalConfig.RequestTimeoutSeconds = n
			}
		default:
			return fmt.Errorf("unknown key %q", key)
		}

		path, err := config.Path()
		if err != nil {
			return err
		}
		if err := globalConfig.Save(path); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}

		fmt.Printf("Set %s\n", key)
		return nil
	},
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
