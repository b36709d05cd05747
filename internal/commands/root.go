package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gestorpro/internal/api"
	"gestorpro/internal/config"
	"gestorpro/internal/models"
)

var globalConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "gestorpro",
	Short: "GestorPro - An agency management console",
	Long: `GestorPro is a console for agencies: it tracks clients, projects,
per-project notes, links and AI prompt logs, and a fleet of messaging
chatbots hosted on the builder-bot platform. All data lives behind the
configured backend scripts; this client keeps only a session file.`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute(cfg *config.Config) error {
	globalConfig = cfg
	return rootCmd.Execute()
}

// newGateway builds a gateway after checking the endpoints are configured
func newGateway() (*api.Gateway, error) {
	if err := globalConfig.Validate(); err != nil {
		return nil, fmt.Errorf("endpoints not configured (run 'gestorpro config set' or define %s/%s): %w",
			config.EnvAuthScriptURL, config.EnvDataScriptURL, err)
	}

	configDir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	return api.NewGateway(globalConfig, models.NewSessionStore(configDir)), nil
}

// describe turns a gateway error into the message shown to the user,
// appending deployment troubleshooting for transport failures
func describe(err error) string {
	var transportErr *models.TransportError
	if errors.As(err, &transportErr) {
		return fmt.Sprintf(`%v

The script endpoint could not be reached. Open %s in a browser:
a "script finished but returned nothing" page means the deployment is fine
and the problem is elsewhere; a Google error page means the script must be
redeployed with access set to "Anyone". Every script change needs a new
deployment, and the new URL must go into the configuration.`,
			err, transportErr.Endpoint)
	}
	if errors.Is(err, models.ErrUnauthenticated) {
		return "You are not logged in. Run 'gestorpro login' first."
	}
	return err.Error()
}

func init() {
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(promptsCmd)
	rootCmd.AddCommand(botsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(configCmd)
}
