package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gestorpro/internal/auth"
	"gestorpro/internal/models"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with a WhatsApp number or email",
	Long:  "Authenticate against the auth script: identify, verify a one-time code, registering first if the identifier is new",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		reader := bufio.NewReader(os.Stdin)
		handshake := auth.New(gateway)

		identifier := promptLine(reader, "WhatsApp or Email: ")
		if err := handshake.SubmitIdentifier(ctx, identifier); err != nil {
			return fmt.Errorf("login failed: %s", describe(err))
		}

		if handshake.Stage() == auth.StageRegistering {
			fmt.Println("Looks like you are new. Complete your registration to continue.")
			form := handshake.Form()
			form.FirstName = promptLine(reader, "First name: ")
			form.LastName = promptLine(reader, "Last name: ")
			if form.WhatsApp == "" {
				form.WhatsApp = promptLine(reader, "WhatsApp: ")
			}
			if form.Email == "" {
				form.Email = promptLine(reader, "Email: ")
			}
			form.BirthDate = promptLine(reader, "Birth date (YYYY-MM-DD): ")

			if err := handshake.SubmitRegistration(ctx, form); err != nil {
				return fmt.Errorf("registration failed: %s", describe(err))
			}
		}

		if msg := handshake.Message(); msg != "" {
			fmt.Println(msg)
		}
		fmt.Printf("A 6-digit code was sent to %s.\n", handshake.Identifier())

		code := promptLine(reader, "Verification code: ")
		session, err := handshake.SubmitCode(ctx, code)
		if err != nil {
			return fmt.Errorf("login failed: %s", describe(err))
		}

		if err := gateway.SetSession(session); err != nil {
			return err
		}

		fmt.Printf("Successfully logged in as %s\n", handshake.Identifier())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		if err := gateway.ClearSession(); err != nil {
			return fmt.Errorf("error clearing session: %w", err)
		}

		fmt.Println("Successfully logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		session, err := gateway.Session()
		if err != nil {
			if errors.Is(err, models.ErrUnauthenticated) {
				fmt.Println("You are not logged in")
				return nil
			}
			return err
		}

		fmt.Printf("Tenant: %s\n", session.IDSheet)
		fmt.Printf("Data endpoint: %s\n", globalConfig.DataScriptURL)
		return nil
	},
}

// promptLine reads one trimmed line of input
func promptLine(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
