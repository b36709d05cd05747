package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gestorpro/internal/models"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage agency clients",
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		clients, err := gateway.GetClients(cmd.Context())
		if err != nil {
			return fmt.Errorf("error fetching clients: %s", describe(err))
		}

		if len(clients) == 0 {
			fmt.Println("No clients yet. Use 'gestorpro clients add' to create one.")
			return nil
		}

		bold := color.New(color.Bold)
		for _, client := range clients {
			bold.Printf("%s", client.Name)
			fmt.Printf("  (%s)\n", client.ID)
			fmt.Printf("  Contact: %s  Email: %s  Phone: %s\n", client.ContactPerson, client.Email, client.Phone)
		}
		return nil
	},
}

var clientsFindCmd = &cobra.Command{
	Use:   "find <phone>",
	Short: "Find a client by phone number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		client, err := gateway.GetClientByPhone(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error searching clients: %s", describe(err))
		}
		if client == nil {
			fmt.Printf("No client with phone %s\n", args[0])
			return nil
		}

		fmt.Printf("%s (%s)\n", client.Name, client.ID)
		fmt.Printf("Contact: %s  Email: %s  Phone: %s\n", client.ContactPerson, client.Email, client.Phone)
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new client",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		client := models.Client{}
		client.Name, _ = cmd.Flags().GetString("name")
		client.ContactPerson, _ = cmd.Flags().GetString("contact")
		client.Email, _ = cmd.Flags().GetString("email")
		client.Phone, _ = cmd.Flags().GetString("phone")

		created, err := gateway.AddClient(cmd.Context(), client)
		if err != nil {
			return fmt.Errorf("error adding client: %s", describe(err))
		}

		fmt.Printf("Created client %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var clientsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an existing client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		clients, err := gateway.GetClients(ctx)
		if err != nil {
			return fmt.Errorf("error fetching clients: %s", describe(err))
		}

		var client *models.Client
		for i := range clients {
			if clients[i].ID == args[0] {
				client = &clients[i]
				break
			}
		}
		if client == nil {
			return fmt.Errorf("no client with id %s", args[0])
		}

		if v, _ := cmd.Flags().GetString("name"); v != "" {
			client.Name = v
		}
		if v, _ := cmd.Flags().GetString("contact"); v != "" {
			client.ContactPerson = v
		}
		if v, _ := cmd.Flags().GetString("email"); v != "" {
			client.Email = v
		}
		if v, _ := cmd.Flags().GetString("phone"); v != "" {
			client.Phone = v
		}

		updated, err := gateway.UpdateClient(ctx, *client)
		if err != nil {
			return fmt.Errorf("error updating client: %s", describe(err))
		}

		fmt.Printf("Updated client %s\n", updated.Name)
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		if err := gateway.DeleteClient(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("error deleting client: %s", describe(err))
		}

		fmt.Println("Client deleted")
		return nil
	},
}

func init() {
	clientsAddCmd.Flags().String("name", "", "Client name")
	clientsAddCmd.Flags().String("contact", "", "Contact person")
	clientsAddCmd.Flags().String("email", "", "Email address")
	clientsAddCmd.Flags().String("phone", "", "Phone number")

	clientsUpdateCmd.Flags().String("name", "", "Client name")
	clientsUpdateCmd.Flags().String("contact", "", "Contact person")
	clientsUpdateCmd.Flags().String("email", "", "Email address")
	clientsUpdateCmd.Flags().String("phone", "", "Phone number")

	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsFindCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsUpdateCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)
}
