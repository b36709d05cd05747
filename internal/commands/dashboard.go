package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gestorpro/internal/models"
	"gestorpro/internal/util"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show agency-wide totals and upcoming deliveries",
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
		projects, err := gateway.GetProjects(ctx)
		if err != nil {
			return fmt.Errorf("error fetching projects: %s", describe(err))
		}
		bots, err := gateway.GetBots(ctx)
		if err != nil {
			return fmt.Errorf("error fetching bots: %s", describe(err))
		}

		var total float64
		active := 0
		for _, p := range projects {
			total += p.Budget
			if p.Status == models.StatusInProgress {
				active++
			}
		}

		bold := color.New(color.Bold)
		bold.Println("GestorPro dashboard")
		fmt.Printf("  Clients:         %d\n", len(clients))
		fmt.Printf("  Projects:        %d (%d in progress)\n", len(projects), active)
		fmt.Printf("  Active bots:     %d of %d\n", models.CountActive(bots), len(bots))
		fmt.Printf("  Total budget:    %s\n", util.FormatBudget(total))

		upcoming := models.UpcomingDeliveries(projects, time.Now(), 4)
		if len(upcoming) == 0 {
			fmt.Println("\nNo upcoming deliveries.")
			return nil
		}

		bold.Println("\nUpcoming deliveries")
		for _, p := range upcoming {
			fmt.Printf("  %s  %s (%s)\n", p.End().Format("2006-01-02"), p.Name, statusLabel(p.Status))
		}
		return nil
	},
}
