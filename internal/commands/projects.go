package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gestorpro/internal/models"
	"gestorpro/internal/util"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage client projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		projects, err := gateway.GetProjects(cmd.Context())
		if err != nil {
			return fmt.Errorf("error fetching projects: %s", describe(err))
		}

		if len(projects) == 0 {
			fmt.Println("No projects yet. Use 'gestorpro projects add' to create one.")
			return nil
		}

		sort.SliceStable(projects, func(i, j int) bool {
			return projects[i].Start().After(projects[j].Start())
		})

		bold := color.New(color.Bold)
		for _, project := range projects {
			bold.Printf("%s", project.Name)
			fmt.Printf("  (%s)\n", project.ID)
			fmt.Printf("  Client: %s  Status: %s  Budget: %s\n",
				project.ClientName, statusLabel(project.Status), util.FormatBudget(project.Budget))
			fmt.Printf("  %s -> %s\n", project.StartDate, project.EndDate)
		}
		return nil
	},
}

var projectsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new project",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		project := models.Project{Status: models.StatusNotStarted}
		project.Name, _ = cmd.Flags().GetString("name")
		project.ClientID, _ = cmd.Flags().GetString("client")
		project.StartDate, _ = cmd.Flags().GetString("start")
		project.EndDate, _ = cmd.Flags().GetString("end")
		project.Budget, _ = cmd.Flags().GetFloat64("budget")

		if statusFlag, _ := cmd.Flags().GetString("status"); statusFlag != "" {
			status, err := models.ParseProjectStatus(statusFlag)
			if err != nil {
				return fmt.Errorf("%w (valid: %s)", err, statusValues())
			}
			project.Status = status
		}

		created, err := gateway.AddProject(cmd.Context(), project)
		if err != nil {
			return fmt.Errorf("error adding project: %s", describe(err))
		}

		fmt.Printf("Created project %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var projectsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an existing project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		projects, err := gateway.GetProjects(ctx)
		if err != nil {
			return fmt.Errorf("error fetching projects: %s", describe(err))
		}

		var project *models.Project
		for i := range projects {
			if projects[i].ID == args[0] {
				project = &projects[i]
				break
			}
		}
		if project == nil {
			return fmt.Errorf("no project with id %s", args[0])
		}

		if v, _ := cmd.Flags().GetString("name"); v != "" {
			project.Name = v
		}
		if v, _ := cmd.Flags().GetString("client"); v != "" {
			project.ClientID = v
		}
		if v, _ := cmd.Flags().GetString("start"); v != "" {
			project.StartDate = v
		}
		if v, _ := cmd.Flags().GetString("end"); v != "" {
			project.EndDate = v
		}
		if cmd.Flags().Changed("budget") {
			project.Budget, _ = cmd.Flags().GetFloat64("budget")
		}
		if v, _ := cmd.Flags().GetString("status"); v != "" {
			status, err := models.ParseProjectStatus(v)
			if err != nil {
				return fmt.Errorf("%w (valid: %s)", err, statusValues())
			}
			project.Status = status
		}

		updated, err := gateway.UpdateProject(ctx, *project)
		if err != nil {
			return fmt.Errorf("error updating project: %s", describe(err))
		}

		fmt.Printf("Updated project %s\n", updated.Name)
		return nil
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		if err := gateway.DeleteProject(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("error deleting project: %s", describe(err))
		}

		fmt.Println("Project deleted")
		return nil
	},
}

// statusLabel colors a project status for terminal output
func statusLabel(status models.ProjectStatus) string {
	switch status {
	case models.StatusInProgress:
		return color.BlueString(string(status))
	case models.StatusCompleted:
		return color.GreenString(string(status))
	case models.StatusOnHold:
		return color.YellowString(string(status))
	}
	return string(status)
}

func statusValues() string {
	values := make([]string, len(models.ProjectStatuses))
	for i, s := range models.ProjectStatuses {
		values[i] = string(s)
	}
	return strings.Join(values, ", ")
}

func init() {
	projectsAddCmd.Flags().String("name", "", "Project name")
	projectsAddCmd.Flags().String("client", "", "Client id")
	projectsAddCmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	projectsAddCmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	projectsAddCmd.Flags().Float64("budget", 0, "Budget")
	projectsAddCmd.Flags().String("status", "", "Project status")

	projectsUpdateCmd.Flags().String("name", "", "Project name")
	projectsUpdateCmd.Flags().String("client", "", "Client id")
	projectsUpdateCmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	projectsUpdateCmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	projectsUpdateCmd.Flags().Float64("budget", 0, "Budget")
	projectsUpdateCmd.Flags().String("status", "", "Project status")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsAddCmd)
	projectsCmd.AddCommand(projectsUpdateCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
}
