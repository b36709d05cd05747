package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gestorpro/internal/cache"
	"gestorpro/internal/models"
	"gestorpro/internal/util"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Manage a project's AI prompt log",
}

func newPromptCache() *cache.List[models.Prompt] {
	list := cache.NewList(func(p models.Prompt) string { return p.ID })
	list.SetSort(func(a, b models.Prompt) bool {
		if a.Pinned() != b.Pinned() {
			return a.Pinned()
		}
		return a.Created().After(b.Created())
	})
	return list
}

func promptMutator(list *cache.List[models.Prompt]) *cache.Mutator[models.Prompt] {
	return cache.NewMutator(list, nil,
		func(p models.Prompt) string { return p.ID },
		func(p models.Prompt, id string) models.Prompt { p.ID = id; return p },
	)
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a project's logged prompts, pinned first",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		projectID, _ := cmd.Flags().GetString("project")
		prompts, err := gateway.GetPromptsByProjectID(cmd.Context(), projectID)
		if err != nil {
			return fmt.Errorf("error fetching prompts: %s", describe(err))
		}

		list := newPromptCache()
		list.Replace(prompts)

		if list.Len() == 0 {
			fmt.Println("No prompts logged for this project.")
			return nil
		}

		pin := color.New(color.FgCyan)
		for _, prompt := range list.Items() {
			if prompt.IsPinned {
				pin.Print("* ")
			} else {
				fmt.Print("  ")
			}
			fmt.Printf("%s (%s)\n", util.Truncate(prompt.Prompt, 72), prompt.ID)
			if prompt.Response != "" {
				fmt.Printf("    -> %s\n", util.Truncate(prompt.Response, 68))
			}
		}
		return nil
	},
}

var promptsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a prompt/response pair for a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		prompt := models.Prompt{}
		prompt.ProjectID, _ = cmd.Flags().GetString("project")
		prompt.Prompt, _ = cmd.Flags().GetString("prompt")
		prompt.Response, _ = cmd.Flags().GetString("response")

		created, err := gateway.AddPrompt(cmd.Context(), prompt)
		if err != nil {
			return fmt.Errorf("error logging prompt: %s", describe(err))
		}

		fmt.Printf("Logged prompt %s\n", created.ID)
		return nil
	},
}

var promptsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a logged prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		projectID, _ := cmd.Flags().GetString("project")
		prompts, err := gateway.GetPromptsByProjectID(ctx, projectID)
		if err != nil {
			return fmt.Errorf("error fetching prompts: %s", describe(err))
		}

		list := newPromptCache()
		list.Replace(prompts)
		prompt, ok := list.Find(args[0])
		if !ok {
			return fmt.Errorf("no prompt with id %s", args[0])
		}

		if v, _ := cmd.Flags().GetString("prompt"); v != "" {
			prompt.Prompt = v
		}
		if v, _ := cmd.Flags().GetString("response"); v != "" {
			prompt.Response = v
		}

		if _, err := promptMutator(list).Update(ctx, prompt, gateway.UpdatePrompt); err != nil {
			return fmt.Errorf("error updating prompt: %s", describe(err))
		}

		fmt.Printf("Updated prompt %s\n", prompt.ID)
		return nil
	},
}

var promptsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		if err := gateway.DeletePrompt(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("error deleting prompt: %s", describe(err))
		}

		fmt.Println("Prompt deleted")
		return nil
	},
}

var promptsPinCmd = &cobra.Command{
	Use:   "pin <id>",
	Short: "Pin a prompt to the top of its project",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return togglePromptPin(cmd, args[0], true) },
}

var promptsUnpinCmd = &cobra.Command{
	Use:   "unpin <id>",
	Short: "Unpin a prompt",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return togglePromptPin(cmd, args[0], false) },
}

func togglePromptPin(cmd *cobra.Command, promptID string, pinned bool) error {
	gateway, err := newGateway()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	projectID, _ := cmd.Flags().GetString("project")
	prompts, err := gateway.GetPromptsByProjectID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("error fetching prompts: %s", describe(err))
	}

	list := newPromptCache()
	list.Replace(prompts)
	prompt, ok := list.Find(promptID)
	if !ok {
		return fmt.Errorf("no prompt with id %s", promptID)
	}

	prompt.IsPinned = pinned
	if _, err := promptMutator(list).Update(ctx, prompt, gateway.UpdatePrompt); err != nil {
		return fmt.Errorf("error updating prompt: %s", describe(err))
	}

	if pinned {
		fmt.Printf("Pinned prompt %s\n", prompt.ID)
	} else {
		fmt.Printf("Unpinned prompt %s\n", prompt.ID)
	}
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{promptsListCmd, promptsAddCmd, promptsUpdateCmd, promptsDeleteCmd, promptsPinCmd, promptsUnpinCmd} {
		cmd.Flags().String("project", "", "Project id")
		_ = cmd.MarkFlagRequired("project")
	}

	promptsAddCmd.Flags().String("prompt", "", "Prompt text")
	promptsAddCmd.Flags().String("response", "", "Response text")
	promptsUpdateCmd.Flags().String("prompt", "", "Prompt text")
	promptsUpdateCmd.Flags().String("response", "", "Response text")

	promptsCmd.AddCommand(promptsListCmd)
	promptsCmd.AddCommand(promptsAddCmd)
	promptsCmd.AddCommand(promptsUpdateCmd)
	promptsCmd.AddCommand(promptsDeleteCmd)
	promptsCmd.AddCommand(promptsPinCmd)
	promptsCmd.AddCommand(promptsUnpinCmd)
}
