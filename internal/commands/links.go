package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gestorpro/internal/cache"
	"gestorpro/internal/models"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Manage per-project links",
}

func newLinkCache() *cache.List[models.Link] {
	list := cache.NewList(func(l models.Link) string { return l.ID })
	list.SetSort(func(a, b models.Link) bool {
		if a.Pinned() != b.Pinned() {
			return a.Pinned()
		}
		return a.Created().After(b.Created())
	})
	return list
}

func linkMutator(list *cache.List[models.Link]) *cache.Mutator[models.Link] {
	return cache.NewMutator(list, nil,
		func(l models.Link) string { return l.ID },
		func(l models.Link, id string) models.Link { l.ID = id; return l },
	)
}

var linksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a project's links, pinned first",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		projectID, _ := cmd.Flags().GetString("project")
		links, err := gateway.GetLinksByProjectID(cmd.Context(), projectID)
		if err != nil {
			return fmt.Errorf("error fetching links: %s", describe(err))
		}

		list := newLinkCache()
		list.Replace(links)

		if list.Len() == 0 {
			fmt.Println("No links for this project.")
			return nil
		}

		pin := color.New(color.FgCyan)
		for _, link := range list.Items() {
			if link.IsPinned {
				pin.Print("* ")
			} else {
				fmt.Print("  ")
			}
			fmt.Printf("%s (%s)\n", link.URL, link.ID)
			if link.Description != "" {
				fmt.Printf("    %s\n", link.Description)
			}
		}
		return nil
	},
}

var linksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a link to a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		link := models.Link{}
		link.ProjectID, _ = cmd.Flags().GetString("project")
		link.URL, _ = cmd.Flags().GetString("url")
		link.Description, _ = cmd.Flags().GetString("description")

		created, err := gateway.AddLink(cmd.Context(), link)
		if err != nil {
			return fmt.Errorf("error adding link: %s", describe(err))
		}

		fmt.Printf("Created link %s (%s)\n", created.URL, created.ID)
		return nil
	},
}

var linksUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		projectID, _ := cmd.Flags().GetString("project")
		links, err := gateway.GetLinksByProjectID(ctx, projectID)
		if err != nil {
			return fmt.Errorf("error fetching links: %s", describe(err))
		}

		list := newLinkCache()
		list.Replace(links)
		link, ok := list.Find(args[0])
		if !ok {
			return fmt.Errorf("no link with id %s", args[0])
		}

		if v, _ := cmd.Flags().GetString("url"); v != "" {
			link.URL = v
		}
		if v, _ := cmd.Flags().GetString("description"); v != "" {
			link.Description = v
		}

		updated, err := linkMutator(list).Update(ctx, link, gateway.UpdateLink)
		if err != nil {
			return fmt.Errorf("error updating link: %s", describe(err))
		}

		fmt.Printf("Updated link %s\n", updated.URL)
		return nil
	},
}

var linksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		if err := gateway.DeleteLink(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("error deleting link: %s", describe(err))
		}

		fmt.Println("Link deleted")
		return nil
	},
}

var linksPinCmd = &cobra.Command{
	Use:   "pin <id>",
	Short: "Pin a link to the top of its project",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return toggleLinkPin(cmd, args[0], true) },
}

var linksUnpinCmd = &cobra.Command{
	Use:   "unpin <id>",
	Short: "Unpin a link",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return toggleLinkPin(cmd, args[0], false) },
}

func toggleLinkPin(cmd *cobra.Command, linkID string, pinned bool) error {
	gateway, err := newGateway()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	projectID, _ := cmd.Flags().GetString("project")
	links, err := gateway.GetLinksByProjectID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("error fetching links: %s", describe(err))
	}

	list := newLinkCache()
	list.Replace(links)
	link, ok := list.Find(linkID)
	if !ok {
		return fmt.Errorf("no link with id %s", linkID)
	}

	link.IsPinned = pinned
	if _, err := linkMutator(list).Update(ctx, link, gateway.UpdateLink); err != nil {
		return fmt.Errorf("error updating link: %s", describe(err))
	}

	if pinned {
		fmt.Printf("Pinned %s\n", link.URL)
	} else {
		fmt.Printf("Unpinned %s\n", link.URL)
	}
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{linksListCmd, linksAddCmd, linksUpdateCmd, linksDeleteCmd, linksPinCmd, linksUnpinCmd} {
		cmd.Flags().String("project", "", "Project id")
		_ = cmd.MarkFlagRequired("project")
	}

	linksAddCmd.Flags().String("url", "", "Link URL")
	linksAddCmd.Flags().String("description", "", "Description")
	linksUpdateCmd.Flags().String("url", "", "Link URL")
	linksUpdateCmd.Flags().String("description", "", "Description")

	linksCmd.AddCommand(linksListCmd)
	linksCmd.AddCommand(linksAddCmd)
	linksCmd.AddCommand(linksUpdateCmd)
	linksCmd.AddCommand(linksDeleteCmd)
	linksCmd.AddCommand(linksPinCmd)
	linksCmd.AddCommand(linksUnpinCmd)
}
