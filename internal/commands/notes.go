package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gestorpro/internal/cache"
	"gestorpro/internal/models"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage per-project notes",
}

// newNoteCache builds the note cache with the pinned-first ordering applied
// after every refresh and mutation
func newNoteCache() *cache.List[models.Note] {
	list := cache.NewList(func(n models.Note) string { return n.ID })
	list.SetSort(func(a, b models.Note) bool {
		if a.Pinned() != b.Pinned() {
			return a.Pinned()
		}
		return a.Created().After(b.Created())
	})
	return list
}

func noteMutator(list *cache.List[models.Note]) *cache.Mutator[models.Note] {
	return cache.NewMutator(list, nil,
		func(n models.Note) string { return n.ID },
		func(n models.Note, id string) models.Note { n.ID = id; return n },
	)
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a project's notes, pinned first",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		projectID, _ := cmd.Flags().GetString("project")
		notes, err := gateway.GetNotesByProjectID(cmd.Context(), projectID)
		if err != nil {
			return fmt.Errorf("error fetching notes: %s", describe(err))
		}

		list := newNoteCache()
		list.Replace(notes)

		if list.Len() == 0 {
			fmt.Println("No notes for this project.")
			return nil
		}

		pin := color.New(color.FgCyan)
		for _, note := range list.Items() {
			if note.IsPinned {
				pin.Print("* ")
			} else {
				fmt.Print("  ")
			}
			fmt.Printf("%s (%s)  %s\n", note.Title, note.ID, note.CreatedAt)
			fmt.Printf("    %s\n", note.Content)
		}
		return nil
	},
}

var notesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a note to a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		note := models.Note{}
		note.ProjectID, _ = cmd.Flags().GetString("project")
		note.Title, _ = cmd.Flags().GetString("title")
		note.Content, _ = cmd.Flags().GetString("content")

		created, err := gateway.AddNote(cmd.Context(), note)
		if err != nil {
			return fmt.Errorf("error adding note: %s", describe(err))
		}

		fmt.Printf("Created note %s (%s)\n", created.Title, created.ID)
		return nil
	},
}

var notesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		projectID, _ := cmd.Flags().GetString("project")
		notes, err := gateway.GetNotesByProjectID(ctx, projectID)
		if err != nil {
			return fmt.Errorf("error fetching notes: %s", describe(err))
		}

		list := newNoteCache()
		list.Replace(notes)
		note, ok := list.Find(args[0])
		if !ok {
			return fmt.Errorf("no note with id %s", args[0])
		}

		if v, _ := cmd.Flags().GetString("title"); v != "" {
			note.Title = v
		}
		if v, _ := cmd.Flags().GetString("content"); v != "" {
			note.Content = v
		}

		updated, err := noteMutator(list).Update(ctx, note, gateway.UpdateNote)
		if err != nil {
			return fmt.Errorf("error updating note: %s", describe(err))
		}

		fmt.Printf("Updated note %s\n", updated.Title)
		return nil
	},
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		if err := gateway.DeleteNote(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("error deleting note: %s", describe(err))
		}

		fmt.Println("Note deleted")
		return nil
	},
}

var notesPinCmd = &cobra.Command{
	Use:   "pin <id>",
	Short: "Pin a note to the top of its project",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return toggleNotePin(cmd, args[0], true) },
}

var notesUnpinCmd = &cobra.Command{
	Use:   "unpin <id>",
	Short: "Unpin a note",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return toggleNotePin(cmd, args[0], false) },
}

func toggleNotePin(cmd *cobra.Command, noteID string, pinned bool) error {
	gateway, err := newGateway()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	projectID, _ := cmd.Flags().GetString("project")
	notes, err := gateway.GetNotesByProjectID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("error fetching notes: %s", describe(err))
	}

	list := newNoteCache()
	list.Replace(notes)
	note, ok := list.Find(noteID)
	if !ok {
		return fmt.Errorf("no note with id %s", noteID)
	}

	note.IsPinned = pinned
	if _, err := noteMutator(list).Update(ctx, note, gateway.UpdateNote); err != nil {
		return fmt.Errorf("error updating note: %s", describe(err))
	}

	if pinned {
		fmt.Printf("Pinned %s\n", note.Title)
	} else {
		fmt.Printf("Unpinned %s\n", note.Title)
	}
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{notesListCmd, notesAddCmd, notesUpdateCmd, notesDeleteCmd, notesPinCmd, notesUnpinCmd} {
		cmd.Flags().String("project", "", "Project id")
		_ = cmd.MarkFlagRequired("project")
	}

	notesAddCmd.Flags().String("title", "", "Note title")
	notesAddCmd.Flags().String("content", "", "Note content")
	notesUpdateCmd.Flags().String("title", "", "Note title")
	notesUpdateCmd.Flags().String("content", "", "Note content")

	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesAddCmd)
	notesCmd.AddCommand(notesUpdateCmd)
	notesCmd.AddCommand(notesDeleteCmd)
	notesCmd.AddCommand(notesPinCmd)
	notesCmd.AddCommand(notesUnpinCmd)
}
