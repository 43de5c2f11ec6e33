package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func noteForm(folder, title, text, priority string, favourite bool) map[string]string {
	form := map[string]string{
		"folderId": folder,
		"title":    title,
		"text":     text,
		"priority": priority,
	}
	if favourite {
		form["isFavourite"] = "true"
	}
	return form
}

func init() {
	notesCmd := &cobra.Command{Use: "notes", Short: "Note operations"}

	getCmd := &cobra.Command{
		Use:   "get NOTE_ID",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Get("/Notes/Details/" + args[0])
			return printResponse(os.Stdout, resp, err)
		},
	}
	notesCmd.AddCommand(getCmd)

	var folder, title, text, priority string
	var favourite bool
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note in a folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			if folder == "" || title == "" {
				return fmt.Errorf("--folder and --title required")
			}
			resp, err := newClient().R().
				SetFormData(noteForm(folder, title, text, priority, favourite)).
				Post("/Notes/Create")
			return printResponse(os.Stdout, resp, err)
		},
	}
	createCmd.Flags().StringVarP(&folder, "folder", "f", "", "Folder ID (required)")
	createCmd.Flags().StringVarP(&title, "title", "t", "", "Note title (required)")
	createCmd.Flags().StringVarP(&text, "text", "x", "", "Note text")
	createCmd.Flags().StringVarP(&priority, "priority", "p", "normal", "Priority: normal, high or critical")
	createCmd.Flags().BoolVar(&favourite, "fav", false, "Mark as favourite")
	notesCmd.AddCommand(createCmd)

	var eFolder, eTitle, eText, ePriority string
	var eFavourite bool
	editCmd := &cobra.Command{
		Use:   "edit NOTE_ID",
		Short: "Edit a note (can move it to another folder)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if eFolder == "" || eTitle == "" {
				return fmt.Errorf("--folder and --title required")
			}
			resp, err := newClient().R().
				SetFormData(noteForm(eFolder, eTitle, eText, ePriority, eFavourite)).
				Post("/Notes/Edit/" + args[0])
			return printResponse(os.Stdout, resp, err)
		},
	}
	editCmd.Flags().StringVarP(&eFolder, "folder", "f", "", "Folder ID (required)")
	editCmd.Flags().StringVarP(&eTitle, "title", "t", "", "Note title (required)")
	editCmd.Flags().StringVarP(&eText, "text", "x", "", "Note text")
	editCmd.Flags().StringVarP(&ePriority, "priority", "p", "normal", "Priority: normal, high or critical")
	editCmd.Flags().BoolVar(&eFavourite, "fav", false, "Mark as favourite")
	notesCmd.AddCommand(editCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete NOTE_ID",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Post("/Notes/Delete/" + args[0])
			return printResponse(os.Stdout, resp, err)
		},
	}
	notesCmd.AddCommand(deleteCmd)

	searchCmd := &cobra.Command{
		Use:   "search [QUERY]",
		Short: "Search note titles across all folders (empty query lists all)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			resp, err := newClient().R().
				SetFormData(map[string]string{"searchQuery": query}).
				Post("/Notes/All")
			return printResponse(os.Stdout, resp, err)
		},
	}
	notesCmd.AddCommand(searchCmd)

	favouritesCmd := &cobra.Command{
		Use:   "favourites",
		Short: "List favourite notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Get("/Notes/Favourites")
			return printResponse(os.Stdout, resp, err)
		},
	}
	notesCmd.AddCommand(favouritesCmd)

	rootCmd.AddCommand(notesCmd)
}
