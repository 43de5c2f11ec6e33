package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	foldersCmd := &cobra.Command{Use: "folders", Short: "Folder operations"}

	rootFolderCmd := &cobra.Command{
		Use:   "root",
		Short: "Show the caller's root folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Get("/Folders/Root")
			return printResponse(os.Stdout, resp, err)
		},
	}
	foldersCmd.AddCommand(rootFolderCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every folder of the caller",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Get("/Folders/List")
			return printResponse(os.Stdout, resp, err)
		},
	}
	foldersCmd.AddCommand(listCmd)

	var sortType string
	var ascending bool
	detailsCmd := &cobra.Command{
		Use:   "details FOLDER_ID",
		Short: "Show a folder with its child folders and notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := newClient().R()
			if sortType != "" {
				req.SetQueryParam("sortType", sortType)
			}
			if ascending {
				req.SetQueryParam("dir", "asc")
			}
			resp, err := req.Get("/Folders/Details/" + args[0])
			return printResponse(os.Stdout, resp, err)
		},
	}
	detailsCmd.Flags().StringVarP(&sortType, "sort", "s", "", "Sort key: title, priority or date")
	detailsCmd.Flags().BoolVar(&ascending, "asc", false, "Sort ascending")
	foldersCmd.AddCommand(detailsCmd)

	var title, parent, image string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a folder with a cover image",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" || image == "" {
				return fmt.Errorf("--title and --image required")
			}
			req := newClient().R().
				SetFormData(map[string]string{"title": title}).
				SetFile("image", image)
			if parent != "" {
				req.SetFormData(map[string]string{"parentFolderId": parent})
			}
			resp, err := req.Post("/Folders/Create")
			return printResponse(os.Stdout, resp, err)
		},
	}
	createCmd.Flags().StringVarP(&title, "title", "t", "", "Folder title (required)")
	createCmd.Flags().StringVarP(&parent, "parent", "p", "", "Parent folder ID (defaults to root)")
	createCmd.Flags().StringVarP(&image, "image", "i", "", "Path to the cover image (required)")
	foldersCmd.AddCommand(createCmd)

	var editTitle, editImage string
	editCmd := &cobra.Command{
		Use:   "edit FOLDER_ID",
		Short: "Rename a folder and optionally replace its image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if editTitle == "" {
				return fmt.Errorf("--title required")
			}
			req := newClient().R().SetFormData(map[string]string{"title": editTitle})
			if editImage != "" {
				req.SetFile("image", editImage)
			}
			resp, err := req.Post("/Folders/Edit/" + args[0])
			return printResponse(os.Stdout, resp, err)
		},
	}
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title (required)")
	editCmd.Flags().StringVarP(&editImage, "image", "i", "", "Path to a replacement cover image")
	foldersCmd.AddCommand(editCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete FOLDER_ID",
		Short: "Delete an empty non-root folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Post("/Folders/Delete/" + args[0])
			return printResponse(os.Stdout, resp, err)
		},
	}
	foldersCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(foldersCmd)
}
