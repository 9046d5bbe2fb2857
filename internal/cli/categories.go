package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest-backend/internal/client"
)

func newCategoriesCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authed()
			if err != nil {
				return err
			}
			items, err := c.ListCategories(cmd.Context())
			if err != nil {
				return sessionError(err)
			}
			printCategories(app.Out, items)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authed()
			if err != nil {
				return err
			}
			category, err := client.NewTodoBoard(c, 0).AddCategory(cmd.Context(), args[0])
			if err != nil {
				return sessionError(err)
			}
			if category == nil {
				return errors.New("category name is required")
			}
			fmt.Fprintf(app.Out, "Created category %d: %s\n", category.ID, category.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := app.authed()
			if err != nil {
				return err
			}
			category, err := c.UpdateCategory(cmd.Context(), id, args[1])
			if err != nil {
				return sessionError(err)
			}
			fmt.Fprintf(app.Out, "Renamed category %d to %s\n", category.ID, category.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a category and unlink it from all todos",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := app.authed()
			if err != nil {
				return err
			}
			if err := client.NewTodoBoard(c, 0).DeleteCategory(cmd.Context(), id); err != nil {
				return sessionError(err)
			}
			fmt.Fprintf(app.Out, "Deleted category %d\n", id)
			return nil
		},
	})

	return cmd
}
