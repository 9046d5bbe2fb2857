package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest-backend/internal/client"
	"github.com/tasknest/tasknest-backend/internal/dto"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func newTodosCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todos",
		Aliases: []string{"todo", "t"},
		Short:   "Manage todos",
	}

	cmd.AddCommand(newTodosListCommand(app))
	cmd.AddCommand(newTodosShowCommand(app))
	cmd.AddCommand(newTodosAddCommand(app))
	cmd.AddCommand(newTodosEditCommand(app))
	cmd.AddCommand(newTodosSetDoneCommand(app, "done", true))
	cmd.AddCommand(newTodosSetDoneCommand(app, "undo", false))
	cmd.AddCommand(newTodosToggleCommand(app))
	cmd.AddCommand(newTodosDeleteCommand(app))
	cmd.AddCommand(newTodosLinkCommand(app))
	cmd.AddCommand(newTodosUnlinkCommand(app))
	cmd.AddCommand(newTodosCategoriesCommand(app))

	return cmd
}

func newTodosListCommand(app *App) *cobra.Command {
	var (
		page       int
		limit      int
		completed  string
		search     string
		categoryID int64
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authed()
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = app.v.GetInt("page_size")
			}

			filter := client.BoardFilter{Search: search, CategoryID: categoryID}
			if completed != "" {
				v, err := strconv.ParseBool(completed)
				if err != nil {
					return errors.New("--completed must be true or false")
				}
				filter.Completed = &v
			}

			board := client.NewTodoBoard(c, limit)
			board.Filter = filter
			board.Page = page
			if all {
				board.Page = 1
			}
			if err := board.Refresh(cmd.Context()); err != nil {
				return sessionError(err)
			}

			if !all {
				printTodos(app.Out, board.Items)
				printPagination(app.Out, board)
				return nil
			}

			items := append([]dto.TodoResponse(nil), board.Items...)
			for board.HasNext() {
				if err := board.NextPage(cmd.Context()); err != nil {
					return sessionError(err)
				}
				items = append(items, board.Items...)
			}
			printTodos(app.Out, items)
			fmt.Fprintf(app.Out, "%d tasks\n", board.Pagination.Total)
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "page size (default from config page_size)")
	cmd.Flags().StringVar(&completed, "completed", "", "filter by completion (true or false)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive title search")
	cmd.Flags().Int64VarP(&categoryID, "category", "c", 0, "only todos in this category id")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "fetch every page")

	return cmd
}

func newTodosShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one todo with its categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := app.authed()
			if err != nil {
				return err
			}

			todo, err := c.GetTodo(cmd.Context(), id)
			if err != nil {
				return sessionError(err)
			}
			categories, err := c.TodoCategories(cmd.Context(), id)
			if err != nil {
				return sessionError(err)
			}

			printTodo(app.Out, todo)
			fmt.Fprintln(app.Out)
			printCategories(app.Out, categories)
			return nil
		},
	}
}

func newTodosAddCommand(app *App) *cobra.Command {
	var description, due, priority string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authed()
			if err != nil {
				return err
			}

			req := dto.CreateTodoRequest{Title: args[0]}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			if cmd.Flags().Changed("due") {
				req.DueDate = &due
			}
			if cmd.Flags().Changed("priority") {
				req.Priority = &priority
			}

			todo, err := client.NewTodoBoard(c, app.v.GetInt("page_size")).Add(cmd.Context(), req)
			if err != nil {
				return sessionError(err)
			}
			if todo == nil {
				return errors.New("title is required")
			}
			fmt.Fprintf(app.Out, "Created todo %d: %s\n", todo.ID, todo.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "description")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&priority, "priority", "", "priority (low, medium, high)")

	return cmd
}

func newTodosEditCommand(app *App) *cobra.Command {
	var title, description, due, priority string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a todo; an empty value clears description, due or priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("description") && !flags.Changed("due") && !flags.Changed("priority") {
				return errors.New("nothing to change: pass at least one of --title, --description, --due, --priority")
			}

			c, err := app.authed()
			if err != nil {
				return err
			}
			board := client.NewTodoBoard(c, 0)
			if err := board.Edit(cmd.Context(), id); err != nil {
				return sessionError(err)
			}
			if flags.Changed("title") {
				board.Draft.Title = title
			}
			if flags.Changed("description") {
				board.Draft.Description = description
			}
			if flags.Changed("due") {
				board.Draft.DueDate = due
			}
			if flags.Changed("priority") {
				board.Draft.Priority = priority
			}

			todo, err := board.SaveEdit(cmd.Context())
			if err != nil {
				return sessionError(err)
			}
			printTodo(app.Out, todo)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&due, "due", "", "new due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&priority, "priority", "", "new priority (low, medium, high)")

	return cmd
}

func newTodosSetDoneCommand(app *App, use string, completed bool) *cobra.Command {
	short := "Mark a todo as completed"
	if !completed {
		short = "Mark a todo as not completed"
	}
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := app.authed()
			if err != nil {
				return err
			}
			todo, err := c.UpdateTodo(cmd.Context(), id, dto.UpdateTodoRequest{Completed: dto.Some(completed)})
			if err != nil {
				return sessionError(err)
			}
			fmt.Fprintf(app.Out, "Todo %d completed=%t\n", todo.ID, todo.Completed)
			return nil
		},
	}
}

func newTodosToggleCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip the completion of a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := app.authed()
			if err != nil {
				return err
			}
			todo, err := client.NewTodoBoard(c, 0).Toggle(cmd.Context(), id)
			if err != nil {
				return sessionError(err)
			}
			fmt.Fprintf(app.Out, "Todo %d completed=%t\n", todo.ID, todo.Completed)
			return nil
		},
	}
}

func newTodosDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
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
			if err := client.NewTodoBoard(c, 0).Delete(cmd.Context(), id); err != nil {
				return sessionError(err)
			}
			fmt.Fprintf(app.Out, "Deleted todo %d\n", id)
			return nil
		},
	}
}

func newTodosLinkCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "link <todo-id> <category-id>",
		Short: "Add a category to a todo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			todoID, err := parseID(args[0])
			if err != nil {
				return err
			}
			categoryID, err := parseID(args[1])
			if err != nil {
				return err
			}
			c, err := app.authed()
			if err != nil {
				return err
			}
			board := client.NewTodoBoard(c, app.v.GetInt("page_size"))
			if err := board.Link(cmd.Context(), todoID, categoryID); err != nil {
				return sessionError(err)
			}
			fmt.Fprintf(app.Out, "Linked category %d to todo %d\n", categoryID, todoID)
			return nil
		},
	}
}

func newTodosUnlinkCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <todo-id> <category-id>",
		Short: "Remove a category from a todo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			todoID, err := parseID(args[0])
			if err != nil {
				return err
			}
			categoryID, err := parseID(args[1])
			if err != nil {
				return err
			}
			c, err := app.authed()
			if err != nil {
				return err
			}
			board := client.NewTodoBoard(c, app.v.GetInt("page_size"))
			if err := board.Unlink(cmd.Context(), todoID, categoryID); err != nil {
				return sessionError(err)
			}
			fmt.Fprintf(app.Out, "Unlinked category %d from todo %d\n", categoryID, todoID)
			return nil
		},
	}
}

func newTodosCategoriesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories <todo-id>",
		Short: "List the categories of a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := app.authed()
			if err != nil {
				return err
			}
			items, err := c.TodoCategories(cmd.Context(), id)
			if err != nil {
				return sessionError(err)
			}
			printCategories(app.Out, items)
			return nil
		},
	}
}
