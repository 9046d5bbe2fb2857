package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand assembles the todoctl command tree
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "todoctl",
		Short: "Terminal client for the Todo API",
		Long: `todoctl manages your todos and categories from the terminal.

Examples:
  todoctl register alice
  todoctl login alice
  todoctl todos add "Buy milk" --priority high --due 2025-01-15
  todoctl todos list --completed false --search milk
  todoctl categories add Work`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadConfig()
		},
	}

	root.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default ~/.todoctl/config.yaml)")
	root.PersistentFlags().String("api-url", "", "API base URL, e.g. http://localhost:3000/api")
	_ = app.v.BindPFlag("api_url", root.PersistentFlags().Lookup("api-url"))

	root.AddCommand(newRegisterCommand(app))
	root.AddCommand(newLoginCommand(app))
	root.AddCommand(newLogoutCommand(app))
	root.AddCommand(newTodosCommand(app))
	root.AddCommand(newCategoriesCommand(app))

	return root
}
