package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := app.readPassword("Password: ")
			if err != nil {
				return err
			}
			if password == "" {
				return errors.New("password is required")
			}

			user, err := app.anonymous().Register(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Registered %s (id %d). Run 'todoctl login %s' to start.\n", user.Username, user.ID, user.Username)
			return nil
		},
	}
}

func newLoginCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := app.readPassword("Password: ")
			if err != nil {
				return err
			}

			token, err := app.anonymous().Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			if err := app.Store.Save(token); err != nil {
				return fmt.Errorf("failed to store session: %w", err)
			}
			fmt.Fprintf(app.Out, "Logged in as %s\n", args[0])
			return nil
		},
	}
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Logged out")
			return nil
		},
	}
}
