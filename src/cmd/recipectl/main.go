// Command recipectl is the admin's terminal client for the recipe service.
// It keeps the session token in a local store and runs the inactivity
// monitor over it, so an idle session is dropped client-side as well.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"recipebox-svc/src/clients"
	"recipebox-svc/src/internal/config"
	"recipebox-svc/src/internal/session"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const requestTimeout = 15 * time.Second

type app struct {
	api     *clients.RecipeAPI
	monitor *session.Monitor
}

func main() {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := a.rootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() (*app, error) {
	baseURL := os.Getenv("RECIPEBOX_API")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("cannot resolve user config dir: %w", err)
	}

	store := session.NewFileStore(filepath.Join(configDir, "recipectl", "session.json"))

	sessionCfg := &config.SessionSettings{
		InactivityHours:      24,
		CheckIntervalSeconds: 60,
	}

	monitor := session.NewMonitor(sessionCfg, store, func() {
		fmt.Fprintln(os.Stderr, "You have been logged out due to 24 hours of inactivity.")
	})
	monitor.Resume()

	api := clients.NewRecipeAPI(baseURL, requestTimeout)
	api.TokenFunc = monitor.Token

	return &app{api: api, monitor: monitor}, nil
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "recipectl",
		Short:         "Admin client for the recipe service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		a.loginCommand(),
		a.logoutCommand(),
		a.statusCommand(),
		a.listCommand(),
		a.showCommand(),
		a.createCommand(),
		a.updateCommand(),
		a.deleteCommand(),
	)

	return root
}

func (a *app) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print("Password: ")
			password, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("cannot read password: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			result, err := a.api.Login(ctx, args[0], string(password))
			if err != nil {
				if errors.Is(err, clients.ErrAPIUnauthorized) {
					return errors.New("invalid credentials")
				}
				return err
			}

			if err := a.monitor.Begin(result.Token, result.Username); err != nil {
				return fmt.Errorf("cannot store session: %w", err)
			}

			fmt.Printf("Logged in as %s\n", result.Username)
			return nil
		},
	}
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.monitor.Logout()
			fmt.Println("Logged out")
			return nil
		},
	}
}

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.monitor.Authenticated() {
				fmt.Println("Not logged in")
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			result, err := a.api.Verify(ctx)
			if err != nil || !result.Valid {
				a.monitor.HandleUnauthorized()
				fmt.Println("Session expired, please log in again")
				return nil
			}

			fmt.Printf("Logged in as %s\n", result.Username)
			return nil
		},
	}
}

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.monitor.Record(session.InteractionKeyDown)

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			recipes, err := a.api.ListRecipes(ctx)
			if err != nil {
				return a.mapAPIError(err)
			}

			if len(recipes) == 0 {
				fmt.Println("No recipes yet")
				return nil
			}

			for _, r := range recipes {
				fmt.Printf("%s  %s\n", r.ID, r.Title)
			}
			return nil
		},
	}
}

func (a *app) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.monitor.Record(session.InteractionKeyDown)

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			r, err := a.api.GetRecipe(ctx, args[0])
			if err != nil {
				return a.mapAPIError(err)
			}

			fmt.Printf("Title: %s\n\n%s\n\nIngredients:\n%s\n\nInstructions:\n%s\n",
				r.Title, r.Description, r.Ingredients, r.Instructions)
			return nil
		},
	}
}

func (a *app) createCommand() *cobra.Command {
	var input clients.RecipeInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a recipe (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.monitor.Record(session.InteractionKeyDown)

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			created, err := a.api.CreateRecipe(ctx, &input)
			if err != nil {
				return a.mapAPIError(err)
			}

			fmt.Printf("Created recipe %s\n", created.ID)
			return nil
		},
	}

	bindRecipeFlags(cmd, &input)
	return cmd
}

func (a *app) updateCommand() *cobra.Command {
	var input clients.RecipeInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a recipe (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.monitor.Record(session.InteractionKeyDown)

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			updated, err := a.api.UpdateRecipe(ctx, args[0], &input)
			if err != nil {
				return a.mapAPIError(err)
			}

			fmt.Printf("Updated recipe %s\n", updated.ID)
			return nil
		},
	}

	bindRecipeFlags(cmd, &input)
	return cmd
}

func (a *app) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recipe (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.monitor.Record(session.InteractionKeyDown)

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			if err := a.api.DeleteRecipe(ctx, args[0]); err != nil {
				return a.mapAPIError(err)
			}

			fmt.Println("Recipe deleted")
			return nil
		},
	}
}

// mapAPIError turns a 401 into a local session teardown, the same way a
// browser client drops its stored token when a request bounces.
func (a *app) mapAPIError(err error) error {
	if errors.Is(err, clients.ErrAPIUnauthorized) {
		a.monitor.HandleUnauthorized()
		return errors.New("session expired or unauthorized, please log in again")
	}
	return err
}

func bindRecipeFlags(cmd *cobra.Command, input *clients.RecipeInput) {
	cmd.Flags().StringVar(&input.Title, "title", "", "recipe title")
	cmd.Flags().StringVar(&input.Description, "description", "", "short description")
	cmd.Flags().StringVar(&input.Ingredients, "ingredients", "", "ingredients, one per line")
	cmd.Flags().StringVar(&input.Instructions, "instructions", "", "preparation steps")

	for _, name := range []string{"title", "description", "ingredients", "instructions"} {
		cmd.MarkFlagRequired(name)
	}
}
