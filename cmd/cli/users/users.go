package users

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crucial707/timetrack/cmd/cli/auth"
	"github.com/crucial707/timetrack/cmd/cli/root"
)

// ==========================
// CLI Command Init
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage your account and session",
		Long: `Register or log in to the timetrack API.
The access/refresh token pair is stored locally for future commands.`,
	}

	usersCmd.AddCommand(registerCmd(), loginCmd(), refreshCmd(), logoutCmd())
	rootCmd.AddCommand(usersCmd)
}

// ==========================
// Register User
// ==========================
func registerCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		Long:  "Register with an email address as username. You are logged in afterwards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := prompt(cmd, &username, &password); err != nil {
				return err
			}
			client, err := root.Client(cmd)
			if err != nil {
				return err
			}
			msg, err := client.Register(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg+". Tokens saved locally.")
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "email address to register")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

// ==========================
// Login User
// ==========================
func loginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to an existing account",
		Long:  "Log in and save the token pair locally for future CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := prompt(cmd, &username, &password); err != nil {
				return err
			}
			client, err := root.Client(cmd)
			if err != nil {
				return err
			}
			if err := client.Login(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Login successful! Tokens saved locally.")
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

// ==========================
// Refresh Access Token
// ==========================
func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the saved access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.Client(cmd)
			if err != nil {
				return err
			}
			if err := client.Refresh(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Access token refreshed.")
			return nil
		},
	}
}

// ==========================
// Logout User
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout current user",
		Long:  "Remove the locally saved token pair.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.Client(cmd)
			if err != nil {
				return err
			}
			if _, err := auth.LoadTokens(client.TokenFile); err == auth.ErrNotLoggedIn {
				fmt.Fprintln(cmd.OutOrStdout(), "No user logged in.")
				return nil
			}
			if err := auth.ClearTokens(client.TokenFile); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out successfully.")
			return nil
		},
	}
}

// prompt asks for whichever of username and password was not given as a flag.
func prompt(cmd *cobra.Command, username, password *string) error {
	in := bufio.NewReader(cmd.InOrStdin())
	ask := func(label string, dst *string) error {
		if *dst != "" {
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), label+": ")
		line, err := in.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		*dst = strings.TrimSpace(line)
		return nil
	}
	if err := ask("Username", username); err != nil {
		return err
	}
	return ask("Password", password)
}
