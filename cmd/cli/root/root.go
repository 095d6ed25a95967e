package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crucial707/timetrack/cmd/cli/auth"
	"github.com/crucial707/timetrack/cmd/cli/config"
)

// New returns the top-level command. Subcommands are attached by main.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "timetrack",
		Short:         "Time tracking CLI",
		Long:          "Command line interface for the timetrack API: accounts, projects and time entries.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("api-url", "", "API base URL (overrides TIMETRACK_API_URL)")
	return cmd
}

func Execute(cmd *cobra.Command) {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Client builds an API client from config, honouring --api-url.
func Client(cmd *cobra.Command) (*auth.Client, error) {
	s, err := config.Load()
	if err != nil {
		return nil, err
	}
	if f := cmd.Flags().Lookup("api-url"); f != nil && f.Value.String() != "" {
		s.APIURL = f.Value.String()
	}
	return auth.NewClient(s), nil
}
