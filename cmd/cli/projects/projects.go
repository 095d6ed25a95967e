package projects

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/crucial707/timetrack/cmd/cli/output"
	"github.com/crucial707/timetrack/cmd/cli/root"
	"github.com/crucial707/timetrack/internal/models"
)

// ==========================
// Init Projects
// ==========================
func InitProjects(rootCmd *cobra.Command) {
	projectsCmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage shared projects",
	}

	projectsCmd.AddCommand(
		listProjectsCmd(),
		getProjectCmd(),
		createProjectCmd(),
		updateProjectCmd(),
		deleteProjectCmd(),
	)

	rootCmd.AddCommand(projectsCmd)
}

func renderProjects(cmd *cobra.Command, projects []models.Project, asJSON bool) error {
	if asJSON {
		return output.PrintJSON(cmd.OutOrStdout(), projects)
	}
	rows := make([][]interface{}, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []interface{}{p.ID, p.Title, p.IsActive, p.IsDeleted, p.UpdatedAt.Format("2006-01-02 15:04")})
	}
	output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Title", "Active", "Deleted", "Updated"}, rows, nil)
	return nil
}

// ==========================
// LIST
// ==========================
func listProjectsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects that are not deleted",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.Client(cmd)
			if err != nil {
				return err
			}
			var projects []models.Project
			if err := client.Do(cmd.Context(), "GET", "/api/project", nil, &projects); err != nil {
				return err
			}
			return renderProjects(cmd, projects, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// ==========================
// GET
// ==========================
func getProjectCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show one project, including deleted ones",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.Client(cmd)
			if err != nil {
				return err
			}
			var p models.Project
			if err := client.Do(cmd.Context(), "GET", "/api/project/"+args[0], nil, &p); err != nil {
				return err
			}
			return renderProjects(cmd, []models.Project{p}, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// ==========================
// CREATE
// ==========================
func createProjectCmd() *cobra.Command {
	var title string
	var active bool
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.Client(cmd)
			if err != nil {
				return err
			}
			payload := map[string]interface{}{"title": title, "is_active": active}
			var p models.Project
			if err := client.Do(cmd.Context(), "POST", "/api/project", payload, &p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %d (%s)\n", p.ID, p.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "project title")
	cmd.Flags().BoolVar(&active, "active", true, "mark the project active")
	cmd.MarkFlagRequired("title")
	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateProjectCmd() *cobra.Command {
	var title string
	var active bool
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Change a project's title or active flag",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{}
			if cmd.Flags().Changed("title") {
				payload["title"] = title
			}
			if cmd.Flags().Changed("active") {
				payload["is_active"] = active
			}
			if len(payload) == 0 {
				return fmt.Errorf("nothing to update: pass --title and/or --active")
			}

			client, err := root.Client(cmd)
			if err != nil {
				return err
			}
			var p models.Project
			if err := client.Do(cmd.Context(), "PATCH", "/api/project/"+args[0], payload, &p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %d (%s)\n", p.ID, p.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().BoolVar(&active, "active", true, "active flag")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Soft-delete a project",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.Client(cmd)
			if err != nil {
				return err
			}
			if err := client.Do(cmd.Context(), "DELETE", "/api/project/"+args[0], nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
			return nil
		},
	}
}

func idArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if _, err := strconv.Atoi(args[0]); err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	return nil
}
