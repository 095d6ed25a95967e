package entries

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/crucial707/timetrack/cmd/cli/output"
	"github.com/crucial707/timetrack/cmd/cli/root"
	"github.com/crucial707/timetrack/internal/models"
)

// ==========================
// Init Entries
// ==========================
func InitEntries(rootCmd *cobra.Command) {
	entriesCmd := &cobra.Command{
		Use:     "entries",
		Aliases: []string{"entry", "time"},
		Short:   "Manage your time entries",
	}

	entriesCmd.AddCommand(
		listEntriesCmd(),
		getEntryCmd(),
		createEntryCmd(),
		updateEntryCmd(),
		deleteEntryCmd(),
	)

	rootCmd.AddCommand(entriesCmd)
}

func renderEntries(cmd *cobra.Command, entries []models.TimeEntry, asJSON bool) error {
	if asJSON {
		return output.PrintJSON(cmd.OutOrStdout(), entries)
	}
	rows := make([][]interface{}, 0, len(entries))
	total := 0
	for _, e := range entries {
		rows = append(rows, []interface{}{
			e.ID,
			e.DateWorked.UTC().Format("2006-01-02"),
			e.ProjectTitle,
			e.Hours,
			e.WorkDescription,
		})
		total += e.Hours
	}
	output.RenderTable(cmd.OutOrStdout(),
		[]string{"ID", "Date", "Project", "Hours", "Description"},
		rows,
		[]interface{}{"", "", "Total", total, ""},
	)
	return nil
}

// parseWorked accepts a calendar date (taken as midnight UTC) or an RFC 3339 timestamp.
func parseWorked(s string) (string, error) {
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d.Format(time.RFC3339), nil
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return s, nil
	}
	return "", fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", s)
}

// ==========================
// LIST
// ==========================
func listEntriesCmd() *cobra.Command {
	var start, end string
	var project int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your time entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if start != "" {
				q.Set("start_date", start)
			}
			if end != "" {
				q.Set("end_date", end)
			}
			if cmd.Flags().Changed("project") {
				q.Set("project", strconv.Itoa(project))
			}
			path := "/api/time-tracking"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			client, err := root.Client(cmd)
			if err != nil {
				return err
			}
			var entries []models.TimeEntry
			if err := client.Do(cmd.Context(), "GET", path, nil, &entries); err != nil {
				return err
			}
			return renderEntries(cmd, entries, asJSON)
		},
	}
	cmd.Flags().StringVar(&start, "start-date", "", "only entries on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end-date", "", "only entries on or before this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&project, "project", 0, "only entries for this project id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// ==========================
// GET
// ==========================
func getEntryCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show one of your time entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.Client(cmd)
			if err != nil {
				return err
			}
			var e models.TimeEntry
			if err := client.Do(cmd.Context(), "GET", "/api/time-tracking/"+url.PathEscape(args[0]), nil, &e); err != nil {
				return err
			}
			return renderEntries(cmd, []models.TimeEntry{e}, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

type entryFlags struct {
	project     int
	date        string
	description string
	hours       int
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.project, "project", 0, "project id")
	cmd.Flags().StringVar(&f.date, "date", "", "day worked (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringVar(&f.description, "description", "", "work description")
	cmd.Flags().IntVar(&f.hours, "hours", 0, "hours worked")
}

// payload includes only the flags that were set.
func (f *entryFlags) payload(cmd *cobra.Command) (map[string]interface{}, error) {
	p := map[string]interface{}{}
	if cmd.Flags().Changed("project") {
		p["project"] = f.project
	}
	if cmd.Flags().Changed("date") {
		worked, err := parseWorked(f.date)
		if err != nil {
			return nil, err
		}
		p["date_worked"] = worked
	}
	if cmd.Flags().Changed("description") {
		p["work_description"] = f.description
	}
	if cmd.Flags().Changed("hours") {
		p["hours"] = f.hours
	}
	return p, nil
}

// ==========================
// CREATE
// ==========================
func createEntryCmd() *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record time worked on a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := f.payload(cmd)
			if err != nil {
				return err
			}
			client, err := root.Client(cmd)
			if err != nil {
				return err
			}
			var e models.TimeEntry
			if err := client.Do(cmd.Context(), "POST", "/api/time-tracking", payload, &e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created entry %d: %dh on %s\n", e.ID, e.Hours, e.ProjectTitle)
			return nil
		},
	}
	f.register(cmd)
	for _, name := range []string{"project", "date", "description", "hours"} {
		cmd.MarkFlagRequired(name)
	}
	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateEntryCmd() *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Change fields of one of your time entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := f.payload(cmd)
			if err != nil {
				return err
			}
			if len(payload) == 0 {
				return fmt.Errorf("nothing to update: pass at least one of --project, --date, --description, --hours")
			}
			client, err := root.Client(cmd)
			if err != nil {
				return err
			}
			var e models.TimeEntry
			if err := client.Do(cmd.Context(), "PATCH", "/api/time-tracking/"+url.PathEscape(args[0]), payload, &e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %d\n", e.ID)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteEntryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete one of your time entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.Client(cmd)
			if err != nil {
				return err
			}
			if err := client.Do(cmd.Context(), "DELETE", "/api/time-tracking/"+url.PathEscape(args[0]), nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", args[0])
			return nil
		},
	}
}
