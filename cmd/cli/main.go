package main

import (
	"github.com/crucial707/timetrack/cmd/cli/entries"
	"github.com/crucial707/timetrack/cmd/cli/projects"
	"github.com/crucial707/timetrack/cmd/cli/root"
	"github.com/crucial707/timetrack/cmd/cli/users"
)

func main() {
	rootCmd := root.New()
	users.InitUsers(rootCmd)
	projects.InitProjects(rootCmd)
	entries.InitEntries(rootCmd)

	root.Execute(rootCmd)
}
