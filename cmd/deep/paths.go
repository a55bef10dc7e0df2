package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Manage indexed folders.",
}

var pathsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List indexed folders.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), appCfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		paths := a.indexing.Paths()
		out := cmd.OutOrStdout()
		if len(paths) == 0 {
			fmt.Fprintln(out, "No indexed paths")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPATH\tENABLED\tADDED")
		for _, p := range paths {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
				p.ID, p.DisplayName, p.Path, p.IsEnabled, p.DateAdded.Format("2006-01-02"))
		}
		return w.Flush()
	},
}

var pathsAddCmd = &cobra.Command{
	Use:     "add [path]",
	Short:   "Index a folder.",
	Example: "deep paths add ~/Documents",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), appCfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		entry, added, err := a.indexing.AddPath(cmd.Context(), path)
		if err != nil {
			return err
		}
		if !added {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is already indexed (%s)\n", entry.Path, entry.ID)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", entry.Path, entry.ID)
		return nil
	},
}

var pathsRemoveCmd = &cobra.Command{
	Use:     "remove [id]",
	Aliases: []string{"rm"},
	Short:   "Stop indexing a folder.",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), appCfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		return a.indexing.RemovePath(cmd.Context(), args[0])
	},
}

var pathsToggleCmd = &cobra.Command{
	Use:   "toggle [id]",
	Short: "Enable or disable an indexed folder.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), appCfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		entry, err := a.indexing.TogglePath(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		state := "disabled"
		if entry.IsEnabled {
			state = "enabled"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", entry.Path, state)
		return nil
	},
}

func init() {
	pathsCmd.AddCommand(pathsListCmd, pathsAddCmd, pathsRemoveCmd, pathsToggleCmd)
	rootCmd.AddCommand(pathsCmd)
}
