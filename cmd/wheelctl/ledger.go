// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AamirAbdullahKhan1/Da-Wheel/quota"
)

func init() {
	ThemesCommand.Flags().Bool("json", false, "print JSON instead of a table")
	ResetCommand.Flags().Bool("all", false, "reset every team")

	RootCmd.AddCommand(&ThemesCommand)
	RootCmd.AddCommand(&ReconcileCommand)
	RootCmd.AddCommand(&ResetCommand)
	RootCmd.AddCommand(&CapacityCommand)
	RootCmd.AddCommand(&TeamCommand)
}

var ThemesCommand = cobra.Command{
	Use:   "themes",
	Short: "List themes with counts and capacity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		themes, err := quota.NewLedger(conn).ListThemes(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(themes)
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "THEME\tCOUNT\tMAX\tFULL")
		for _, t := range themes {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%v\n", t.Name, t.Count, t.MaxCount, t.IsFull)
		}
		return tw.Flush()
	},
}

var ReconcileCommand = cobra.Command{
	Use:   "reconcile",
	Short: "Recount every theme from the team rows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := quota.NewLedger(conn).Reconcile(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

var ResetCommand = cobra.Command{
	Use:   "reset [login_id...]",
	Short: "Clear team assignments and re-sync the ledger",
	Long:  "Clear the assignment of the listed teams, or of every team when none are listed, then recount the ledger.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			all, _ := cmd.Flags().GetBool("all")
			if !all {
				return fmt.Errorf("no teams listed; pass --all to reset every team")
			}
		}

		out, err := quota.NewLedger(conn).ResetTeams(cmd.Context(), args...)
		if err != nil {
			return err
		}
		return printJSON(out)
	},
}

var CapacityCommand = cobra.Command{
	Use:   "capacity <theme> <max_count>",
	Short: "Change a theme's capacity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		capacity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("max_count must be a number: %w", err)
		}

		report, err := quota.NewLedger(conn).SetCapacity(cmd.Context(), args[0], capacity)
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

var TeamCommand = cobra.Command{
	Use:   "team <login_id>",
	Short: "Show one team's assignment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		team, err := quota.NewLedger(conn).Team(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(team)
	},
}
