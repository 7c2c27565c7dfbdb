// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AamirAbdullahKhan1/Da-Wheel/provision"
)

func init() {
	SeedCommand.Flags().String("catalog", "", "YAML catalog file (default: built-in event catalog)")

	RootCmd.AddCommand(&MigrateCommand)
	RootCmd.AddCommand(&SeedCommand)
}

var MigrateCommand = cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := migrated(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("schema up to date")
		return nil
	},
}

var SeedCommand = cobra.Command{
	Use:   "seed",
	Short: "Insert the theme and team catalog",
	Long:  "Insert the theme and team catalog. Existing rows are kept, so seeding twice is harmless.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := provision.DefaultCatalog()
		if path := cmd.Flag("catalog").Value.String(); path != "" {
			var err error
			if catalog, err = provision.LoadCatalog(path); err != nil {
				return err
			}
		}

		if err := migrated(cmd.Context()); err != nil {
			return err
		}

		result, err := provision.Seed(cmd.Context(), conn, catalog)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}
