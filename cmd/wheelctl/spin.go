// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/AamirAbdullahKhan1/Da-Wheel/quota"
)

func init() {
	SpinCommand.Flags().String("team", "", "login id of the team to spin for")
	SpinCommand.Flags().Int("attempts", 5, "spins before giving up when themes fill underneath")
	SpinCommand.Flags().Uint64("seed", 0, "random seed (0 picks one)")
	SpinCommand.MarkFlagRequired("team")

	RootCmd.AddCommand(&SpinCommand)
}

// SpinCommand draws for a team that can't reach the web client
var SpinCommand = cobra.Command{
	Use:   "spin --team <login_id>",
	Short: "Spin the wheel on behalf of a team",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		team, _ := cmd.Flags().GetString("team")
		attempts, _ := cmd.Flags().GetInt("attempts")
		seed, _ := cmd.Flags().GetUint64("seed")
		if seed == 0 {
			seed = rand.Uint64()
		}

		spinner := quota.Spinner{
			Ledger:      quota.NewLedger(conn),
			Allocator:   quota.NewAllocator(conn),
			Rand:        rand.New(rand.NewPCG(seed, seed)),
			MaxAttempts: attempts,
		}

		assignment, err := spinner.Spin(cmd.Context(), team)
		if err != nil {
			return fmt.Errorf("spin for %s: %s: %w", team, quota.Classify(err), err)
		}
		return printJSON(assignment)
	},
}
