package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print operation counters (reads, writes, requests, saved writes)",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newClient().GetStats(context.Background())
		if err != nil {
			return reportErr(err)
		}
		fmt.Printf("reads:        %d\n", s.Reads)
		fmt.Printf("writes:       %d\n", s.Writes)
		fmt.Printf("requests:     %d\n", s.Requests)
		fmt.Printf("saved_writes: %d\n", s.SavedWrites)
		return nil
	},
}
