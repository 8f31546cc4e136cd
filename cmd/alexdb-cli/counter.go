package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var incrCmd = &cobra.Command{
	Use:   "incr KEY [N]",
	Short: "Add the magnitude of N (default 1) to the integer stored under KEY",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := optionalDelta(args)
		if err != nil {
			return reportErr(err)
		}
		resp, err := newClient().Increment(context.Background(), args[0], n)
		if err != nil {
			return reportErr(err)
		}
		fmt.Printf("%s = ", resp.Key)
		printValue(resp.Value)
		return nil
	},
}

var decrCmd = &cobra.Command{
	Use:   "decr KEY [N]",
	Short: "Subtract the magnitude of N (default 1) from the integer stored under KEY",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := optionalDelta(args)
		if err != nil {
			return reportErr(err)
		}
		resp, err := newClient().Decrement(context.Background(), args[0], n)
		if err != nil {
			return reportErr(err)
		}
		fmt.Printf("%s = ", resp.Key)
		printValue(resp.Value)
		return nil
	},
}

func optionalDelta(args []string) (*int64, error) {
	if len(args) < 2 {
		return nil, nil
	}
	n, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid delta %q: %w", args[1], err)
	}
	return &n, nil
}
