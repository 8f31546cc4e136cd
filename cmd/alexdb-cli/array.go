package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var appendCmd = &cobra.Command{
	Use:   "append KEY ELEM...",
	Short: "Append one or more elements to the array stored under KEY",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		elems, err := parseValueArgs(args[1:])
		if err != nil {
			return reportErr(err)
		}
		resp, err := newClient().Append(context.Background(), args[0], elems)
		if err != nil {
			return reportErr(err)
		}
		fmt.Printf("%s = ", resp.Key)
		printValue(resp.Value)
		return nil
	},
}

var prependCmd = &cobra.Command{
	Use:   "prepend KEY ELEM...",
	Short: "Prepend one or more elements to the array stored under KEY",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		elems, err := parseValueArgs(args[1:])
		if err != nil {
			return reportErr(err)
		}
		resp, err := newClient().Prepend(context.Background(), args[0], elems)
		if err != nil {
			return reportErr(err)
		}
		fmt.Printf("%s = ", resp.Key)
		printValue(resp.Value)
		return nil
	},
}

var popBackCmd = &cobra.Command{
	Use:   "pop-back KEY [N]",
	Short: "Pop up to N elements (default 1) from the back of the array stored under KEY",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := optionalCount(args)
		if err != nil {
			return reportErr(err)
		}
		popped, err := newClient().PopBack(context.Background(), args[0], n)
		if err != nil {
			return reportErr(err)
		}
		for _, v := range popped {
			printValue(v)
		}
		return nil
	},
}

var popFrontCmd = &cobra.Command{
	Use:   "pop-front KEY [N]",
	Short: "Pop up to N elements (default 1) from the front of the array stored under KEY",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := optionalCount(args)
		if err != nil {
			return reportErr(err)
		}
		popped, err := newClient().PopFront(context.Background(), args[0], n)
		if err != nil {
			return reportErr(err)
		}
		for _, v := range popped {
			printValue(v)
		}
		return nil
	},
}

func optionalCount(args []string) (*int, error) {
	if len(args) < 2 {
		return nil, nil
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("invalid count %q: %w", args[1], err)
	}
	return &n, nil
}
