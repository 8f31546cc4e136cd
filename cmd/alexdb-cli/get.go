package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Read the value stored under KEY",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		resp, err := c.Get(context.Background(), args[0])
		if err != nil {
			return reportErr(err)
		}
		fmt.Printf("%s = ", resp.Key)
		printValue(resp.Value)
		return nil
	},
}
