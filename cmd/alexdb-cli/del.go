package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var delCmd = &cobra.Command{
	Use:     "del KEY",
	Aliases: []string{"delete", "rm"},
	Short:   "Delete the record stored under KEY",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		if err := c.Delete(context.Background(), args[0]); err != nil {
			return reportErr(err)
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}
