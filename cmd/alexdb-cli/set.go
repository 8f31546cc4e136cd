package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var setTTL int64

var setCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Create a new record under KEY",
	Long: `set creates a record under KEY. It fails with a conflict error if
KEY already exists. VALUE is parsed as JSON when possible (so 42,
true, and [1,2,3] work as typed values), falling back to a bare
string otherwise.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := parseValueArg(args[1])
		if err != nil {
			return reportErr(err)
		}

		var ttl *int64
		if cmd.Flags().Changed("ttl") {
			ttl = &setTTL
		}

		c := newClient()
		resp, err := c.Set(context.Background(), args[0], v, ttl)
		if err != nil {
			return reportErr(err)
		}
		fmt.Printf("%s = ", resp.Key)
		printValue(resp.Value)
		return nil
	},
}

func init() {
	setCmd.Flags().Int64Var(&setTTL, "ttl", 0, "time-to-live in seconds (omit for no expiry)")
}
