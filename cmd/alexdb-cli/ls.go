package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	lsDirection string
	lsSort      string
	lsLimit     int
	lsPage      int
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored records",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()

		var limit, page *int
		if cmd.Flags().Changed("limit") {
			limit = &lsLimit
		}
		if cmd.Flags().Changed("page") {
			page = &lsPage
		}

		records, err := c.List(context.Background(), lsDirection, lsSort, limit, page)
		if err != nil {
			return reportErr(err)
		}

		if len(records) == 0 {
			fmt.Println("no records")
			return nil
		}

		fmt.Printf("%-30s %s\n", "KEY", "VALUE")
		fmt.Println(strings.Repeat("-", 70))
		for _, r := range records {
			data, err := json.Marshal(r.Value)
			if err != nil {
				data = []byte("<unprintable>")
			}
			fmt.Printf("%-30s %s\n", r.Key, string(data))
		}
		return nil
	},
}

func init() {
	lsCmd.Flags().StringVar(&lsDirection, "direction", "", "asc|desc (default asc)")
	lsCmd.Flags().StringVar(&lsSort, "sort", "", "created_at|updated_at|delete_at|key (default created_at)")
	lsCmd.Flags().IntVar(&lsLimit, "limit", 0, "maximum records to return")
	lsCmd.Flags().IntVar(&lsPage, "page", 0, "zero-based page number (applies only with --limit)")
}
