// Command alexdb-cli is a Cobra-based command-line client for an
// alexdb collaborator, grounded on the root-command/persistent-flags
// idiom of cuemby-warren/cmd/warren: a single rootCmd carrying
// connection flags, with one subcommand per store operation.
package main

import (
	"fmt"
	"os"

	"github.com/alexdb/alexdb/pkg/dbclient"
	"github.com/alexdb/alexdb/pkg/fmtt"
	"github.com/spf13/cobra"
)

var (
	serverAddr string
	authToken  string
	debug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "alexdb-cli",
	Short: "Command-line client for an alexdb collaborator",
	Long: `alexdb-cli talks to a running alexdb HTTP collaborator over its
REST surface: create, read, update, delete values, mutate arrays and
integers in place, and inspect operation counters.

With no subcommand, alexdb-cli drops into an interactive REPL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPL(newClient())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "http://127.0.0.1:8080", "alexdb server base URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "X-Auth-Token to send (overrides ALEXDB_AUTH_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print full error chains on failure")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(delCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(appendCmd)
	rootCmd.AddCommand(prependCmd)
	rootCmd.AddCommand(popBackCmd)
	rootCmd.AddCommand(popFrontCmd)
	rootCmd.AddCommand(incrCmd)
	rootCmd.AddCommand(decrCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(replCmd)
}

func newClient() *dbclient.Client {
	token := authToken
	if token == "" {
		token = os.Getenv("ALEXDB_AUTH_TOKEN")
	}
	return dbclient.New(serverAddr, token)
}

// reportErr prints err to stderr, expanding the full chain under
// --debug, and returns it unchanged so RunE can propagate the exit
// code.
func reportErr(err error) error {
	if debug {
		fmtt.PrintErrChainDebug(err)
	} else {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}
