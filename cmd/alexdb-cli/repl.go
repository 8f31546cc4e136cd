package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alexdb/alexdb/pkg/dbclient"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Open an interactive prompt against the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPL(newClient())
	},
}

// runREPL drives a bufio.Scanner-based prompt, translating typed
// commands (get <key>, set <key> <value> [ttl], ...) into calls
// against pkg/dbclient — a REPL over the same client the subcommands
// use, rather than a second protocol implementation.
func runREPL(c *dbclient.Client) error {
	fmt.Println("alexdb-cli interactive mode. Type 'help' for commands, 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		fmt.Print("alexdb> ")
		if !scanner.Scan() {
			fmt.Println()
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmdName, rest := fields[0], fields[1:]

		switch cmdName {
		case "quit", "exit":
			return nil
		case "help":
			printREPLHelp()
		case "get":
			replGet(ctx, c, rest)
		case "set":
			replSet(ctx, c, rest)
		case "del", "delete", "rm":
			replDel(ctx, c, rest)
		case "ls":
			replLs(ctx, c, rest)
		case "append":
			replAppend(ctx, c, rest)
		case "prepend":
			replPrepend(ctx, c, rest)
		case "pop-back":
			replPopBack(ctx, c, rest)
		case "pop-front":
			replPopFront(ctx, c, rest)
		case "incr":
			replIncr(ctx, c, rest)
		case "decr":
			replDecr(ctx, c, rest)
		case "stats":
			replStats(ctx, c)
		default:
			fmt.Printf("unknown command %q (try 'help')\n", cmdName)
		}
	}
}

func printREPLHelp() {
	fmt.Println(`commands:
  get <key>
  set <key> <value> [ttl_seconds]
  del <key>
  ls [direction] [sort] [limit]
  append <key> <elem...>
  prepend <key> <elem...>
  pop-back <key> [n]
  pop-front <key> [n]
  incr <key> [n]
  decr <key> [n]
  stats
  quit`)
}

func replGet(ctx context.Context, c *dbclient.Client, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: get <key>")
		return
	}
	resp, err := c.Get(ctx, args[0])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s = ", resp.Key)
	printValue(resp.Value)
}

func replSet(ctx context.Context, c *dbclient.Client, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: set <key> <value> [ttl_seconds]")
		return
	}
	v, err := parseValueArg(args[1])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	var ttl *int64
	if len(args) >= 3 {
		n, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			fmt.Println("error: invalid ttl:", err)
			return
		}
		ttl = &n
	}
	resp, err := c.Set(ctx, args[0], v, ttl)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s = ", resp.Key)
	printValue(resp.Value)
}

func replDel(ctx context.Context, c *dbclient.Client, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: del <key>")
		return
	}
	if err := c.Delete(ctx, args[0]); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("deleted %s\n", args[0])
}

func replLs(ctx context.Context, c *dbclient.Client, args []string) {
	var direction, sort string
	var limit *int
	if len(args) >= 1 {
		direction = args[0]
	}
	if len(args) >= 2 {
		sort = args[1]
	}
	if len(args) >= 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			fmt.Println("error: invalid limit:", err)
			return
		}
		limit = &n
	}
	records, err := c.List(ctx, direction, sort, limit, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if len(records) == 0 {
		fmt.Println("no records")
		return
	}
	for _, r := range records {
		fmt.Printf("%s = ", r.Key)
		printValue(r.Value)
	}
}

func replAppend(ctx context.Context, c *dbclient.Client, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: append <key> <elem...>")
		return
	}
	elems, err := parseValueArgs(args[1:])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	resp, err := c.Append(ctx, args[0], elems)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s = ", resp.Key)
	printValue(resp.Value)
}

func replPrepend(ctx context.Context, c *dbclient.Client, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: prepend <key> <elem...>")
		return
	}
	elems, err := parseValueArgs(args[1:])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	resp, err := c.Prepend(ctx, args[0], elems)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s = ", resp.Key)
	printValue(resp.Value)
}

func replPopBack(ctx context.Context, c *dbclient.Client, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: pop-back <key> [n]")
		return
	}
	n, err := optionalCount(args)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	popped, err := c.PopBack(ctx, args[0], n)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, v := range popped {
		printValue(v)
	}
}

func replPopFront(ctx context.Context, c *dbclient.Client, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: pop-front <key> [n]")
		return
	}
	n, err := optionalCount(args)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	popped, err := c.PopFront(ctx, args[0], n)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, v := range popped {
		printValue(v)
	}
}

func replIncr(ctx context.Context, c *dbclient.Client, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: incr <key> [n]")
		return
	}
	n, err := optionalDelta(args)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	resp, err := c.Increment(ctx, args[0], n)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s = ", resp.Key)
	printValue(resp.Value)
}

func replDecr(ctx context.Context, c *dbclient.Client, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: decr <key> [n]")
		return
	}
	n, err := optionalDelta(args)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	resp, err := c.Decrement(ctx, args[0], n)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s = ", resp.Key)
	printValue(resp.Value)
}

func replStats(ctx context.Context, c *dbclient.Client) {
	s, err := c.GetStats(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("reads:        %d\n", s.Reads)
	fmt.Printf("writes:       %d\n", s.Writes)
	fmt.Printf("requests:     %d\n", s.Requests)
	fmt.Printf("saved_writes: %d\n", s.SavedWrites)
}
