package main

import (
	"encoding/json"
	"fmt"

	"github.com/alexdb/alexdb/internal/store/value"
)

// parseValueArg decodes a command-line value argument the same way the
// wire contract decodes a JSON value: try it as JSON first (so `42`,
// `true`, `[1,2,3]`, `"already quoted"` all work as the user expects),
// falling back to treating the raw text as a bare string.
func parseValueArg(raw string) (value.Value, error) {
	var v value.Value
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v, nil
	}
	if err := json.Unmarshal([]byte(fmt.Sprintf("%q", raw)), &v); err != nil {
		return value.Value{}, fmt.Errorf("parse value %q: %w", raw, err)
	}
	return v, nil
}

// parseValueArgs decodes each raw argument with parseValueArg and
// wraps the results in a Value array, for append/prepend which accept
// one or more elements on the command line.
func parseValueArgs(raw []string) (value.Value, error) {
	elems := make([]value.Value, len(raw))
	for i, r := range raw {
		v, err := parseValueArg(r)
		if err != nil {
			return value.Value{}, err
		}
		elems[i] = v
	}
	return value.Array(elems...), nil
}

func printValue(v value.Value) {
	data, err := json.Marshal(v)
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(data))
}
