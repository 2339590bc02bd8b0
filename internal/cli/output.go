package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

// Pagination defaults applied when the optional positional args are absent.
const (
	defaultLimit  = 100
	defaultOffset = 0
)

// emit writes v as one compact JSON value plus trailing newline. Handlers
// call it exactly once on their success path.
func emit(cmd *cobra.Command, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// writeError renders err as the error JSON object. Marshaling a plain string
// cannot fail, so every exit path still yields one well-formed value.
func writeError(out io.Writer, err error) {
	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	fmt.Fprintln(out, string(data))
}

// parsePage resolves the optional positional [limit] [offset] arguments.
// Absent values default; present but non-numeric values are request errors.
func parsePage(args []string) (limit, offset int, err error) {
	limit, offset = defaultLimit, defaultOffset
	if len(args) > 0 {
		limit, err = strconv.Atoi(args[0])
		if err != nil {
			return 0, 0, fmt.Errorf("limit must be an integer, got %q", args[0])
		}
	}
	if len(args) > 1 {
		offset, err = strconv.Atoi(args[1])
		if err != nil {
			return 0, 0, fmt.Errorf("offset must be an integer, got %q", args[1])
		}
	}
	return limit, offset, nil
}
