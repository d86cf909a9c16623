package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

func printResultJSON(result RunResult) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result.Results); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
