// fastnbt matches entities against selector nbt={...} patterns.
//
// Usage:
//
//	fastnbt match world.yaml --pattern '{Health: !f 20}'
//	fastnbt test ./scenarios
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/roach88/fastnbt/internal/cli"
)

func main() {
	err := cli.NewRootCommand().ExecuteContext(context.Background())

	// Commands report their own failures; anything else came from cobra.
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
