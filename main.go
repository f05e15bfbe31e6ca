package main

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/azctx/internal/cmd"
	errs "github.com/Iron-Ham/azctx/internal/errors"
)

// exitCancelled matches the conventional exit status for an interrupted
// interactive session (128 + SIGINT).
const exitCancelled = 130

func main() {
	if err := cmd.Execute(); err != nil {
		if errs.Is(err, errs.ErrCancelled) {
			os.Exit(exitCancelled)
		}
		if !cmd.Rendered(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
