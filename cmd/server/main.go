// Package main implements the pomi command: the academic scheduling API
// server and its operational subcommands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/redact"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "pomi:", redact.Error(err))
		os.Exit(1)
	}
}
