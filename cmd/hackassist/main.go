package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/hackassist/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	root := cli.NewRootCmd(cli.Options{Verbose: isVerbose()})

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func isVerbose() bool {
	v := os.Getenv("HACKASSIST_DEBUG")
	return strings.EqualFold(v, "1") || strings.EqualFold(v, "true")
}
