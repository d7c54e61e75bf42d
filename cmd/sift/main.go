// Command sift is a terminal file explorer built on a virtualized,
// resizable list view.
package main

import (
	"fmt"
	"os"

	"github.com/rshade/sift/internal/cli"
	"github.com/rshade/sift/pkg/version"
)

func run() error {
	return cli.NewRootCmd(version.GetVersion()).Execute()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}
