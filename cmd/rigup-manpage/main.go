package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/rigup/internal/cli"
	"github.com/arthur-debert/rigup/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()
	rootCmd.DisableAutoGenTag = true

	header := &doc.GenManHeader{
		Title:   "RIGUP",
		Section: "8",
		Source:  "rigup " + version.Version,
		Manual:  "rigup manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
