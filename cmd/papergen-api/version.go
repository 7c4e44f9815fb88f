package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opengi/papergen/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Printf("papergen %s (%s)\n", info.GitVersion, info.GitCommit)
	},
}
