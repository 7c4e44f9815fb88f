package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use: "papergen-api",
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}
