package main

import (
	"fmt"

	"github.com/aretw0/decompose"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of decompose",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "decompose version %s\n", decompose.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
