package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gostiff/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gostiff",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
		fmt.Println("2D Direct Stiffness Structural Analysis Tool")
		fmt.Println("Load combinations based on NSCP 2015 (National Structural Code of the Philippines)")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
