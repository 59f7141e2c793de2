package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexiusacademia/gostiff/internal/version"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "gostiff",
	Short: "2D Direct Stiffness Structural Analysis Tool",
	Long: `gostiff - Go Direct Stiffness Analyzer

A CLI tool for the matrix analysis of plane skeletal structures
made of bars, beams or frames.

This tool helps structural engineers perform:
  - Static analysis under nodal forces and prescribed displacements
  - Free vibration (modal) analysis with consistent mass matrices
  - NSCP 2015 load combinations of nodal load cases
  - Deformed shape and mode shape plots
  - Excel and PDF reports of the results`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gostiff v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Direct Stiffness Analyzer                            ║")
		fmt.Println("  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the matrix analysis of plane structures")
		fmt.Println("  made of bars, beams or frames.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Static analysis with reactions and determinant of K")
		fmt.Println("    • Natural frequencies and normalized mode shapes")
		fmt.Println("    • Factored nodal loads using NSCP load combinations")
		fmt.Println("    • Cross-section properties of parametric and polygon shapes")
		fmt.Println("    • HTTP API for front-ends")
		fmt.Println()
		fmt.Println("  Use 'gostiff --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./gostiff.yaml)")
	rootCmd.PersistentFlags().Int("points", 20, "Samples per element for deformed curves")
	rootCmd.PersistentFlags().Float64("scale", 0, "Deformation scale factor (0 = automatic)")
	viper.BindPFlag("points", rootCmd.PersistentFlags().Lookup("points"))
	viper.BindPFlag("scale", rootCmd.PersistentFlags().Lookup("scale"))
}

// initConfig reads .env, GOSTIFF_* variables and the optional config file.
// Flags given on the command line take precedence over all of them.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: reading .env: %v\n", err)
	}

	viper.SetEnvPrefix("gostiff")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gostiff")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: reading config: %v\n", err)
		}
	}
}
