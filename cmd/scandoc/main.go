// Package main is the entry point for the scandoc CLI.
// See docs/ARCHITECTURE § CLI Surface.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the scandoc CLI.
var rootCmd = &cobra.Command{
	Use:   "scandoc",
	Short: "Make PDFs and images look like scanned documents",
	Long: `scandoc converts PDF documents and image files into output that looks
like it was fed through a paper scanner: pages are rasterized, slightly
tilted, given a mild brightness jitter, re-encoded at a configurable
quality, and reassembled into a PDF beside the source file.

Use convert to process a folder and history to inspect past runs.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scandoc.yaml or ~/.config/scandoc/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scandoc")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scandoc"))
		}
	}

	viper.SetEnvPrefix("SCANDOC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
