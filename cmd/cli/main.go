package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "tiktok-transcriber",
		Short: "Bulk download and transcribe TikTok videos",
		Long: `Downloads TikTok videos by URL, extracts their audio, and produces
timestamped speech transcriptions with CSV, JSON, and SRT exports.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(urlsCmd)
	rootCmd.AddCommand(tiersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
