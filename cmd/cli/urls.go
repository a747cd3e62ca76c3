package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/domain"
)

var urlsCmd = &cobra.Command{
	Use:   "urls [file]",
	Short: "Preview the TikTok URLs extracted from text",
	Long: `Extracts and validates TikTok URLs from a text file or stdin without
processing them. Useful for checking a batch before running it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error

		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return err
		}

		urls := domain.CollectURLs(string(data))
		if len(urls) == 0 {
			fmt.Println("No valid TikTok URLs found")
			return nil
		}

		fmt.Printf("Found %d valid TikTok URLs:\n", len(urls))
		for i, url := range urls {
			fmt.Printf("%d. %s\n", i+1, url)
		}
		return nil
	},
}

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List available model tiers",
	Run: func(cmd *cobra.Command, args []string) {
		descriptions := map[domain.ModelTier]string{
			domain.TierTiny:   "Fastest, least accurate (~39 MB)",
			domain.TierBase:   "Good balance (~74 MB)",
			domain.TierSmall:  "Better accuracy (~244 MB)",
			domain.TierMedium: "High accuracy (~769 MB)",
			domain.TierLarge:  "Best accuracy (~1550 MB)",
		}
		for _, tier := range domain.AvailableTiers() {
			fmt.Printf("%-8s %s\n", tier, descriptions[tier])
		}
	},
}
