package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var harvestTimeout time.Duration

// harvestCmd represents the harvest command
var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Pull new article links from the configured feeds",
	Long: `Harvest polls every configured RSS/Atom feed, probes the discovered
article links, and appends previously unseen ones to the links file in
the knowledge directory. The next ingest run fetches and classifies
them.`,
	RunE: runHarvest,
}

func init() {
	rootCmd.AddCommand(harvestCmd)
	harvestCmd.Flags().DurationVar(&harvestTimeout, "timeout", 5*time.Minute, "overall harvest timeout")
}

func runHarvest(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), harvestTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	added, err := newHarvester(cfg).Harvest(ctx)
	if err != nil {
		return fmt.Errorf("harvest failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Harvested %d new links\n", added)
	return nil
}
