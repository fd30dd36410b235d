package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var runTimeout time.Duration

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full daily pipeline: ingest, harvest, post",
	Long: `Run executes the complete daily sequence: ingest the knowledge
directory, harvest fresh feed links, then deliver today's scheduled
post. A harvest failure is logged and skipped; ingest or delivery
failures abort the run.

Intended for a daily cron entry:
  0 10 * * * visaflow run`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 20*time.Minute, "overall run timeout")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	if err := p.Run(ctx, time.Now()); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Daily run complete\n")
	return nil
}
