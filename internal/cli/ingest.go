package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikavisa/visaflow/internal/pipeline"
)

var ingestTimeout time.Duration

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Extract and classify source material into the content store",
	Long: `Ingest walks the knowledge directory, segments and classifies every
readable file, and merges the resulting items into the content store.

Link-list files (one URL per line) are fetched and summarized; other
text files are split on "### " headings and classified per block.

Example:
  visaflow ingest
  visaflow ingest ./internal_knowledge`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 15*time.Minute, "overall ingest timeout")
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}

	dir := ""
	if len(args) == 1 {
		dir = args[0]
	}

	p := pipeline.New(cfg, newExtractor(cfg, provider), newHarvester(cfg), nil, nil)
	added, err := p.Ingest(ctx, dir)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Ingested %d items into %s\n", added, cfg.Extract.StorePath)
	return nil
}
