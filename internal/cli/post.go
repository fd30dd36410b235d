package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var postTimeout time.Duration

// postCmd represents the post command
var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Deliver today's scheduled post to the channel",
	Long: `Post looks up today's weekday in the posting plan, selects the first
unposted item for that category, rewrites it in Persian and delivers
it to the Telegram channel. On poll days it sends the configured poll
instead. When no eligible item exists, a placeholder notice is sent
and the posted log is left unchanged.`,
	RunE: runPost,
}

func init() {
	rootCmd.AddCommand(postCmd)
	postCmd.Flags().DurationVar(&postTimeout, "timeout", 2*time.Minute, "overall post timeout")
}

func runPost(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), postTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	if err := p.PostOnce(ctx, time.Now()); err != nil {
		return fmt.Errorf("post failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Posted to %s\n", cfg.Telegram.Channel)
	return nil
}
