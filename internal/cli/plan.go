package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikavisa/visaflow/internal/model"
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the weekly posting schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
		today := time.Now().Weekday().String()

		for _, day := range days {
			marker := " "
			if day == today {
				marker = "*"
			}
			label := cfg.Plan[day]
			if label == model.PollSentinel {
				label = "poll (no content item)"
			}
			fmt.Printf("%s %-10s %s\n", marker, day, label)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
