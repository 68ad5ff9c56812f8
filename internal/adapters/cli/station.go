package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	craftingCommands "github.com/KungRaseri/forgecraft/internal/application/crafting/commands"
	craftingQueries "github.com/KungRaseri/forgecraft/internal/application/crafting/queries"
)

// NewStationCommand creates the station command with subcommands
func NewStationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "station",
		Short: "Inspect and drive the crafting station",
	}

	cmd.AddCommand(newStationStatsCommand())
	cmd.AddCommand(newStationTickCommand())

	return cmd
}

// newStationStatsCommand prints station statistics
func newStationStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show station statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := newAppContainer()
			if err != nil {
				return err
			}
			defer container.Close()

			resp, err := container.send(&craftingQueries.GetStationStatsQuery{})
			if err != nil {
				return err
			}

			stats := resp.(*craftingQueries.GetStationStatsResponse).Stats
			keys := make([]string, 0, len(stats))
			for k := range stats {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				fmt.Printf("%-28s %v\n", k, stats[k])
			}
			return nil
		},
	}
}

// newStationTickCommand advances crafting work by a given duration
func newStationTickCommand() *cobra.Command {
	var elapsed time.Duration

	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Advance the active order by a duration",
		Long: `Advance the active order's progress as if the given duration had
elapsed. When progress reaches 100% the success roll resolves the order and
the next queued order is promoted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := newAppContainer()
			if err != nil {
				return err
			}
			defer container.Close()

			resp, err := container.send(&craftingCommands.TickCommand{Elapsed: elapsed})
			if err != nil {
				return err
			}

			result := resp.(*craftingCommands.TickResponse)
			if result.Resolved != nil {
				order := result.Resolved
				fmt.Printf("Order %s resolved: %s\n", order.ID(), order.Status())
				if quality := order.FinalQuality(); quality != nil {
					fmt.Printf("  produced %s at %s quality\n",
						order.Recipe().Result().Name, *quality)
				}
				if order.FailureReason() != "" {
					fmt.Printf("  %s\n", order.FailureReason())
				}
			}
			if result.Active != nil {
				fmt.Printf("Active order %s at %s\n",
					result.Active.ID(), formatProgress(result.Active.Progress()))
			}
			if result.Resolved == nil && result.Active == nil {
				fmt.Println("Station is idle")
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&elapsed, "elapsed", time.Second, "Elapsed duration to apply")

	return cmd
}
