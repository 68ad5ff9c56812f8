package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	craftingCommands "github.com/KungRaseri/forgecraft/internal/application/crafting/commands"
	craftingQueries "github.com/KungRaseri/forgecraft/internal/application/crafting/queries"
	"github.com/KungRaseri/forgecraft/internal/domain/crafting"
)

// NewOrderCommand creates the order command with subcommands
func NewOrderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage crafting orders",
		Long:  `Queue, inspect and cancel crafting orders on the station.`,
	}

	cmd.AddCommand(newOrderQueueCommand())
	cmd.AddCommand(newOrderGetCommand())
	cmd.AddCommand(newOrderListCommand())
	cmd.AddCommand(newOrderCancelCommand())
	cmd.AddCommand(newOrderCancelAllCommand())

	return cmd
}

// newOrderQueueCommand submits a crafting order
func newOrderQueueCommand() *cobra.Command {
	var materials []string

	cmd := &cobra.Command{
		Use:   "queue <recipe-id>",
		Short: "Queue a crafting order",
		Long: `Queue a crafting order for an unlocked recipe. The allocated materials
must satisfy every requirement of the recipe.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instances, err := parseMaterials(materials)
			if err != nil {
				return err
			}

			container, err := newAppContainer()
			if err != nil {
				return err
			}
			defer container.Close()

			resp, err := container.send(&craftingCommands.QueueOrderCommand{
				RecipeID:  args[0],
				Materials: instances,
			})
			if err != nil {
				return err
			}

			result := resp.(*craftingCommands.QueueOrderResponse)
			fmt.Printf("Order %s %s\n", result.OrderID, describeStatus(result.Status))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&materials, "material", nil,
		"Allocated material as CATEGORY:QUALITY[:ID], repeatable")
	_ = cmd.MarkFlagRequired("material")

	return cmd
}

// newOrderGetCommand shows one order in detail
func newOrderGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <order-id>",
		Short: "Show a crafting order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := newAppContainer()
			if err != nil {
				return err
			}
			defer container.Close()

			resp, err := container.send(&craftingQueries.GetOrderQuery{OrderID: args[0]})
			if err != nil {
				return err
			}

			result := resp.(*craftingQueries.GetOrderResponse)
			if !result.Found {
				fmt.Printf("Order %s not found\n", args[0])
				return nil
			}

			printOrderDetail(result.Order)
			return nil
		},
	}
}

// newOrderListCommand lists the active order and the queue
func newOrderListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the active order and the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := newAppContainer()
			if err != nil {
				return err
			}
			defer container.Close()

			resp, err := container.send(&craftingQueries.GetAllOrdersQuery{})
			if err != nil {
				return err
			}

			result := resp.(*craftingQueries.GetAllOrdersResponse)
			if result.Current == nil && len(result.Queued) == 0 {
				fmt.Println("No open orders")
				return nil
			}

			fmt.Printf("%-35s %-25s %-12s %-10s %s\n",
				"ORDER ID", "RECIPE", "STATUS", "PROGRESS", "SUCCESS RATE")
			fmt.Println(strings.Repeat("─", 96))

			if result.Current != nil {
				printOrderRow(result.Current)
			}
			for _, order := range result.Queued {
				printOrderRow(order)
			}

			return nil
		},
	}
}

// newOrderCancelCommand cancels one order
func newOrderCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Cancel a crafting order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := newAppContainer()
			if err != nil {
				return err
			}
			defer container.Close()

			resp, err := container.send(&craftingCommands.CancelOrderCommand{OrderID: args[0]})
			if err != nil {
				return err
			}

			if resp.(*craftingCommands.CancelOrderResponse).Cancelled {
				fmt.Printf("Cancelled order %s\n", args[0])
			} else {
				fmt.Printf("Order %s is not open\n", args[0])
			}
			return nil
		},
	}
}

// newOrderCancelAllCommand cancels the active order and the whole queue
func newOrderCancelAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel-all",
		Short: "Cancel every open crafting order",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := newAppContainer()
			if err != nil {
				return err
			}
			defer container.Close()

			resp, err := container.send(&craftingCommands.CancelAllOrdersCommand{})
			if err != nil {
				return err
			}

			fmt.Printf("Cancelled %d orders\n", resp.(*craftingCommands.CancelAllOrdersResponse).Cancelled)
			return nil
		},
	}
}

func printOrderRow(order *crafting.Order) {
	fmt.Printf("%-35s %-25s %-12s %-10s %.1f%%\n",
		truncate(order.ID(), 35),
		truncate(order.Recipe().Name(), 25),
		order.Status(),
		formatProgress(order.Progress()),
		order.SuccessRate(),
	)
}

func printOrderDetail(order *crafting.Order) {
	fmt.Printf("Order:        %s\n", order.ID())
	fmt.Printf("Recipe:       %s (%s)\n", order.Recipe().Name(), order.Recipe().ID())
	fmt.Printf("Status:       %s\n", order.Status())
	fmt.Printf("Progress:     %s\n", formatProgress(order.Progress()))
	fmt.Printf("Success rate: %.1f%%\n", order.SuccessRate())
	fmt.Println("Materials:")
	for _, inst := range order.Materials() {
		fmt.Printf("  - %s\n", inst)
	}
	if remaining := order.RemainingTime(); remaining != nil {
		fmt.Printf("Remaining:    %s\n", formatDuration(*remaining))
	}
	if quality := order.FinalQuality(); quality != nil {
		fmt.Printf("Result:       %s quality\n", *quality)
	}
	if order.FailureReason() != "" {
		fmt.Printf("Failure:      %s\n", order.FailureReason())
	}
}

func describeStatus(status crafting.Status) string {
	if status == crafting.StatusInProgress {
		return "started immediately"
	}
	return "queued"
}
