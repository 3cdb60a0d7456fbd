package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/api"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/admin"
)

// printData pretty-prints an envelope's data payload; the admin views are
// read-mostly and their shapes vary, so raw JSON beats a lossy table.
func printData(env *api.Envelope) error {
	if len(env.Data) == 0 {
		fmt.Println("(no data)")
		return nil
	}
	var v any
	if err := json.Unmarshal(env.Data, &v); err != nil {
		return err
	}
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(buf))
	return nil
}

func newAdminCmd(a **app) *cobra.Command {
	root := &cobra.Command{
		Use:   "admin",
		Short: "Back-office operations (admin accounts only)",
	}

	products := &cobra.Command{
		Use:   "products",
		Short: "List all products, including unpublished",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := (*a).admin.AllProducts(cmd.Context())
			if err != nil {
				return err
			}
			return printData(env)
		},
	}

	var op admin.OrderParams
	ordersCmd := &cobra.Command{
		Use:   "orders",
		Short: "List all orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := (*a).admin.AllOrders(cmd.Context(), op)
			if err != nil {
				return err
			}
			return printData(env)
		},
	}
	ordersCmd.Flags().IntVar(&op.Page, "page", 0, "Page number")
	ordersCmd.Flags().IntVar(&op.Limit, "limit", 0, "Orders per page")
	ordersCmd.Flags().StringVar(&op.Status, "status", "", "Filter by status")
	ordersCmd.Flags().StringVar(&op.PaymentStatus, "payment-status", "", "Filter by payment status")
	ordersCmd.Flags().StringVar(&op.Search, "search", "", "Search")

	var period string
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Order and user statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := (*a).admin.OrderStats(cmd.Context(), period)
			if err != nil {
				return err
			}
			fmt.Println("Orders:")
			if err := printData(env); err != nil {
				return err
			}
			env, err = (*a).admin.UserStats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println("Users:")
			return printData(env)
		},
	}
	stats.Flags().StringVar(&period, "period", "", "Stats period (day, week, month)")

	setStatus := &cobra.Command{
		Use:   "set-status <orderID> <status>",
		Short: "Update an order's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := (*a).admin.UpdateOrderStatus(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Println("Status updated")
			return nil
		},
	}

	users := &cobra.Command{
		Use:   "users",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := (*a).admin.AllUsers(cmd.Context())
			if err != nil {
				return err
			}
			return printData(env)
		},
	}
	users.AddCommand(
		&cobra.Command{
			Use:   "delete <userID>",
			Short: "Soft-delete an account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := (*a).admin.DeleteUser(cmd.Context(), args[0])
				return err
			},
		},
		&cobra.Command{
			Use:   "restore <userID>",
			Short: "Restore a soft-deleted account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := (*a).admin.RestoreUser(cmd.Context(), args[0])
				return err
			},
		},
	)

	root.AddCommand(products, ordersCmd, stats, setStatus, users)
	return root
}
