package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/api"
)

type orderView struct {
	ID     string `json:"id"`
	Total  int64  `json:"total"`
	Status string `json:"status"`
	Items  []struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
		Price    int64  `json:"price"`
	} `json:"items"`
}

func decodeOrders(env *api.Envelope) ([]orderView, error) {
	var wrapped struct {
		Orders []orderView `json:"orders"`
	}
	if err := json.Unmarshal(env.Data, &wrapped); err == nil && wrapped.Orders != nil {
		return wrapped.Orders, nil
	}
	var bare []orderView
	err := json.Unmarshal(env.Data, &bare)
	return bare, err
}

func decodeOrder(env *api.Envelope) (orderView, error) {
	var wrapped struct {
		Order *orderView `json:"order"`
	}
	if err := json.Unmarshal(env.Data, &wrapped); err == nil && wrapped.Order != nil {
		return *wrapped.Order, nil
	}
	var o orderView
	err := json.Unmarshal(env.Data, &o)
	return o, err
}

func newOrdersCmd(a **app) *cobra.Command {
	root := &cobra.Command{
		Use:   "orders",
		Short: "View and manage your orders",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := (*a).orders.MyOrders(cmd.Context())
			if err != nil {
				return err
			}
			orders, err := decodeOrders(env)
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Println("No orders yet")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tTOTAL")
			for _, o := range orders {
				fmt.Fprintf(w, "%s\t%s\t%s\n", o.ID, o.Status, money(o.Total))
			}
			return w.Flush()
		},
	}

	show := &cobra.Command{
		Use:   "show <orderID>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := (*a).orders.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			o, err := decodeOrder(env)
			if err != nil {
				return err
			}
			fmt.Printf("Order %s (%s)\n", o.ID, o.Status)
			for _, it := range o.Items {
				fmt.Printf("  %dx %s at %s\n", it.Quantity, it.Name, money(it.Price))
			}
			fmt.Printf("Total: %s\n", money(o.Total))
			return nil
		},
	}

	cancel := &cobra.Command{
		Use:   "cancel <orderID>",
		Short: "Cancel a pending order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := (*a).orders.Cancel(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Order cancelled")
			return nil
		},
	}

	root.AddCommand(list, show, cancel)
	return root
}
