package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/cart"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/products"
)

func newCartCmd(a **app) *cobra.Command {
	root := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showCart(cmd, *a)
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show cart contents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showCart(cmd, *a)
		},
	}

	add := &cobra.Command{
		Use:   "add <productID> [quantity]",
		Short: "Add a product to the cart",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty := 1
			if len(args) == 2 {
				var err error
				if qty, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("quantity %q is not a number", args[1])
				}
			}
			env, err := (*a).products.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p, err := products.DecodeOne(env)
			if err != nil {
				return err
			}
			return (*a).cart.AddItem(cmd.Context(), cart.Product{
				ID:                 p.ID,
				Name:               p.Name,
				Price:              p.Price,
				Image:              p.Image,
				Stock:              p.Stock,
				Category:           p.Category,
				Rating:             p.Rating,
				Description:        p.Description,
				IsOnSale:           p.IsOnSale,
				DiscountPercentage: p.DiscountPercentage,
				OriginalPrice:      p.OriginalPrice,
			}, qty)
		},
	}

	remove := &cobra.Command{
		Use:   "remove <productID>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return (*a).cart.RemoveItem(cmd.Context(), args[0])
		},
	}

	set := &cobra.Command{
		Use:   "set <productID> <quantity>",
		Short: "Set the quantity of a cart line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity %q is not a number", args[1])
			}
			return (*a).cart.SetQuantity(cmd.Context(), args[0], qty)
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return (*a).cart.Clear(cmd.Context())
		},
	}

	root.AddCommand(show, add, remove, set, clear)
	return root
}

func showCart(cmd *cobra.Command, a *app) error {
	if err := a.cart.Load(cmd.Context()); err != nil {
		return err
	}
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("Cart is empty")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tPRICE\tSUBTOTAL")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			it.ProductID, it.Name, it.Quantity, money(it.UnitPrice), money(it.Subtotal))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("Total: %s (%d items)\n", money(a.cart.Total()), a.cart.ItemCount())
	return nil
}
