package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/products"
)

func newProductsCmd(a **app) *cobra.Command {
	root := &cobra.Command{
		Use:   "products",
		Short: "Browse the catalog",
	}

	var params products.ListParams
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := (*a).products.List(cmd.Context(), params)
			if err != nil {
				return err
			}
			result, err := products.DecodeList(env)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tCATEGORY")
			for _, p := range result.Products {
				price := money(p.Price)
				if p.IsOnSale {
					price += " (sale)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, price, p.Stock, p.Category)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if pg := result.Pagination; pg.Pages > 1 {
				fmt.Printf("Page %d of %d (%d products)\n", pg.Page, pg.Pages, pg.Total)
			}
			return nil
		},
	}
	list.Flags().IntVar(&params.Page, "page", 1, "Page number")
	list.Flags().IntVar(&params.Limit, "limit", 12, "Products per page")
	list.Flags().StringVar(&params.Category, "category", "", "Filter by category")
	list.Flags().StringVar(&params.Search, "search", "", "Search by name")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := (*a).products.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p, err := products.DecodeOne(env)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n  price: %s", p.Name, money(p.Price))
			if p.IsOnSale {
				fmt.Printf(" (was %s, -%d%%)", money(p.OriginalPrice), p.DiscountPercentage)
			}
			fmt.Printf("\n  stock: %d\n  category: %s\n", p.Stock, p.Category)
			if p.Description != "" {
				fmt.Printf("  %s\n", p.Description)
			}
			return nil
		},
	}

	categories := &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := (*a).products.Categories(cmd.Context())
			if err != nil {
				return err
			}
			cats, err := products.DecodeCategories(env)
			if err != nil {
				return err
			}
			for _, c := range cats {
				fmt.Println(c)
			}
			return nil
		},
	}

	root.AddCommand(list, show, categories)
	return root
}
