package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/contact"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/orders"
)

// checkout drives the hosted-gateway payment: initiate prints the gateway
// URL, confirm completes the flow with the token the gateway returns.
func newCheckoutCmd(a **app) *cobra.Command {
	root := &cobra.Command{
		Use:   "checkout",
		Short: "Pay for the current cart",
	}

	var addr orders.ShippingAddress
	initiate := &cobra.Command{
		Use:   "initiate",
		Short: "Start a payment for the current cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := (*a).payment.Initiate(cmd.Context(), addr)
			if err != nil {
				return err
			}
			fmt.Printf("Order %s for %s\n", d.OrderID, money(d.Amount))
			fmt.Printf("Complete the payment at: %s\n", d.RedirectURL)
			fmt.Println("Then run: shopctl checkout confirm <token_ws>")
			return nil
		},
	}
	initiate.Flags().StringVar(&addr.Street, "street", "", "Shipping street")
	initiate.Flags().StringVar(&addr.City, "city", "", "Shipping city")
	initiate.Flags().StringVar(&addr.Region, "region", "", "Shipping region")
	initiate.Flags().StringVar(&addr.ZipCode, "zip", "", "Shipping zip code")
	initiate.Flags().StringVar(&addr.Phone, "phone", "", "Contact phone")
	_ = initiate.MarkFlagRequired("street")
	_ = initiate.MarkFlagRequired("city")

	confirm := &cobra.Command{
		Use:   "confirm <token_ws>",
		Short: "Confirm a payment with the gateway return token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := (*a).payment.Confirm(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			msg := env.Message
			if msg == "" {
				msg = "Payment confirmed"
			}
			fmt.Println(msg)
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the pending payment, if any",
		RunE: func(*cobra.Command, []string) error {
			d, ok := (*a).payment.Pending()
			if !ok {
				fmt.Println("No payment in flight")
				return nil
			}
			fmt.Printf("Order %s for %s awaiting confirmation\n", d.OrderID, money(d.Amount))
			return nil
		},
	}

	abandon := &cobra.Command{
		Use:   "abandon",
		Short: "Drop the pending payment",
		RunE: func(*cobra.Command, []string) error {
			(*a).payment.Abandon()
			fmt.Println("Pending payment dropped")
			return nil
		},
	}

	root.AddCommand(initiate, confirm, status, abandon)
	return root
}

func newContactCmd(a **app) *cobra.Command {
	var form contact.Form
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := (*a).contact.Submit(cmd.Context(), form)
			if err != nil {
				return err
			}
			msg := env.Message
			if msg == "" {
				msg = "Message sent"
			}
			fmt.Println(msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&form.Email, "email", "", "Your email")
	cmd.Flags().StringVar(&form.Subject, "subject", "", "Subject")
	cmd.Flags().StringVar(&form.Message, "message", "", "Message body")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}
