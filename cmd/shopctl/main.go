// shopctl is a command-line client for the storefront backend: browse the
// catalog, manage the cart, and place orders from a terminal session.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	var a *app

	root := &cobra.Command{
		Use:           "shopctl",
		Short:         "Storefront client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a, err = newApp(verbose)
			if err != nil {
				return err
			}
			a.session.Initialize(cmd.Context())
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a != nil {
				a.flushNotifications()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every backend call")

	root.AddCommand(
		newLoginCmd(&a),
		newLogoutCmd(&a),
		newRegisterCmd(&a),
		newVerifyCmd(&a),
		newWhoamiCmd(&a),
		newProductsCmd(&a),
		newCartCmd(&a),
		newOrdersCmd(&a),
		newCheckoutCmd(&a),
		newContactCmd(&a),
		newAdminCmd(&a),
	)
	return root
}

func money(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
