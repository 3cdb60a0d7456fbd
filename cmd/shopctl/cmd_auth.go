package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/auth"
)

func newLoginCmd(a **app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := (*a).session.Login(cmd.Context(), auth.Credentials{
				Email:    email,
				Password: password,
			}); err != nil {
				return err
			}
			if u, ok := (*a).session.User(); ok {
				fmt.Printf("Logged in as %s <%s>\n", u.Name, u.Email)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(*cobra.Command, []string) error {
			(*a).session.Logout()
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newRegisterCmd(a **app) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := (*a).session.Register(cmd.Context(), auth.RegisterInput{
				Name:     name,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}
			msg := env.Message
			if msg == "" {
				msg = "Registered. Check your email to verify your account."
			}
			fmt.Println(msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newVerifyCmd(a **app) *cobra.Command {
	verify := &cobra.Command{
		Use:   "verify <token>",
		Short: "Verify the account email with the emailed token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := (*a).session.VerifyEmail(cmd.Context(), args[0]); err != nil {
				return err
			}
			if (*a).session.IsAuthenticated() {
				fmt.Println("Email verified, you are now logged in")
			} else {
				fmt.Println("Email verified")
			}
			return nil
		},
	}
	verify.AddCommand(&cobra.Command{
		Use:   "resend <email>",
		Short: "Request a fresh verification email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).session.ResendVerification(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Verification email requested")
			return nil
		},
	})
	return verify
}

func newWhoamiCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(*cobra.Command, []string) error {
			u, ok := (*a).session.User()
			if !ok {
				fmt.Println("Not logged in")
				return nil
			}
			fmt.Printf("%s <%s>", u.Name, u.Email)
			if u.IsAdmin() {
				fmt.Print(" (admin)")
			}
			if !u.Verified {
				fmt.Print(" (unverified)")
			}
			fmt.Println()
			return nil
		},
	}
}
