package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newRegisterCommand(opts *rootOptions) *cobra.Command {
	var adminSecret string

	cmd := &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := opts.buildKit()
			if err != nil {
				return err
			}
			return kit.Auth.Register(context.Background(), args[0], args[1], adminSecret)
		},
	}

	cmd.Flags().StringVar(&adminSecret, "admin-secret", "", "registration secret for the admin role")
	return cmd
}

func newLoginCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in and persist the session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := opts.buildKit()
			if err != nil {
				return err
			}
			return kit.Auth.Login(context.Background(), args[0], args[1])
		},
	}
}

func newLogoutCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := opts.buildKit()
			if err != nil {
				return err
			}
			return kit.Auth.Logout()
		},
	}
}
