package main

import (
	"context"
	"fmt"

	"github.com/parcelshield/shieldkit/core"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

func kindArg(arg string) (core.Kind, error) {
	kind := core.Kind(arg)
	if _, err := core.ResourceFor(kind); err != nil {
		return "", fmt.Errorf("%w (valid kinds: %v)", err, core.Kinds())
	}
	return kind, nil
}

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [kind]",
		Short: "Show a public content collection (scam tips by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := string(core.KindScamTips)
			if len(args) == 1 {
				name = args[0]
			}
			kind, err := kindArg(name)
			if err != nil {
				return err
			}
			kit, err := opts.buildKit()
			if err != nil {
				return err
			}
			return kit.Content.LoadPublic(context.Background(), kind)
		},
	}
}

func newAdminCommand(opts *rootOptions) *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage content collections",
	}

	adminCmd.AddCommand(&cobra.Command{
		Use:   "list <kind>",
		Short: "Show a collection with ids and paths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args[0])
			if err != nil {
				return err
			}
			kit, err := opts.buildKit()
			if err != nil {
				return err
			}
			return kit.Content.LoadAdmin(context.Background(), kind)
		},
	})

	adminCmd.AddCommand(&cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Delete one item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args[0])
			if err != nil {
				return err
			}
			id, err := cast.ToInt64E(args[1])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[1], err)
			}
			kit, err := opts.buildKit()
			if err != nil {
				return err
			}
			return kit.Content.DeleteItem(context.Background(), kind, id)
		},
	})

	var title, body string
	editCmd := &cobra.Command{
		Use:   "edit <kind> <id>",
		Short: "Update one item's title and body",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args[0])
			if err != nil {
				return err
			}
			id, err := cast.ToInt64E(args[1])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[1], err)
			}
			kit, err := opts.buildKit()
			if err != nil {
				return err
			}
			return kit.Content.EditItem(context.Background(), kind, id, title, body)
		},
	}
	editCmd.Flags().StringVar(&title, "title", "", "new title")
	editCmd.Flags().StringVar(&body, "body", "", "new body text")
	adminCmd.AddCommand(editCmd)

	return adminCmd
}
