package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newDetectCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <image>",
		Short: "Check whether an image is AI generated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := fileRefFromPath(args[0])
			if err != nil {
				return err
			}
			kit, err := opts.buildKit()
			if err != nil {
				return err
			}
			kit.Detect.SelectFile(file)
			return kit.Detect.Detect(context.Background())
		},
	}
}
