package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parcelshield/shieldkit/core"
	"github.com/spf13/cobra"
)

// fileRefFromPath stats the file up front so the size is known before
// the upload begins; the content is opened lazily at submit time.
func fileRefFromPath(path string) (*core.FileRef, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return &core.FileRef{
		Name: filepath.Base(path),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

func newUploadCommand(opts *rootOptions) *cobra.Command {
	var kindName, title, filePath, newsLink string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload new content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(kindName)
			if err != nil {
				return err
			}
			file, err := fileRefFromPath(filePath)
			if err != nil {
				return err
			}
			kit, err := opts.buildKit()
			if err != nil {
				return err
			}
			return kit.Upload.Submit(context.Background(), &core.UploadDraft{
				Kind:     kind,
				Title:    title,
				File:     file,
				NewsLink: newsLink,
			})
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", "", "content kind")
	cmd.Flags().StringVarP(&title, "title", "t", "", "title or headline")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "file to upload")
	cmd.Flags().StringVarP(&newsLink, "link", "l", "", "news article link (scam cases only)")
	cmd.MarkFlagRequired("kind")
	cmd.MarkFlagRequired("file")
	return cmd
}
