package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/serralheria/internal/backup"
)

func newBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Upload the stored documents to S3",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uploader, err := backup.NewS3Uploader(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			result, err := backup.Run(cmd.Context(), a.store, uploader, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "s3://%s/%s (%d documents)\n", a.cfg.BackupBucket, result.Folder, len(result.Objects))
			return nil
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all quotes and the business profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("reset erases every quote and the business profile; run again with --yes")
			}
			if err := a.quotes.ClearAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Todos os dados foram apagados.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
