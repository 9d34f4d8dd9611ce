package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"docsite/internal/repository/sqlstore"
	"docsite/internal/service"
	"docsite/internal/storage"
)

var reconcileCMD = &cobra.Command{
	Use:   "reconcile-images",
	Short: "remove stored files without an image row and report rows without a file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		grace, err := cmd.Flags().GetDuration("grace")
		if err != nil {
			return err
		}

		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		store, err := storage.Open(e.cfg.Storage, e.cfg.MinIO)
		if err != nil {
			return err
		}
		svc := service.NewImageService(sqlstore.NewImageStore(e.db), store, e.cfg.Upload.MaxFiles, e.log)

		report, err := svc.Reconcile(cmd.Context(), grace)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	reconcileCMD.Flags().Duration("grace", time.Hour, "keep unreferenced files younger than this")
	rootCMD.AddCommand(reconcileCMD)
}
