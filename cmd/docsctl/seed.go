package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"docsite/internal/config"
	"docsite/internal/database"
	"docsite/internal/database/seed"
	"docsite/internal/repository/sqlstore"
)

var seedCMD = &cobra.Command{
	Use:   "seed",
	Short: "create the default admin and starter documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reset, err := cmd.Flags().GetBool("reset")
		if err != nil {
			return err
		}
		if reset {
			if err := resetDatabase(config.Load().Database); err != nil {
				return err
			}
		}

		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := seed.Run(cmd.Context(), sqlstore.NewUserStore(e.db), sqlstore.NewDocumentStore(e.db), e.log)
		if err != nil {
			return err
		}
		if res.AdminCreated {
			e.log.Warn().
				Str("username", seed.DefaultAdminUsername).
				Msg("default admin created; change its password after the first login")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin created: %t, documents created: %d\n", res.AdminCreated, res.DocsCreated)
		return nil
	},
}

// resetDatabase removes the SQLite file and its WAL side files. Other drivers are left alone.
func resetDatabase(c config.DatabaseConfig) error {
	dialect, err := database.DialectOf(c)
	if err != nil {
		return err
	}
	if dialect != database.DialectSQLite {
		return fmt.Errorf("--reset is only supported for sqlite databases")
	}
	for _, p := range []string{c.Path, c.Path + "-wal", c.Path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return nil
}

func init() {
	seedCMD.Flags().Bool("reset", false, "delete the sqlite database file before seeding")
	rootCMD.AddCommand(seedCMD)
}
