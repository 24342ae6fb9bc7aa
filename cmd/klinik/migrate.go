package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c14220110/klinik-backend/config"
	"github.com/c14220110/klinik-backend/pkg/storage/mariadb"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Membuat tabel Billing, Fee_Dokter_Detail dan Fee_Rule bila belum ada",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			db, err := mariadb.Connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := mariadb.Migrate(cmd.Context(), db)
			if err != nil {
				return fmt.Errorf("migrasi gagal: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d statement dijalankan.\n", n)
			return nil
		},
	}
}
