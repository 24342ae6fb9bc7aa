package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/c14220110/klinik-backend/internal/administrasi/fee"
	"github.com/c14220110/klinik-backend/internal/administrasi/models"
	"github.com/c14220110/klinik-backend/internal/administrasi/services"
)

var errOffline = errors.New("tidak tersedia pada mode offline")

// offlineRepo dipakai `fee hitung`: biaya obat dianggap 0 bila tidak diisi.
type offlineRepo struct{}

func (offlineRepo) BiayaObatKunjungan(context.Context, int) (float64, error) { return 0, nil }

func (offlineRepo) SimpanFee(context.Context, services.BillingRecord) (int64, error) {
	return 0, errOffline
}

func (offlineRepo) ListBilling(context.Context, string) ([]models.BillingRingkas, error) {
	return nil, errOffline
}

func (offlineRepo) GetFee(context.Context, int) (*models.FeeTersimpan, error) {
	return nil, errOffline
}

type fileRules []fee.FeeRule

func (r fileRules) ActiveFeeRules(context.Context) ([]fee.FeeRule, error) { return r, nil }

func readJSON(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func feeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fee",
		Short: "Perhitungan fee dokter",
	}

	var input, rulesPath string
	var adminFee float64
	hitungCmd := &cobra.Command{
		Use:   "hitung",
		Short: "Menghitung fee dokter satu kunjungan dari file JSON tanpa database",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req models.HitungFeeRequest
			if err := readJSON(input, &req); err != nil {
				return err
			}
			var rules fileRules
			if rulesPath != "" {
				if err := readJSON(rulesPath, &rules); err != nil {
					return err
				}
			}

			logger := zerolog.New(cmd.ErrOrStderr()).With().Timestamp().Logger()
			svc := services.NewBillingService(offlineRepo{}, rules, nil, adminFee, logger)
			hasil, err := svc.HitungFee(cmd.Context(), req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(hasil)
		},
	}
	hitungCmd.Flags().StringVar(&input, "input", "", "File JSON kunjungan (format request /billing/fee/hitung)")
	hitungCmd.Flags().StringVar(&rulesPath, "rules", "", "File JSON daftar aturan fee")
	hitungCmd.Flags().Float64Var(&adminFee, "admin-fee", 0, "Biaya administrasi bila tidak diisi di input")
	hitungCmd.MarkFlagRequired("input")
	cmd.AddCommand(hitungCmd)
	return cmd
}
