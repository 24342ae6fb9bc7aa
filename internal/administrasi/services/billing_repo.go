package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/c14220110/klinik-backend/internal/administrasi/fee"
	"github.com/c14220110/klinik-backend/internal/administrasi/models"
)

// BillingRecord adalah hasil perhitungan yang siap disimpan.
type BillingRecord struct {
	Hasil      models.HasilFee
	IDKaryawan int
	DisimpanAt time.Time
}

type BillingRepository interface {
	// BiayaObatKunjungan mengembalikan total harga resep kunjungan.
	BiayaObatKunjungan(ctx context.Context, idKunjungan int) (float64, error)
	SimpanFee(ctx context.Context, rec BillingRecord) (int64, error)
	ListBilling(ctx context.Context, status string) ([]models.BillingRingkas, error)
	GetFee(ctx context.Context, idKunjungan int) (*models.FeeTersimpan, error)
}

// FeeRuleReader menyediakan katalog aturan fee aktif dalam urutan yang stabil.
type FeeRuleReader interface {
	ActiveFeeRules(ctx context.Context) ([]fee.FeeRule, error)
}

// Notifier meneruskan event billing ke klien yang terhubung.
type Notifier interface {
	Publish(event string, payload interface{}) error
}

type billingRepoMariaDB struct {
	db *sql.DB
}

func NewBillingRepository(db *sql.DB) BillingRepository {
	return &billingRepoMariaDB{db: db}
}

// money membulatkan nominal ke 2 desimal sesuai kolom DECIMAL(15,2).
func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func (r *billingRepoMariaDB) BiayaObatKunjungan(ctx context.Context, idKunjungan int) (float64, error) {
	var dummy int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM Riwayat_Kunjungan WHERE id_kunjungan = ?", idKunjungan).Scan(&dummy)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrKunjunganNotFound
	}
	if err != nil {
		return 0, err
	}

	var total float64
	err = r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(total_harga), 0) FROM E_Resep WHERE id_kunjungan = ?", idKunjungan,
	).Scan(&total)
	return total, err
}

// SimpanFee menulis header Billing dan mengganti seluruh baris
// Fee_Dokter_Detail kunjungan dalam satu transaksi.
func (r *billingRepoMariaDB) SimpanFee(ctx context.Context, rec BillingRecord) (int64, error) {
	h := rec.Hasil
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var waktuDibayar sql.NullTime
	if h.StatusPembayaran == string(fee.StatusLunas) {
		waktuDibayar = sql.NullTime{Time: rec.DisimpanAt, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO Billing
			(id_kunjungan, id_dokter, id_karyawan, status_pembayaran, total_tindakan, biaya_admin,
			 biaya_obat, total_fee, jumlah_dp, sisa_tagihan, waktu_dibayar, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
			id_dokter = VALUES(id_dokter),
			id_karyawan = VALUES(id_karyawan),
			status_pembayaran = VALUES(status_pembayaran),
			total_tindakan = VALUES(total_tindakan),
			biaya_admin = VALUES(biaya_admin),
			biaya_obat = VALUES(biaya_obat),
			total_fee = VALUES(total_fee),
			jumlah_dp = VALUES(jumlah_dp),
			sisa_tagihan = VALUES(sisa_tagihan),
			waktu_dibayar = VALUES(waktu_dibayar),
			updated_at = VALUES(updated_at)`,
		h.IDKunjungan, h.IDDokter, rec.IDKaryawan, h.StatusPembayaran,
		money(h.TotalTindakan), money(h.BiayaAdmin), money(h.BiayaObat), money(h.Total.TotalFee),
		money(h.JumlahDP), money(h.SisaTagihan), waktuDibayar, rec.DisimpanAt, rec.DisimpanAt,
	)
	if err != nil {
		return 0, fmt.Errorf("simpan billing: %w", err)
	}

	var idBilling int64
	if err := tx.QueryRowContext(ctx, "SELECT id_billing FROM Billing WHERE id_kunjungan = ?", h.IDKunjungan).Scan(&idBilling); err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM Fee_Dokter_Detail WHERE id_billing = ?", idBilling); err != nil {
		return 0, err
	}
	for _, d := range h.Detail {
		var ruleID sql.NullInt64
		if d.RuleID != nil {
			ruleID = sql.NullInt64{Int64: int64(*d.RuleID), Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO Fee_Dokter_Detail
				(id_billing, id_tindakan, nama_tindakan, harga_akhir, persen_fee, dasar_fee, fee,
				 id_fee_rule, keterangan, is_override)
			VALUES (?,?,?,?,?,?,?,?,?,?)`,
			idBilling, d.LineID, d.LineName, money(d.FinalPrice), d.ResolvedFeePercentage,
			money(d.FeeBase), money(d.CalculatedFee), ruleID, d.RuleDescription, d.IsManualOverride,
		)
		if err != nil {
			return 0, fmt.Errorf("simpan detail fee %s: %w", d.LineID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return idBilling, nil
}

const billingSelect = `
	SELECT
		b.id_billing, b.id_kunjungan, COALESCE(p.nama, ''), b.id_dokter, COALESCE(k.nama, ''),
		b.status_pembayaran, b.total_tindakan, b.total_fee, b.jumlah_dp, b.sisa_tagihan,
		b.waktu_dibayar, b.created_at
	FROM Billing b
	LEFT JOIN Riwayat_Kunjungan rk ON b.id_kunjungan = rk.id_kunjungan
	LEFT JOIN Antrian a ON rk.id_antrian = a.id_antrian
	LEFT JOIN Pasien p ON a.id_pasien = p.id_pasien
	LEFT JOIN Karyawan k ON b.id_dokter = k.id_karyawan
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBilling(row rowScanner) (models.BillingRingkas, error) {
	var b models.BillingRingkas
	var waktuDibayar sql.NullTime
	err := row.Scan(
		&b.IDBilling, &b.IDKunjungan, &b.NamaPasien, &b.IDDokter, &b.NamaDokter,
		&b.StatusPembayaran, &b.TotalTindakan, &b.TotalFee, &b.JumlahDP, &b.SisaTagihan,
		&waktuDibayar, &b.CreatedAt,
	)
	if waktuDibayar.Valid {
		b.WaktuDibayar = &waktuDibayar.Time
	}
	return b, err
}

func (r *billingRepoMariaDB) ListBilling(ctx context.Context, status string) ([]models.BillingRingkas, error) {
	query := billingSelect
	var args []interface{}
	if status != "" {
		query += " WHERE b.status_pembayaran = ?"
		args = append(args, status)
	}
	query += " ORDER BY b.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	list := []models.BillingRingkas{}
	for rows.Next() {
		b, err := scanBilling(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r *billingRepoMariaDB) GetFee(ctx context.Context, idKunjungan int) (*models.FeeTersimpan, error) {
	b, err := scanBilling(r.db.QueryRowContext(ctx, billingSelect+" WHERE b.id_kunjungan = ?", idKunjungan))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBillingNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id_tindakan, nama_tindakan, harga_akhir, persen_fee, dasar_fee, fee,
		       id_fee_rule, keterangan, is_override
		FROM Fee_Dokter_Detail
		WHERE id_billing = ?
		ORDER BY id_detail`, b.IDBilling)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &models.FeeTersimpan{Billing: b, Detail: []fee.TreatmentFeeDetail{}}
	for rows.Next() {
		var d fee.TreatmentFeeDetail
		var ruleID sql.NullInt64
		if err := rows.Scan(&d.LineID, &d.LineName, &d.FinalPrice, &d.ResolvedFeePercentage,
			&d.FeeBase, &d.CalculatedFee, &ruleID, &d.RuleDescription, &d.IsManualOverride); err != nil {
			return nil, err
		}
		if ruleID.Valid {
			id := int(ruleID.Int64)
			d.RuleID = &id
		}
		out.Detail = append(out.Detail, d)
	}
	return out, rows.Err()
}
