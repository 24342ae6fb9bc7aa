package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/c14220110/klinik-backend/internal/administrasi/fee"
	"github.com/c14220110/klinik-backend/internal/administrasi/models"
)

const EventFeeDisimpan = "billing.fee_saved"

// BillingService menangani perhitungan dan penyimpanan fee dokter per kunjungan.
type BillingService struct {
	repo     BillingRepository
	rules    FeeRuleReader
	notifier Notifier
	adminFee float64
	log      zerolog.Logger
	now      func() time.Time
}

func NewBillingService(repo BillingRepository, rules FeeRuleReader, notifier Notifier, adminFee float64, log zerolog.Logger) *BillingService {
	return &BillingService{
		repo:     repo,
		rules:    rules,
		notifier: notifier,
		adminFee: adminFee,
		log:      log,
		now:      time.Now,
	}
}

// ToBillableLines mengubah item form menjadi baris engine (belum dihitung harganya).
func ToBillableLines(items []models.TindakanItem) []fee.BillableLine {
	lines := make([]fee.BillableLine, 0, len(items))
	for _, it := range items {
		qty := it.Jumlah
		if qty == 0 {
			qty = 1
		}
		typ := fee.DiscountType(it.TipeDiskon)
		if typ == "" {
			typ = fee.DiscountNominal
		}
		lines = append(lines, fee.BillableLine{
			ID:            it.IDTindakan,
			Name:          it.NamaTindakan,
			Category:      it.Kategori,
			UnitPrice:     it.Harga,
			Quantity:      qty,
			DiscountValue: it.Diskon,
			DiscountType:  typ,
		})
	}
	return lines
}

// ValidateHitungFee menjalankan validasi form sebelum engine dipanggil.
// priced harus hasil fee.PriceLines dari item yang sama.
func ValidateHitungFee(req models.HitungFeeRequest, priced []fee.BillableLine, totalTindakan float64) error {
	for i, it := range req.Tindakan {
		field := fmt.Sprintf("tindakan[%d]", i)
		if it.Harga < 0 {
			return invalid(field+".harga", ErrDiskonTidakValid, "harga tidak boleh negatif")
		}
		if it.Jumlah < 0 {
			return invalid(field+".jumlah", ErrDiskonTidakValid, "jumlah tidak boleh negatif")
		}
		if it.Diskon < 0 {
			return invalid(field+".diskon", ErrDiskonTidakValid, "diskon tidak boleh negatif")
		}
		switch priced[i].DiscountType {
		case fee.DiscountPercentage:
			if it.Diskon > 100 {
				return invalid(field+".diskon", ErrDiskonTidakValid, "diskon tidak boleh melebihi 100%")
			}
		case fee.DiscountNominal:
			if it.Diskon > priced[i].Subtotal {
				return invalid(field+".diskon", ErrDiskonTidakValid, "diskon tidak boleh melebihi subtotal")
			}
		default:
			return invalid(field+".tipe_diskon", ErrDiskonTidakValid, "tipe diskon harus percentage atau nominal")
		}
	}

	for id, v := range req.OverrideFee {
		if v < 0 || v > 100 {
			return invalid("override_fee."+id, ErrOverrideDiLuarRentang, "")
		}
	}

	switch fee.PaymentStatus(req.StatusPembayaran) {
	case fee.StatusLunas:
	case fee.StatusDP:
		if req.JumlahDP <= 0 {
			return invalid("jumlah_dp", ErrDPTidakValid, "")
		}
		if req.JumlahDP >= totalTindakan {
			return invalid("jumlah_dp", ErrDPMelebihiTotal,
				fmt.Sprintf("DP %.2f, total %.2f", req.JumlahDP, totalTindakan))
		}
	default:
		return invalid("status_pembayaran", ErrStatusPembayaranInvalid, "")
	}
	return nil
}

// HitungFee menghitung ulang seluruh fee kunjungan dari awal. Tidak menyimpan apa pun.
func (s *BillingService) HitungFee(ctx context.Context, req models.HitungFeeRequest) (*models.HasilFee, error) {
	biayaAdmin := s.adminFee
	if req.BiayaAdmin != nil {
		biayaAdmin = *req.BiayaAdmin
	}
	var biayaObat float64
	switch {
	case req.BiayaObat != nil:
		biayaObat = *req.BiayaObat
	case req.IDKunjungan > 0:
		v, err := s.repo.BiayaObatKunjungan(ctx, req.IDKunjungan)
		if err != nil {
			return nil, err
		}
		biayaObat = v
	}
	if biayaAdmin < 0 || biayaObat < 0 {
		return nil, invalid("biaya", ErrDiskonTidakValid, "biaya admin dan obat tidak boleh negatif")
	}

	priced := fee.PriceLines(ToBillableLines(req.Tindakan))
	var totalHarga float64
	for _, l := range priced {
		totalHarga += l.FinalPrice
	}
	totalTindakan := totalHarga + biayaAdmin + biayaObat

	if err := ValidateHitungFee(req, priced, totalTindakan); err != nil {
		return nil, err
	}

	catalog, err := s.rules.ActiveFeeRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("ambil aturan fee: %w", err)
	}

	overrides := fee.Overrides{}
	for id, v := range req.OverrideFee {
		overrides, _ = overrides.Set(id, v)
	}

	payment := fee.PaymentState{Status: fee.PaymentStatus(req.StatusPembayaran)}
	if payment.Status == fee.StatusDP {
		payment.DPAmount = req.JumlahDP
	}

	details, totals := fee.Aggregate(fee.Input{
		Lines:     priced,
		DoctorID:  req.IDDokter,
		Catalog:   catalog,
		Overrides: overrides,
		Payment:   payment,
	})
	totals.OutstandingAmount = fee.Outstanding(totalTindakan, payment)

	unmatched := fee.Unmatched(details)
	if len(unmatched) > 0 {
		s.log.Warn().
			Int("id_kunjungan", req.IDKunjungan).
			Int("id_dokter", req.IDDokter).
			Strs("tindakan", unmatched).
			Msg("tindakan tanpa aturan fee")
	}
	if unmatched == nil {
		unmatched = []string{}
	}

	return &models.HasilFee{
		IDKunjungan:      req.IDKunjungan,
		IDDokter:         req.IDDokter,
		StatusPembayaran: string(payment.Status),
		Tindakan:         priced,
		Detail:           details,
		Total:            totals,
		TanpaAturan:      unmatched,
		BiayaAdmin:       biayaAdmin,
		BiayaObat:        biayaObat,
		TotalTindakan:    totalTindakan,
		JumlahDP:         payment.DPAmount,
		JumlahDibayar:    fee.AmountPaid(totalTindakan, payment),
		SisaTagihan:      totals.OutstandingAmount,
	}, nil
}

// SimpanFee menghitung ulang fee lalu menyimpannya sebagai billing kunjungan.
func (s *BillingService) SimpanFee(ctx context.Context, req models.HitungFeeRequest, idKaryawan int) (int64, *models.HasilFee, error) {
	if req.IDKunjungan <= 0 {
		return 0, nil, invalid("id_kunjungan", ErrKunjunganNotFound, "id_kunjungan wajib diisi")
	}
	if len(req.Tindakan) == 0 {
		return 0, nil, invalid("tindakan", ErrTindakanKosong, "")
	}

	hasil, err := s.HitungFee(ctx, req)
	if err != nil {
		return 0, nil, err
	}

	idBilling, err := s.repo.SimpanFee(ctx, BillingRecord{Hasil: *hasil, IDKaryawan: idKaryawan, DisimpanAt: s.now()})
	if err != nil {
		return 0, nil, err
	}

	s.log.Info().
		Int64("id_billing", idBilling).
		Int("id_kunjungan", hasil.IDKunjungan).
		Float64("total_fee", hasil.Total.TotalFee).
		Str("status", hasil.StatusPembayaran).
		Msg("fee dokter disimpan")

	if s.notifier != nil {
		payload := map[string]interface{}{
			"id_billing":        idBilling,
			"id_kunjungan":      hasil.IDKunjungan,
			"status_pembayaran": hasil.StatusPembayaran,
			"total_fee":         hasil.Total.TotalFee,
			"sisa_tagihan":      hasil.SisaTagihan,
		}
		if err := s.notifier.Publish(EventFeeDisimpan, payload); err != nil {
			s.log.Warn().Err(err).Msg("gagal broadcast event billing")
		}
	}
	return idBilling, hasil, nil
}

// GetRecentBilling mengambil billing terbaru, opsional difilter status pembayaran.
func (s *BillingService) GetRecentBilling(ctx context.Context, status string) ([]models.BillingRingkas, error) {
	if status != "" && status != string(fee.StatusLunas) && status != string(fee.StatusDP) {
		return nil, invalid("status", ErrStatusPembayaranInvalid, "")
	}
	return s.repo.ListBilling(ctx, status)
}

// GetFeeDetail mengambil fee yang tersimpan untuk satu kunjungan.
func (s *BillingService) GetFeeDetail(ctx context.Context, idKunjungan int) (*models.FeeTersimpan, error) {
	return s.repo.GetFee(ctx, idKunjungan)
}
