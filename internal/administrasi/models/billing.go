package models

import (
	"time"

	"github.com/c14220110/klinik-backend/internal/administrasi/fee"
)

// TindakanItem adalah satu tindakan yang dipilih operator pada form kunjungan.
type TindakanItem struct {
	IDTindakan   string  `json:"id_tindakan" validate:"required"`
	NamaTindakan string  `json:"nama_tindakan" validate:"required"`
	Kategori     string  `json:"kategori"`
	Harga        float64 `json:"harga" validate:"gte=0"`
	Jumlah       int     `json:"jumlah" validate:"gte=0"`
	Diskon       float64 `json:"diskon" validate:"gte=0"`
	TipeDiskon   string  `json:"tipe_diskon" validate:"omitempty,oneof=percentage nominal"`
}

// HitungFeeRequest adalah payload preview dan simpan fee dokter.
// BiayaAdmin / BiayaObat nil berarti diambil dari default konfigurasi / resep kunjungan.
type HitungFeeRequest struct {
	IDKunjungan      int                `json:"id_kunjungan"`
	IDDokter         int                `json:"id_dokter" validate:"required"`
	Tindakan         []TindakanItem     `json:"tindakan" validate:"dive"`
	OverrideFee      map[string]float64 `json:"override_fee"`
	StatusPembayaran string             `json:"status_pembayaran" validate:"required,oneof=lunas dp"`
	JumlahDP         float64            `json:"jumlah_dp" validate:"gte=0"`
	BiayaAdmin       *float64           `json:"biaya_admin"`
	BiayaObat        *float64           `json:"biaya_obat"`
}

// HasilFee adalah hasil perhitungan satu kunjungan.
type HasilFee struct {
	IDKunjungan      int                      `json:"id_kunjungan"`
	IDDokter         int                      `json:"id_dokter"`
	StatusPembayaran string                   `json:"status_pembayaran"`
	Tindakan         []fee.BillableLine       `json:"tindakan"`
	Detail           []fee.TreatmentFeeDetail `json:"detail_fee"`
	Total            fee.VisitTotals          `json:"total"`
	TanpaAturan      []string                 `json:"tanpa_aturan"`
	BiayaAdmin       float64                  `json:"biaya_admin"`
	BiayaObat        float64                  `json:"biaya_obat"`
	TotalTindakan    float64                  `json:"total_tindakan"`
	JumlahDP         float64                  `json:"jumlah_dp"`
	JumlahDibayar    float64                  `json:"jumlah_dibayar"`
	SisaTagihan      float64                  `json:"sisa_tagihan"`
}

// BillingRingkas adalah header billing yang tersimpan.
type BillingRingkas struct {
	IDBilling        int        `json:"id_billing"`
	IDKunjungan      int        `json:"id_kunjungan"`
	NamaPasien       string     `json:"nama_pasien"`
	IDDokter         int        `json:"id_dokter"`
	NamaDokter       string     `json:"nama_dokter"`
	StatusPembayaran string     `json:"status_pembayaran"`
	TotalTindakan    float64    `json:"total_tindakan"`
	TotalFee         float64    `json:"total_fee"`
	JumlahDP         float64    `json:"jumlah_dp"`
	SisaTagihan      float64    `json:"sisa_tagihan"`
	WaktuDibayar     *time.Time `json:"waktu_dibayar"`
	CreatedAt        time.Time  `json:"created_at"`
}

// FeeTersimpan adalah header billing beserta detail fee per tindakan.
type FeeTersimpan struct {
	Billing BillingRingkas           `json:"billing"`
	Detail  []fee.TreatmentFeeDetail `json:"detail_fee"`
}
