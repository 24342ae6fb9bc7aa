// Package fee menghitung harga akhir tindakan dan jasa dokter (fee) untuk satu kunjungan.
//
// Semua fungsi di package ini murni: tidak ada I/O, tidak ada state bersama.
// Pemanggil wajib menghitung ulang seluruh tabel setiap kali input berubah.
package fee

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountNominal    DiscountType = "nominal"
)

type PaymentStatus string

const (
	StatusLunas PaymentStatus = "lunas"
	StatusDP    PaymentStatus = "dp"
)

// BillableLine adalah satu tindakan / layanan / lab pada kunjungan.
type BillableLine struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Category      string       `json:"category,omitempty"`
	UnitPrice     float64      `json:"unit_price"`
	Quantity      int          `json:"quantity"`
	DiscountValue float64      `json:"discount_value"`
	DiscountType  DiscountType `json:"discount_type"`

	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalPrice     float64 `json:"final_price"`
}

// FeeRule adalah aturan persentase jasa dokter. Field opsional yang kosong
// berarti berlaku untuk semua.
type FeeRule struct {
	ID             int      `json:"id"`
	DoctorIDs      []int    `json:"doctor_ids,omitempty"`
	TreatmentTypes []string `json:"treatment_types,omitempty"`
	Category       string   `json:"category,omitempty"`
	FeePercentage  float64  `json:"fee_percentage"`
	IsDefault      bool     `json:"is_default"`
	Description    string   `json:"description"`
}

type PaymentState struct {
	Status   PaymentStatus `json:"status"`
	DPAmount float64       `json:"dp_amount"`
}

type TreatmentFeeDetail struct {
	LineID                string  `json:"line_id"`
	LineName              string  `json:"line_name"`
	FinalPrice            float64 `json:"final_price"`
	ResolvedFeePercentage float64 `json:"resolved_fee_percentage"`
	FeeBase               float64 `json:"fee_base"`
	CalculatedFee         float64 `json:"calculated_fee"`
	RuleID                *int    `json:"rule_id"`
	RuleDescription       string  `json:"rule_description"`
	IsManualOverride      bool    `json:"is_manual_override"`
}

// VisitTotals merangkum seluruh baris. OutstandingAmount tidak diisi oleh
// Aggregate; nilainya bergantung pada total tagihan di luar tindakan
// (biaya admin, obat) sehingga diisi pemanggil lewat Outstanding.
type VisitTotals struct {
	TotalFinalPrice      float64 `json:"total_final_price"`
	TotalFee             float64 `json:"total_fee"`
	AverageFeePercentage float64 `json:"average_fee_percentage"`
	OutstandingAmount    float64 `json:"outstanding_amount"`
}
