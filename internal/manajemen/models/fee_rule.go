package models

import (
	"time"

	"github.com/c14220110/klinik-backend/internal/administrasi/fee"
)

// FeeRule adalah satu baris pengaturan fee dokter pada tabel Fee_Rule.
type FeeRule struct {
	IDFeeRule      int        `json:"id_fee_rule"`
	DoctorIDs      []int      `json:"doctor_ids"`
	TreatmentTypes []string   `json:"treatment_types"`
	Category       string     `json:"category"`
	FeePercentage  float64    `json:"fee_percentage"`
	IsDefault      bool       `json:"is_default"`
	Description    string     `json:"description"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// ToEngine mengubah baris tabel menjadi aturan yang dipakai engine fee.
func (r FeeRule) ToEngine() fee.FeeRule {
	return fee.FeeRule{
		ID:             r.IDFeeRule,
		DoctorIDs:      r.DoctorIDs,
		TreatmentTypes: r.TreatmentTypes,
		Category:       r.Category,
		FeePercentage:  r.FeePercentage,
		IsDefault:      r.IsDefault,
		Description:    r.Description,
	}
}

type FeeRuleRequest struct {
	DoctorIDs      []int    `json:"doctor_ids" validate:"dive,gt=0"`
	TreatmentTypes []string `json:"treatment_types" validate:"dive,required"`
	Category       string   `json:"category"`
	FeePercentage  float64  `json:"fee_percentage" validate:"gte=0,lte=100"`
	IsDefault      bool     `json:"is_default"`
	Description    string   `json:"description" validate:"max=255"`
}
