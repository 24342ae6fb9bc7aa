package services

import (
	"errors"
	"fmt"
)

var (
	ErrFeeRuleNotFound      = errors.New("aturan fee tidak ditemukan")
	ErrPersenFeeDiLuarBatas = errors.New("persentase fee harus di antara 0 dan 100")
	ErrDokterTidakValid     = errors.New("id dokter tidak valid")
	ErrTindakanTidakValid   = errors.New("nama tindakan tidak boleh kosong")
)

// ValidationError menandai input aturan fee yang ditolak beserta field-nya.
type ValidationError struct {
	Err   error
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
