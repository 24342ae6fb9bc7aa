package services

import (
	"errors"
	"fmt"
)

var (
	ErrKunjunganNotFound       = errors.New("kunjungan tidak ditemukan")
	ErrBillingNotFound         = errors.New("billing tidak ditemukan")
	ErrTindakanKosong          = errors.New("minimal satu tindakan harus diisi")
	ErrStatusPembayaranInvalid = errors.New("status pembayaran harus lunas atau dp")
	ErrDPTidakValid            = errors.New("jumlah DP harus lebih dari 0")
	ErrDPMelebihiTotal         = errors.New("jumlah DP harus lebih kecil dari total tagihan")
	ErrDiskonTidakValid        = errors.New("diskon tidak valid")
	ErrOverrideDiLuarRentang   = errors.New("override fee harus di antara 0 dan 100")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrBukanAdministrasi       = errors.New("user does not have administrasi privileges")
)

// ValidationError membungkus sentinel error dengan nama field dan detail
// yang bisa langsung ditampilkan di form.
type ValidationError struct {
	Err     error
	Field   string
	Details string
}

func (e *ValidationError) Error() string {
	msg := e.Err.Error()
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error, details string) *ValidationError {
	return &ValidationError{Err: err, Field: field, Details: details}
}
