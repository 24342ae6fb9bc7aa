package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/klinik-backend/internal/administrasi/fee"
	"github.com/c14220110/klinik-backend/internal/administrasi/models"
	"github.com/c14220110/klinik-backend/internal/administrasi/services"
	"github.com/c14220110/klinik-backend/internal/common/middlewares"
	"github.com/c14220110/klinik-backend/internal/common/validation"
	"github.com/c14220110/klinik-backend/pkg/utils"
)

type memRepo struct {
	saved map[int]models.HasilFee
}

func (m *memRepo) BiayaObatKunjungan(_ context.Context, id int) (float64, error) {
	if id == 404 {
		return 0, services.ErrKunjunganNotFound
	}
	return 0, nil
}

func (m *memRepo) SimpanFee(_ context.Context, rec services.BillingRecord) (int64, error) {
	m.saved[rec.Hasil.IDKunjungan] = rec.Hasil
	return int64(len(m.saved)), nil
}

func (m *memRepo) ListBilling(context.Context, string) ([]models.BillingRingkas, error) {
	out := []models.BillingRingkas{}
	for id, h := range m.saved {
		out = append(out, models.BillingRingkas{IDKunjungan: id, StatusPembayaran: h.StatusPembayaran})
	}
	return out, nil
}

func (m *memRepo) GetFee(_ context.Context, id int) (*models.FeeTersimpan, error) {
	h, ok := m.saved[id]
	if !ok {
		return nil, services.ErrBillingNotFound
	}
	return &models.FeeTersimpan{Billing: models.BillingRingkas{IDKunjungan: id}, Detail: h.Detail}, nil
}

type rules []fee.FeeRule

func (r rules) ActiveFeeRules(context.Context) ([]fee.FeeRule, error) { return r, nil }

func newTestBillingController() (*BillingController, *echo.Echo) {
	svc := services.NewBillingService(&memRepo{saved: map[int]models.HasilFee{}},
		rules{{ID: 1, DoctorIDs: []int{7}, TreatmentTypes: []string{"Scaling"}, FeePercentage: 40}},
		nil, 0, zerolog.Nop())
	e := echo.New()
	e.Validator = validation.New()
	return NewBillingController(svc), e
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

const hitungBody = `{
	"id_kunjungan": 11,
	"id_dokter": 7,
	"tindakan": [{"id_tindakan": "t1", "nama_tindakan": "Scaling", "harga": 200000, "jumlah": 1}],
	"status_pembayaran": "dp",
	"jumlah_dp": 150000
}`

func TestBillingController_HitungFee(t *testing.T) {
	bc, e := newTestBillingController()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(hitungBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, bc.HitungFee(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var hasil models.HasilFee
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &hasil))
	require.Len(t, hasil.Detail, 1)
	assert.InDelta(t, 20000, hasil.Detail[0].CalculatedFee, 1e-6)
	assert.InDelta(t, 50000, hasil.SisaTagihan, 1e-6)
}

func TestBillingController_HitungFee_BadRequest(t *testing.T) {
	bc, e := newTestBillingController()

	bodies := map[string]string{
		"json rusak":        `{"id_dokter":`,
		"status kosong":     `{"id_dokter": 7, "tindakan": []}`,
		"dp melebihi total": strings.Replace(hitungBody, "150000", "250000", 1),
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			require.NoError(t, bc.HitungFee(e.NewContext(req, rec)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestBillingController_SimpanFee(t *testing.T) {
	bc, e := newTestBillingController()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(hitungBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, bc.SimpanFee(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(hitungBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middlewares.ContextKeyClaims, &utils.Claims{IDKaryawan: 3})
	require.NoError(t, bc.SimpanFee(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/?id_kunjungan=11", nil)
	rec = httptest.NewRecorder()
	require.NoError(t, bc.FeeDetail(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBillingController_FeeDetail(t *testing.T) {
	bc, e := newTestBillingController()

	cases := map[string]int{
		"/":                 http.StatusBadRequest,
		"/?id_kunjungan=ab": http.StatusBadRequest,
		"/?id_kunjungan=99": http.StatusNotFound,
	}
	for target, want := range cases {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		require.NoError(t, bc.FeeDetail(e.NewContext(req, rec)))
		assert.Equal(t, want, rec.Code, target)
	}
}

func TestBillingController_ListBilling(t *testing.T) {
	bc, e := newTestBillingController()

	req := httptest.NewRequest(http.MethodGet, "/?status=batal", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, bc.ListBilling(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/?status=lunas", nil)
	rec = httptest.NewRecorder()
	require.NoError(t, bc.ListBilling(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
