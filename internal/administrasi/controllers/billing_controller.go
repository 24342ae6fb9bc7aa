package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/klinik-backend/internal/administrasi/models"
	"github.com/c14220110/klinik-backend/internal/administrasi/services"
	"github.com/c14220110/klinik-backend/internal/common/middlewares"
)

// BillingController menangani permintaan terkait billing dan fee dokter.
type BillingController struct {
	Service *services.BillingService
}

func NewBillingController(service *services.BillingService) *BillingController {
	return &BillingController{Service: service}
}

// bindHitungFee mengembalikan request nil bila respons error sudah ditulis.
func (bc *BillingController) bindHitungFee(c echo.Context) (*models.HitungFeeRequest, error) {
	var req models.HitungFeeRequest
	if err := c.Bind(&req); err != nil {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}
	if err := c.Validate(&req); err != nil {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": err.Error(),
			"data":    nil,
		})
	}
	return &req, nil
}

// HitungFee POST /api/administrasi/billing/fee/hitung
// Preview fee dokter tanpa menyimpan; dipanggil ulang setiap kali form berubah.
func (bc *BillingController) HitungFee(c echo.Context) error {
	req, err := bc.bindHitungFee(c)
	if req == nil {
		return err
	}

	hasil, err := bc.Service.HitungFee(c.Request().Context(), *req)
	if err != nil {
		return serviceError(c, err, "Failed to calculate fee")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Fee calculated successfully",
		"data":    hasil,
	})
}

// SimpanFee POST /api/administrasi/billing/fee
func (bc *BillingController) SimpanFee(c echo.Context) error {
	claims, ok := middlewares.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"status":  http.StatusUnauthorized,
			"message": "Invalid or missing token claims",
			"data":    nil,
		})
	}

	req, err := bc.bindHitungFee(c)
	if req == nil {
		return err
	}

	idBilling, hasil, err := bc.Service.SimpanFee(c.Request().Context(), *req, claims.IDKaryawan)
	if err != nil {
		return serviceError(c, err, "Failed to save fee")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"status":  http.StatusCreated,
		"message": "Fee saved successfully",
		"data": echo.Map{
			"id_billing": idBilling,
			"hasil":      hasil,
		},
	})
}

// ListBilling GET /api/administrasi/billing/recent?status=lunas|dp
func (bc *BillingController) ListBilling(c echo.Context) error {
	data, err := bc.Service.GetRecentBilling(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return serviceError(c, err, "Failed to retrieve billing data")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Billing data retrieved successfully",
		"data":    data,
	})
}

// FeeDetail GET /api/administrasi/billing/fee?id_kunjungan=
func (bc *BillingController) FeeDetail(c echo.Context) error {
	idParam := c.QueryParam("id_kunjungan")
	if idParam == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "id_kunjungan is required",
			"data":    nil,
		})
	}
	id, err := strconv.Atoi(idParam)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid id_kunjungan",
			"data":    nil,
		})
	}

	detail, err := bc.Service.GetFeeDetail(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to retrieve fee detail")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Fee detail retrieved successfully",
		"data":    detail,
	})
}

// serviceError memetakan error service ke envelope {status, message, data}.
func serviceError(c echo.Context, err error, msg string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": verr.Error(),
			"data":    echo.Map{"field": verr.Field},
		})
	case errors.Is(err, services.ErrKunjunganNotFound), errors.Is(err, services.ErrBillingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"status":  http.StatusNotFound,
			"message": err.Error(),
			"data":    nil,
		})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  http.StatusInternalServerError,
			"message": msg + ": " + err.Error(),
			"data":    nil,
		})
	}
}
