package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/klinik-backend/internal/administrasi/models"
	"github.com/c14220110/klinik-backend/internal/administrasi/services"
	"github.com/c14220110/klinik-backend/pkg/utils"
)

const tokenTTL = 12 * time.Hour

type adminAuthenticator interface {
	AuthenticateAdmin(ctx context.Context, username, password string) (*models.Administrasi, error)
}

type AdministrasiController struct {
	Service   adminAuthenticator
	JWTSecret string
}

func NewAdministrasiController(service adminAuthenticator, jwtSecret string) *AdministrasiController {
	return &AdministrasiController{Service: service, JWTSecret: jwtSecret}
}

// Login menangani permintaan login administrasi (kasir).
func (ac *AdministrasiController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload",
			"data":    nil,
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Username and Password are required",
			"data":    nil,
		})
	}

	admin, err := ac.Service.AuthenticateAdmin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		status, msg := http.StatusInternalServerError, "Login failed: "+err.Error()
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			status, msg = http.StatusUnauthorized, "Invalid username or password"
		case errors.Is(err, services.ErrBukanAdministrasi):
			status, msg = http.StatusForbidden, err.Error()
		}
		return c.JSON(status, echo.Map{
			"status":  status,
			"message": msg,
			"data":    nil,
		})
	}

	token, err := utils.GenerateJWTToken(ac.JWTSecret, utils.Claims{
		IDKaryawan: admin.ID_Admin,
		Role:       "Administrasi",
		IDRole:     admin.ID_Role,
		Privileges: admin.Privileges,
		Username:   admin.Username,
	}, time.Now().Add(tokenTTL))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  http.StatusInternalServerError,
			"message": "Failed to generate token: " + err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Login successful",
		"data": echo.Map{
			"id":       admin.ID_Admin,
			"nama":     admin.Nama,
			"username": admin.Username,
			"token":    token,
		},
	})
}
