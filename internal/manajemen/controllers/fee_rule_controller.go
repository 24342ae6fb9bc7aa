package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/klinik-backend/internal/manajemen/models"
	"github.com/c14220110/klinik-backend/internal/manajemen/services"
)

type FeeRuleController struct {
	Service *services.FeeRuleService
}

func NewFeeRuleController(service *services.FeeRuleService) *FeeRuleController {
	return &FeeRuleController{Service: service}
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, echo.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func feeRuleError(c echo.Context, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return respond(c, http.StatusBadRequest, verr.Error(), echo.Map{"field": verr.Field})
	case errors.Is(err, services.ErrFeeRuleNotFound):
		return respond(c, http.StatusNotFound, err.Error(), nil)
	default:
		return respond(c, http.StatusInternalServerError, err.Error(), nil)
	}
}

func pathID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	return id, err == nil && id > 0
}

func bindFeeRule(c echo.Context) (*models.FeeRuleRequest, error) {
	var req models.FeeRuleRequest
	if err := c.Bind(&req); err != nil {
		return nil, respond(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if err := c.Validate(&req); err != nil {
		return nil, respond(c, http.StatusBadRequest, err.Error(), nil)
	}
	return &req, nil
}

// ListFeeRules GET /api/manajemen/fee-rule?include_deleted=true
func (fc *FeeRuleController) ListFeeRules(c echo.Context) error {
	includeDeleted, _ := strconv.ParseBool(c.QueryParam("include_deleted"))
	rules, err := fc.Service.ListFeeRules(c.Request().Context(), includeDeleted)
	if err != nil {
		return feeRuleError(c, err)
	}
	return respond(c, http.StatusOK, "Fee rules retrieved successfully", rules)
}

// GetFeeRule GET /api/manajemen/fee-rule/:id
func (fc *FeeRuleController) GetFeeRule(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return respond(c, http.StatusBadRequest, "Invalid id_fee_rule", nil)
	}
	rule, err := fc.Service.GetFeeRule(c.Request().Context(), id)
	if err != nil {
		return feeRuleError(c, err)
	}
	return respond(c, http.StatusOK, "Fee rule retrieved successfully", rule)
}

// CreateFeeRule POST /api/manajemen/fee-rule
func (fc *FeeRuleController) CreateFeeRule(c echo.Context) error {
	req, err := bindFeeRule(c)
	if req == nil {
		return err
	}
	rule, err := fc.Service.CreateFeeRule(c.Request().Context(), *req)
	if err != nil {
		return feeRuleError(c, err)
	}
	return respond(c, http.StatusCreated, "Fee rule created successfully", rule)
}

// UpdateFeeRule PUT /api/manajemen/fee-rule/:id
func (fc *FeeRuleController) UpdateFeeRule(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return respond(c, http.StatusBadRequest, "Invalid id_fee_rule", nil)
	}
	req, err := bindFeeRule(c)
	if req == nil {
		return err
	}
	rule, err := fc.Service.UpdateFeeRule(c.Request().Context(), id, *req)
	if err != nil {
		return feeRuleError(c, err)
	}
	return respond(c, http.StatusOK, "Fee rule updated successfully", rule)
}

// DeleteFeeRule DELETE /api/manajemen/fee-rule/:id (soft delete)
func (fc *FeeRuleController) DeleteFeeRule(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return respond(c, http.StatusBadRequest, "Invalid id_fee_rule", nil)
	}
	if err := fc.Service.SoftDeleteFeeRule(c.Request().Context(), id); err != nil {
		return feeRuleError(c, err)
	}
	return respond(c, http.StatusOK, "Fee rule deleted successfully", echo.Map{"id_fee_rule": id})
}
