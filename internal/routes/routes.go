package routes

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	adminControllers "github.com/c14220110/klinik-backend/internal/administrasi/controllers"
	adminServices "github.com/c14220110/klinik-backend/internal/administrasi/services"
	"github.com/c14220110/klinik-backend/internal/common/middlewares"
	"github.com/c14220110/klinik-backend/internal/common/validation"
	manajemenControllers "github.com/c14220110/klinik-backend/internal/manajemen/controllers"
	manajemenServices "github.com/c14220110/klinik-backend/internal/manajemen/services"
	"github.com/c14220110/klinik-backend/ws"
)

// Deps berisi dependensi yang dibutuhkan route table.
type Deps struct {
	DB        *sql.DB
	JWTSecret string
	AdminFee  float64
	RuleCache manajemenServices.RuleCache // nil bila Redis tidak dipakai
	Hub       *ws.Hub
	Log       zerolog.Logger
}

// Init menginisialisasi semua routes menggunakan Echo framework
func Init(e *echo.Echo, d Deps) {
	e.Validator = validation.New()

	// Inisialisasi service
	adminService := adminServices.NewAdministrasiService(adminServices.NewAdministrasiRepository(d.DB))
	feeRuleService := manajemenServices.NewFeeRuleService(
		manajemenServices.NewFeeRuleRepository(d.DB), d.RuleCache, d.Log.With().Str("service", "fee_rule").Logger())
	var notifier adminServices.Notifier
	if d.Hub != nil {
		notifier = d.Hub
	}
	billingService := adminServices.NewBillingService(
		adminServices.NewBillingRepository(d.DB), feeRuleService, notifier, d.AdminFee,
		d.Log.With().Str("service", "billing").Logger())

	// Inisialisasi controller
	adminController := adminControllers.NewAdministrasiController(adminService, d.JWTSecret)
	billingController := adminControllers.NewBillingController(billingService)
	feeRuleController := manajemenControllers.NewFeeRuleController(feeRuleService)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":  http.StatusOK,
			"message": "ok",
			"data":    nil,
		})
	})
	if d.Hub != nil {
		e.GET("/ws/billing", ws.ServeWS(d.Hub))
	}

	jwt := middlewares.JWTMiddleware(d.JWTSecret)

	// Grup API utama
	api := e.Group("/api")

	// **Grup Administrasi**
	administrasi := api.Group("/administrasi")
	administrasi.POST("/login", adminController.Login) // Tidak pakai JWT

	billing := administrasi.Group("/billing", jwt, middlewares.RequirePrivilege(middlewares.PrivilegeBilling))
	billing.POST("/fee/hitung", billingController.HitungFee)
	billing.POST("/fee", billingController.SimpanFee)
	billing.GET("/fee", billingController.FeeDetail)
	billing.GET("/recent", billingController.ListBilling)

	// **Grup Manajemen**
	manajemen := api.Group("/manajemen", jwt)
	kelola := middlewares.RequirePrivilege(middlewares.PrivilegeKelolaFeeRule)
	manajemen.GET("/fee-rule", feeRuleController.ListFeeRules)
	manajemen.GET("/fee-rule/:id", feeRuleController.GetFeeRule)
	manajemen.POST("/fee-rule", feeRuleController.CreateFeeRule, kelola)
	manajemen.PUT("/fee-rule/:id", feeRuleController.UpdateFeeRule, kelola)
	manajemen.DELETE("/fee-rule/:id", feeRuleController.DeleteFeeRule, kelola)
}
