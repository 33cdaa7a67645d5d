package router

import (
	"time"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/handlers"
	"github.com/Pincessis17/MerchFlow/internal/middleware"
	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/internal/services"
	"github.com/Pincessis17/MerchFlow/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupRouter wires middleware, validators and all routes
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	registerValidators()
	registerRoutes(router)
	return router
}

// registerValidators adds custom binding validators
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("billing_cycle", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return value == models.BillingCycleMonthly || value == models.BillingCycleYearly
		})
		_ = v.RegisterValidation("discount_type", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return value == "" || value == models.DiscountTypePercent || value == models.DiscountTypeFixed
		})
	}
}

func registerRoutes(router *gin.Engine) {

	auth := middleware.NewAuthMiddleware()

	api := router.Group("/api/v1")
	{
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// authentication, login is rate limited per IP
		authHandler := handlers.NewAuthHandler(services.NewAuthService(), services.NewUserService())
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", middleware.LoginRateLimit(), authHandler.Login)
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/refresh", authHandler.RefreshToken)

			authGroup.POST("/logout", auth.RequireLogin(), authHandler.Logout)
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)
			authGroup.POST("/change-password", auth.RequireLogin(), authHandler.ChangePassword)
			authGroup.POST("/elevate", auth.RequireLogin(), auth.RequirePlatformOwner(), authHandler.Elevate)
		}

		// dashboard
		dashboardHandler := handlers.NewDashboardHandler(services.NewDashboardService())
		api.GET("/dashboard", auth.RequireLogin(), dashboardHandler.Metrics)

		// products and CSV import
		productHandler := handlers.NewProductHandler(services.NewProductService(), services.NewImportService())
		products := api.Group("/products", auth.RequireLogin())
		{
			products.GET("", productHandler.List)
			products.POST("", productHandler.Create)
			products.GET("/low-stock", productHandler.LowStock)
			products.GET("/categories", productHandler.Categories)
			products.POST("/import", productHandler.Import)
			products.GET("/:id", productHandler.GetByID)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
		}

		// sales and payments
		saleHandler := handlers.NewSaleHandler(services.NewSaleService())
		sales := api.Group("/sales", auth.RequireLogin())
		{
			sales.GET("", saleHandler.List)
			sales.POST("", saleHandler.Create)
			sales.GET("/:id", saleHandler.GetByID)
			sales.POST("/:id/payments", saleHandler.RecordPayment)
			sales.DELETE("/:id", saleHandler.Delete)
		}

		// financial features need a grant (admins always pass)
		financial := auth.RequireFeature(models.FeatureFinancial)

		supplierHandler := handlers.NewSupplierHandler(services.NewSupplierService())
		suppliers := api.Group("/suppliers", auth.RequireLogin(), financial)
		{
			suppliers.GET("", supplierHandler.List)
			suppliers.POST("", supplierHandler.Create)
			suppliers.GET("/:id", supplierHandler.GetByID)
			suppliers.PUT("/:id", supplierHandler.Update)
			suppliers.DELETE("/:id", supplierHandler.Delete)
		}

		purchaseHandler := handlers.NewPurchaseHandler(services.NewPurchaseService())
		purchases := api.Group("/purchases", auth.RequireLogin(), financial)
		{
			purchases.GET("", purchaseHandler.List)
			purchases.POST("", purchaseHandler.Create)
			purchases.GET("/:id", purchaseHandler.GetByID)
		}

		expenseHandler := handlers.NewExpenseHandler(services.NewExpenseService())
		expenses := api.Group("/expenses", auth.RequireLogin(), financial)
		{
			expenses.GET("", expenseHandler.List)
			expenses.POST("", expenseHandler.Create)
			expenses.GET("/:id", expenseHandler.GetByID)
			expenses.PUT("/:id", expenseHandler.Update)
			expenses.DELETE("/:id", expenseHandler.Delete)
		}

		// customers
		customerHandler := handlers.NewCustomerHandler(services.NewCustomerService())
		customers := api.Group("/customers", auth.RequireLogin())
		{
			customers.GET("", customerHandler.List)
			customers.POST("", customerHandler.Create)
			customers.GET("/:id", customerHandler.GetByID)
			customers.PUT("/:id", customerHandler.Update)
			customers.DELETE("/:id", customerHandler.Delete)
		}

		// invoicing
		invoiceHandler := handlers.NewInvoiceHandler(services.NewInvoiceService(), services.NewReportService())
		invoices := api.Group("/invoices", auth.RequireLogin())
		{
			invoices.GET("", invoiceHandler.List)
			invoices.POST("", invoiceHandler.Create)
			invoices.POST("/from-sale", invoiceHandler.CreateFromSale)
			invoices.GET("/:id", invoiceHandler.GetByID)
			invoices.PUT("/:id", invoiceHandler.Update)
			invoices.POST("/:id/issue", invoiceHandler.Issue)
			invoices.POST("/:id/payments", invoiceHandler.RecordPayment)
			invoices.POST("/:id/void", invoiceHandler.Void)
			invoices.GET("/:id/pdf", invoiceHandler.PDF)
		}

		// reports, financial statement needs the feature grant
		reportHandler := handlers.NewReportHandler(services.NewReportService())
		reports := api.Group("/reports", auth.RequireLogin())
		{
			reports.GET("/sales", reportHandler.SalesReport)
			reports.GET("/sales/pdf", reportHandler.SalesReportPDF)
			reports.GET("/sales/csv", reportHandler.SalesCSV)
			reports.GET("/financial-statement", financial, reportHandler.FinancialStatement)
			reports.GET("/financial-statement/pdf", financial, reportHandler.FinancialStatementPDF)
		}

		// workspace settings, users and feature grants (admin only)
		companyHandler := handlers.NewCompanyHandler(services.NewCompanyService(), services.NewUserService(), services.NewFeatureAccessService())
		company := api.Group("/company", auth.RequireLogin())
		{
			company.GET("/settings", companyHandler.GetSettings)
			company.PUT("/settings", auth.RequireCompanyAdmin(), companyHandler.UpdateSettings)

			company.GET("/users", auth.RequireCompanyAdmin(), companyHandler.ListUsers)
			company.POST("/users", auth.RequireCompanyAdmin(), companyHandler.CreateUser)
			company.PUT("/users/:id/role", auth.RequireCompanyAdmin(), companyHandler.UpdateUserRole)
			company.DELETE("/users/:id", auth.RequireCompanyAdmin(), companyHandler.DeleteUser)

			company.GET("/features", auth.RequireCompanyAdmin(), companyHandler.ListFeatureGrants)
			company.POST("/features", auth.RequireCompanyAdmin(), companyHandler.GrantFeature)
			company.POST("/features/revoke", auth.RequireCompanyAdmin(), companyHandler.RevokeFeature)
		}

		// workspace notifications
		notificationHandler := handlers.NewNotificationHandler(services.NewNotificationService())
		notifications := api.Group("/notifications", auth.RequireLogin())
		{
			notifications.GET("", notificationHandler.ListTenant)
			notifications.POST("/:id/read", notificationHandler.MarkTenantRead)
		}

		// platform owner console, the whole surface sits behind an
		// elevated session on top of the owner check
		platformHandler := handlers.NewPlatformHandler(services.NewPlatformService(), services.NewAuditService())
		platform := api.Group("/platform", auth.RequireLogin(), auth.RequirePlatformOwner(), auth.RequireElevated())
		{
			platform.GET("/overview", platformHandler.Overview)
			platform.GET("/tenants", platformHandler.ListTenants)
			platform.GET("/tenants/:id", platformHandler.GetTenant)
			platform.POST("/tenants/:id/suspend", platformHandler.Suspend)
			platform.POST("/tenants/:id/unsuspend", platformHandler.Unsuspend)
			platform.POST("/tenants/:id/cancel", platformHandler.Cancel)
			platform.POST("/tenants/:id/activate", platformHandler.Activate)
			platform.POST("/tenants/:id/payment-failed", platformHandler.MarkPaymentFailed)
			platform.POST("/tenants/:id/subscription", platformHandler.ChangeSubscription)

			platform.GET("/plans", platformHandler.ListPlans)
			platform.POST("/plans", platformHandler.CreatePlan)
			platform.PUT("/plans/:id", platformHandler.UpdatePlan)
			platform.POST("/plans/:id/toggle", platformHandler.TogglePlan)

			platform.GET("/subscribers/csv", platformHandler.SubscribersCSV)
			platform.POST("/billing/remind", platformHandler.SendRenewalReminders)
			platform.GET("/audit-logs", platformHandler.AuditLogs)

			platform.GET("/notifications", notificationHandler.ListPlatform)
			platform.GET("/notifications/unread-count", notificationHandler.UnreadPlatformCount)
			platform.POST("/notifications/:id/read", notificationHandler.MarkPlatformRead)
			platform.POST("/notifications/read-all", notificationHandler.MarkAllPlatformRead)
			platform.GET("/notifications/stream", notificationHandler.StreamPlatform)
		}
	}
}

var startTime = time.Now()

func healthCheck(c *gin.Context) {
	dbStatus := "ok"
	if sqlDB, err := database.GetDB().DB(); err != nil {
		dbStatus = "error"
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		dbStatus = "error"
	}

	data := map[string]interface{}{
		"status":    dbStatus,
		"database":  dbStatus,
		"uptime":    time.Since(startTime).Round(time.Second).String(),
		"timestamp": time.Now(),
		"service":   "MerchFlow",
		"version":   "1.0.0",
	}
	response.Success(c, data)
}

func ping(c *gin.Context) {
	response.SuccessWithMessage(c, "pong", nil)
}
