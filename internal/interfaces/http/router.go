package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/precios-api/internal/application/auth"
	"github.com/jhoicas/precios-api/internal/application/pricing"
	"github.com/jhoicas/precios-api/internal/application/usecase"
	"github.com/jhoicas/precios-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC *usecase.CompanyUseCase
	PricingUC *pricing.PriceManagementUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Motor de ajuste de precios (protegido)
	prices := protected.Group("/prices")
	pricingHandler := NewPricingHandler(deps.PricingUC)
	prices.Get("/", pricingHandler.List)
	prices.Get("/summary", pricingHandler.Summary)
	prices.Get("/history", pricingHandler.History)
	prices.Get("/report.pdf", pricingHandler.Report)
	prices.Get("/export.xml", pricingHandler.Export)
	prices.Post("/refresh", pricingHandler.Refresh)
	prices.Post("/selection", pricingHandler.Select)
	prices.Post("/bulk", pricingHandler.Bulk)
	prices.Post("/reset", pricingHandler.Reset)
	// El commit queda restringido: un analista edita, solo admin confirma.
	prices.Post("/commit", RequireRole(entity.RoleAdmin), pricingHandler.Commit)
	prices.Put("/:id", pricingHandler.SetPrice)
}
