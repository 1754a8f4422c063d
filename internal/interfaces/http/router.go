package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecommerce-api/internal/application/auth"
	"github.com/jhoicas/ecommerce-api/internal/application/usecase"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	ProductUC    *usecase.ProductUseCase
	CookieSecure bool
}

// Router registra las rutas de la API bajo /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieSecure)
	userHandler := NewUserHandler(deps.UserUC)
	productHandler := NewProductHandler(deps.ProductUC)

	session := AuthMiddleware(deps.AuthUC)
	admin := RequireRole(entity.RoleAdmin)

	// Auth (público)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Get("/logout", authHandler.Logout)
	api.Post("/password/forgot", authHandler.ForgotPassword)
	api.Put("/password/reset/:token", authHandler.ResetPassword)

	// Perfil (sesión)
	api.Get("/me", session, userHandler.Me)
	api.Put("/me/update", session, userHandler.UpdateProfile)
	api.Put("/password/update", session, authHandler.UpdatePassword)

	// Administración de usuarios (sesión + admin)
	api.Get("/admin/users", session, admin, userHandler.List)
	api.Get("/admin/user/:id", session, admin, userHandler.GetByID)
	api.Put("/admin/user/:id", session, admin, userHandler.Update)
	api.Delete("/admin/user/:id", session, admin, userHandler.Delete)

	// Catálogo: lectura pública, escritura admin
	api.Get("/products", productHandler.List)
	api.Post("/product/new", session, admin, productHandler.Create)
	api.Get("/product/:id", productHandler.GetByID)
	api.Put("/product/:id", session, admin, productHandler.Update)
	api.Delete("/product/:id", session, admin, productHandler.Delete)
}
