package router

import (
	"github.com/labstack/echo/v4"

	"github.com/SimpnicServerTeam/packages-auth/internal/handlers"
)

func SetupAuthRoutes(app *echo.Echo, authHandler *handlers.AuthHandler) {
	app.POST("/signup", authHandler.Signup) // User registration
	app.POST("/login", authHandler.Login)   // Password login
}

// SetupPackageRoutes mounts the registry; creation goes through requireToken.
func SetupPackageRoutes(app *echo.Echo, packageHandler *handlers.PackageHandler, requireToken echo.MiddlewareFunc) {
	app.GET("/packages", packageHandler.ListPackages)
	app.POST("/packages", packageHandler.CreatePackage, requireToken)
}
