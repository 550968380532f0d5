package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/SimpnicServerTeam/packages-auth/internal/middleware"
	"github.com/SimpnicServerTeam/packages-auth/internal/models"
	"github.com/SimpnicServerTeam/packages-auth/internal/repository"
	"github.com/SimpnicServerTeam/packages-auth/internal/service"
)

type PackageHandler struct {
	PackageService service.PackageGenerator
}

func NewPackageHandler(packageService service.PackageGenerator) *PackageHandler {
	return &PackageHandler{PackageService: packageService}
}

// ListPackages serves GET /packages?limit=&page=
func (h *PackageHandler) ListPackages(c echo.Context) error {
	limit, page := service.DefaultPageLimit, service.DefaultPage
	err := echo.QueryParamsBinder(c).
		Int64("limit", &limit).
		Int64("page", &page).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Page and limit must be integers")
	}

	packages, err := h.PackageService.ListPackages(c.Request().Context(), limit, page)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "Page and limit must be greater than 0")
		}
		log.Error().Err(err).Msg("Listing packages failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list packages")
	}
	return c.JSON(http.StatusOK, packages)
}

// CreatePackage serves POST /packages. It must be mounted behind middleware.RequireToken.
func (h *PackageHandler) CreatePackage(c echo.Context) error {
	author := middleware.SubjectFromContext(c)
	if author == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}

	input := new(models.PackageInput)
	if err := c.Bind(input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	err := h.PackageService.CreatePackage(c.Request().Context(), author, *input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "Package name and version are required")
		case errors.Is(err, repository.ErrPackageExists):
			return echo.NewHTTPError(http.StatusConflict, "Package already exists")
		case errors.Is(err, service.ErrUnauthorized):
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}
		log.Error().Err(err).Str("package", input.Name).Str("author", author).Msg("Creating package failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create package")
	}

	return c.JSON(http.StatusCreated, models.MessageResponse{Message: "Package created successfully"})
}
