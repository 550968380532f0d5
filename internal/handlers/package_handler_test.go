package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/goccy/go-json"

	"github.com/SimpnicServerTeam/packages-auth/internal/mocks"
	"github.com/SimpnicServerTeam/packages-auth/internal/models"
	"github.com/SimpnicServerTeam/packages-auth/internal/repository"
	"github.com/SimpnicServerTeam/packages-auth/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPackageHandler_ListPackages(t *testing.T) {
	packages := []models.Package{
		{Name: "left-pad", Version: "1.0.0", Description: "pads", Author: "alice"},
		{Name: "right-pad", Version: "0.1.0"},
	}

	t.Run("Defaults", func(t *testing.T) {
		mockPackageService := new(mocks.MockPackageService)
		app := setupTestApp(new(mocks.MockAuthService), mockPackageService)

		mockPackageService.On("ListPackages", service.DefaultPageLimit, service.DefaultPage).Return(packages, nil).Once()

		rec := performRequest(app, http.MethodGet, "/packages", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp []models.Package
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, packages, resp)
		mockPackageService.AssertExpectations(t)
	})

	t.Run("ExplicitPage", func(t *testing.T) {
		mockPackageService := new(mocks.MockPackageService)
		app := setupTestApp(new(mocks.MockAuthService), mockPackageService)

		mockPackageService.On("ListPackages", int64(5), int64(3)).Return([]models.Package{}, nil).Once()

		rec := performRequest(app, http.MethodGet, "/packages?limit=5&page=3", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
		mockPackageService.AssertExpectations(t)
	})

	t.Run("ZeroRejected", func(t *testing.T) {
		mockPackageService := new(mocks.MockPackageService)
		app := setupTestApp(new(mocks.MockAuthService), mockPackageService)

		mockPackageService.On("ListPackages", int64(0), service.DefaultPage).
			Return(nil, fmt.Errorf("%w: page and limit must be greater than 0", service.ErrValidation)).Once()

		rec := performRequest(app, http.MethodGet, "/packages?limit=0", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Page and limit must be greater than 0", decodeError(t, rec))
	})

	t.Run("NotANumber", func(t *testing.T) {
		mockPackageService := new(mocks.MockPackageService)
		app := setupTestApp(new(mocks.MockAuthService), mockPackageService)

		rec := performRequest(app, http.MethodGet, "/packages?page=two", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Page and limit must be integers", decodeError(t, rec))
		mockPackageService.AssertNotCalled(t, "ListPackages", mock.Anything, mock.Anything)
	})

	t.Run("StorageFailure", func(t *testing.T) {
		mockPackageService := new(mocks.MockPackageService)
		app := setupTestApp(new(mocks.MockAuthService), mockPackageService)

		mockPackageService.On("ListPackages", service.DefaultPageLimit, service.DefaultPage).
			Return(nil, fmt.Errorf("%w: disk I/O error", service.ErrStorage)).Once()

		rec := performRequest(app, http.MethodGet, "/packages", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to list packages", decodeError(t, rec))
	})
}

func TestPackageHandler_CreatePackage(t *testing.T) {
	input := models.PackageInput{Name: "left-pad", Version: "1.0.0", Description: "pads"}

	t.Run("BearerToken", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthService)
		mockPackageService := new(mocks.MockPackageService)
		app := setupTestApp(mockAuthService, mockPackageService)

		mockAuthService.On("Authorize", "good.token").Return("alice", nil).Once()
		mockPackageService.On("CreatePackage", "alice", input).Return(nil).Once()

		req := newRequest(http.MethodPost, "/packages", input)
		req.Header.Set("Authorization", "Bearer good.token")
		rec := serve(app, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"message":"Package created successfully"}`, rec.Body.String())
		mockAuthService.AssertExpectations(t)
		mockPackageService.AssertExpectations(t)
	})

	t.Run("Cookie", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthService)
		mockPackageService := new(mocks.MockPackageService)
		app := setupTestApp(mockAuthService, mockPackageService)

		mockAuthService.On("Authorize", "cookie.token").Return("bob", nil).Once()
		mockPackageService.On("CreatePackage", "bob", input).Return(nil).Once()

		req := newRequest(http.MethodPost, "/packages", input)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: "cookie.token"})
		rec := serve(app, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		mockPackageService.AssertExpectations(t)
	})

	t.Run("MissingToken", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthService)
		mockPackageService := new(mocks.MockPackageService)
		app := setupTestApp(mockAuthService, mockPackageService)

		rec := performRequest(app, http.MethodPost, "/packages", input)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid or expired token"}`, rec.Body.String())
		mockAuthService.AssertNotCalled(t, "Authorize", mock.Anything)
		mockPackageService.AssertNotCalled(t, "CreatePackage", mock.Anything, mock.Anything)
	})

	t.Run("RejectedToken", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthService)
		mockPackageService := new(mocks.MockPackageService)
		app := setupTestApp(mockAuthService, mockPackageService)

		mockAuthService.On("Authorize", "expired.token").Return("", service.ErrUnauthorized).Once()

		req := newRequest(http.MethodPost, "/packages", input)
		req.Header.Set("Authorization", "Bearer expired.token")
		rec := serve(app, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid or expired token", decodeError(t, rec))
		mockPackageService.AssertNotCalled(t, "CreatePackage", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthService)
		mockPackageService := new(mocks.MockPackageService)
		app := setupTestApp(mockAuthService, mockPackageService)

		mockAuthService.On("Authorize", "good.token").Return("alice", nil).Once()
		mockPackageService.On("CreatePackage", "alice", input).Return(repository.ErrPackageExists).Once()

		req := newRequest(http.MethodPost, "/packages", input)
		req.Header.Set("Authorization", "Bearer good.token")
		rec := serve(app, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Package already exists", decodeError(t, rec))
	})

	t.Run("ValidationError", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthService)
		mockPackageService := new(mocks.MockPackageService)
		app := setupTestApp(mockAuthService, mockPackageService)

		empty := models.PackageInput{}
		mockAuthService.On("Authorize", "good.token").Return("alice", nil).Once()
		mockPackageService.On("CreatePackage", "alice", empty).
			Return(fmt.Errorf("%w: package name and version cannot be empty", service.ErrValidation)).Once()

		req := newRequest(http.MethodPost, "/packages", empty)
		req.Header.Set("Authorization", "Bearer good.token")
		rec := serve(app, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Package name and version are required", decodeError(t, rec))
	})

	t.Run("StorageFailure", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthService)
		mockPackageService := new(mocks.MockPackageService)
		app := setupTestApp(mockAuthService, mockPackageService)

		mockAuthService.On("Authorize", "good.token").Return("alice", nil).Once()
		mockPackageService.On("CreatePackage", "alice", input).
			Return(fmt.Errorf("%w: database is locked", service.ErrStorage)).Once()

		req := newRequest(http.MethodPost, "/packages", input)
		req.Header.Set("Authorization", "Bearer good.token")
		rec := serve(app, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to create package", decodeError(t, rec))
	})
}
