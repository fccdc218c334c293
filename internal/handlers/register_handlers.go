package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/dokanly/posledger/cmd/docs"
	"github.com/dokanly/posledger/internal/apperrors"
	"github.com/dokanly/posledger/internal/core/domain"
	portssvc "github.com/dokanly/posledger/internal/core/ports/services"
	"github.com/dokanly/posledger/internal/middleware"
	"github.com/dokanly/posledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerValidations()

	registerHomeRoutes(r)

	// API v1 routes behind auth; the middleware resolves the tenant scope
	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerAccountRoutes(v1, services.Account, services.Payment)
	registerPaymentRoutes(v1, services.Payment)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// registerValidations teaches the binding validator about decimal.Decimal so
// gt/gte tags work on monetary fields.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// requireIdentity pulls the authenticated user and tenant scope from the
// request context, aborting with 401 when the auth middleware did not run.
func requireIdentity(c *gin.Context) (string, domain.TenantContext, bool) {
	ctx := c.Request.Context()
	userID, okUser := middleware.GetUserIDFromCtx(ctx)
	tc, okTenant := middleware.GetTenantFromCtx(ctx)
	if !okUser || !okTenant {
		middleware.GetLoggerFromCtx(ctx).Error("Identity not found in context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", domain.TenantContext{}, false
	}
	return userID, tc, true
}

// respondServiceError maps service errors to HTTP responses.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var insufficient *apperrors.InsufficientFundsError
	switch {
	case errors.As(err, &insufficient):
		logger.Warn("Debit rejected by balance floor", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     err.Error(),
			"account":   insufficient.AccountName,
			"available": insufficient.Available.StringFixed(2),
			"required":  insufficient.Required.StringFixed(2),
		})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Service call failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
