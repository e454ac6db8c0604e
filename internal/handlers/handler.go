package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/smile-care-api/internal/apperrors"
	"github.com/harentsoaR/smile-care-api/internal/middleware"
	"github.com/harentsoaR/smile-care-api/internal/services"
	"go.uber.org/zap"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles everything the handlers call into.
type Services struct {
	Availability *services.AvailabilityService
	Bookings     *services.BookingService
	Auth         *services.AuthService
	Payments     *services.PaymentService
	Users        *services.UserService
	Doctors      *services.DoctorService
}

type Handler struct {
	availability *services.AvailabilityService
	bookings     *services.BookingService
	auth         *services.AuthService
	payments     *services.PaymentService
	users        *services.UserService
	doctors      *services.DoctorService
	db           Pinger
	log          *zap.Logger
	timeout      time.Duration
}

// NewHandler wires the services into HTTP handlers. Every service call runs
// under requestTimeout. db may be nil, in which case /healthz always reports ok.
func NewHandler(svc Services, db Pinger, log *zap.Logger, requestTimeout time.Duration) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}
	return &Handler{
		availability: svc.Availability,
		bookings:     svc.Bookings,
		auth:         svc.Auth,
		payments:     svc.Payments,
		users:        svc.Users,
		doctors:      svc.Doctors,
		db:           db,
		log:          log,
		timeout:      requestTimeout,
	}
}

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// respondError writes err as {"code","message"} with the status of its AppError.
func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := apperrors.As(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		middleware.Logger(c).Error("request error",
			zap.String("code", appErr.Code),
			zap.Error(err),
		)
	}
	_ = c.Error(err)

	body := gin.H{"code": appErr.Code, "message": appErr.Message}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, body)
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	h.respondError(c, apperrors.Validation(err.Error()))
}

func (h *Handler) Home(c *gin.Context) {
	c.String(http.StatusOK, "Smile care server is running")
}

func (h *Handler) Health(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := h.requestContext(c)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			middleware.Logger(c).Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
