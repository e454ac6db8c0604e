package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/smile-care-api/internal/middleware"
)

type RouterOptions struct {
	AllowedOrigins    []string
	MaxRequestsPerMin int
}

// NewRouter builds the gin engine with the middleware stack and every route.
func NewRouter(h *Handler, tokens middleware.TokenValidator, opts RouterOptions) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(h.log), middleware.ErrorHandler())
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	if opts.MaxRequestsPerMin > 0 {
		r.Use(middleware.NewRateLimiter(opts.MaxRequestsPerMin).Middleware())
	}
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "message": "route not found"})
	})

	auth := middleware.AuthMiddleware(tokens)
	admin := middleware.AdminOnly(h.users, h.timeout)

	r.GET("/", h.Home)
	r.GET("/healthz", h.Health)

	r.GET("/appointmentOptions", h.AppointmentOptions)
	r.GET("/appointmentSpecialty", h.Specialties)

	r.POST("/bookings", h.CreateBooking)
	r.GET("/bookings", auth, h.ListBookings)
	r.GET("/bookings/:id", h.GetBooking)

	r.GET("/jwt", h.IssueToken)

	r.POST("/create-payment-intent", h.CreatePaymentIntent)
	r.POST("/payment", h.RecordPayment)

	r.POST("/users", h.SaveUser)
	r.GET("/users", auth, admin, h.ListUsers)
	r.GET("/users/admin/:email", h.CheckAdmin)
	r.PUT("/users/admin/:id", auth, admin, h.PromoteAdmin)

	doctors := r.Group("/doctors", auth, admin)
	{
		doctors.POST("", h.CreateDoctor)
		doctors.GET("", h.ListDoctors)
		doctors.DELETE("/:id", h.DeleteDoctor)
	}

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
