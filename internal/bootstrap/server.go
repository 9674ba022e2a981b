package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/novikovva/aviapp/api"
	"github.com/novikovva/aviapp/config"
	"github.com/novikovva/aviapp/internal/domain"
	"github.com/novikovva/aviapp/internal/notify"
	"github.com/novikovva/aviapp/internal/service/auth"
	"github.com/novikovva/aviapp/internal/service/booking"
	"github.com/novikovva/aviapp/internal/service/flights"
	"github.com/novikovva/aviapp/internal/service/reviews"
	"github.com/novikovva/aviapp/internal/service/users"
)

type Services struct {
	Sessions api.SessionValidator
	Auth     auth.AuthUseCase
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Users    users.UserUseCase
	Reviews  reviews.ReviewUseCase
	Relay    *notify.Relay
}

// Run starts the HTTP server and blocks until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger, svc Services) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, log, svc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, log *zap.Logger, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.RequestLogger(log))
	router.Use(api.RequestTimeout(time.Duration(cfg.HTTP.RequestTimeout) * time.Second))

	authHandler := api.NewAuthHandler(svc.Auth)
	flightHandler := api.NewFlightHandler(svc.Flights)
	bookingHandler := api.NewBookingHandler(svc.Bookings)
	userHandler := api.NewUserHandler(svc.Users)
	reviewHandler := api.NewReviewHandler(svc.Reviews, svc.Flights)
	adminHandler := api.NewAdminHandler(svc.Users, svc.Bookings, svc.Reviews, svc.Relay)

	root := router.Group("/api")
	authHandler.RegisterPublic(root)

	protected := root.Group("", api.SessionMiddleware(svc.Sessions, log))
	authHandler.RegisterProtected(protected)
	flightHandler.Register(protected)
	bookingHandler.Register(protected)
	userHandler.Register(protected)
	reviewHandler.Register(protected)

	admin := protected.Group("/admin", api.RequireRole(domain.RoleAdmin))
	adminHandler.Register(admin)
	flightHandler.RegisterAdmin(admin)

	return router
}
