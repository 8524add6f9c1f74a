package main

import (
	"log"

	"github.com/burkedavid/golf-society-booking-sub000/config"
	"github.com/burkedavid/golf-society-booking-sub000/internal/handler"
	"github.com/burkedavid/golf-society-booking-sub000/internal/middleware"
	"github.com/burkedavid/golf-society-booking-sub000/internal/repository"
	"github.com/burkedavid/golf-society-booking-sub000/internal/service"
	"github.com/burkedavid/golf-society-booking-sub000/pkg/database"
	"github.com/burkedavid/golf-society-booking-sub000/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Notifications are best-effort: the app runs without a broker.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Printf("rabbitmq unavailable, continuing without notifications: %v", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// Repositories
	outingRepo := repository.NewOutingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// Services
	bookingSvc := service.NewBookingService(bookingRepo, outingRepo, publisher)
	outingSvc := service.NewOutingService(outingRepo, bookingRepo, publisher)
	memberSvc := service.NewMemberService(memberRepo, sessionRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "golf-society-booking"})
	})

	auth := middleware.Auth(sessionRepo)
	handler.NewMemberHandler(memberSvc).RegisterRoutes(e, auth)
	handler.NewOutingHandler(outingSvc, bookingSvc).RegisterRoutes(e, auth)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e, auth)

	log.Printf("Golf society booking service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
