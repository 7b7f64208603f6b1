package server

import (
	"storefront-payments/internal/handler"
	"storefront-payments/internal/service"
	"storefront-payments/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo           *echo.Echo
	paymentHandler *handler.PaymentHandler
}

func NewServer(paymentService service.PaymentService) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		paymentHandler: handler.NewPaymentHandler(paymentService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.POST("/orders", s.paymentHandler.Checkout)

	// -------- bank SMS payment --------
	payment := api.Group("/payment")
	payment.POST("/webhook", s.paymentHandler.BankSMSWebhook)
	payment.GET("/status/:orderId", s.paymentHandler.PaymentStatus)
	payment.GET("/bank-accounts", s.paymentHandler.BankAccounts)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
