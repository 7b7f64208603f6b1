package handler

import (
	"errors"
	"net/http"

	"storefront-payments/internal/dto"
	"storefront-payments/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// BankSMSWebhook receives forwarded bank SMS notifications from the relay
// and confirms the matching pending order's payment.
func (h *PaymentHandler) BankSMSWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	var payload dto.BankSMSWebhook
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	resp, err := h.paymentService.ConfirmBankSMS(ctx, &payload)
	if err != nil {
		return h.writeWebhookError(c, &payload, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// writeWebhookError maps every reconciliation failure to a distinct
// response so the relay operator can tell a stale duplicate from a case
// that needs human attention.
func (h *PaymentHandler) writeWebhookError(c echo.Context, payload *dto.BankSMSWebhook, err error) error {
	var notFound *service.OrderNotFoundError
	var mismatch *service.AmountMismatchError

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Unauthorized - Invalid POSTKEY",
		})
	case errors.Is(err, service.ErrInvalidSender):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":    "Invalid sender",
			"received": payload.SenderName(),
			"expected": "Khaan Bank",
		})
	case errors.As(err, &notFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"error":        "Order not found",
			"searchedText": notFound.SearchedText,
		})
	case errors.Is(err, service.ErrAmountNotParsed):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "Amount not found in SMS",
			"smsText": payload.SMSText(),
		})
	case errors.As(err, &mismatch):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":    "Amount mismatch",
			"received": mismatch.Received,
			"expected": mismatch.Expected,
			"message":  "Төлбөрийн дүн таарахгүй байна",
		})
	case errors.Is(err, service.ErrConcurrentUpdate):
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Concurrent update",
		})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Internal server error",
		})
	}
}

// Checkout creates a pending order with a fresh payment reference.
func (h *PaymentHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	resp, err := h.paymentService.Checkout(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrBelowMinimumAmount) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "order total below minimum order amount"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	return c.JSON(http.StatusCreated, resp)
}

// PaymentStatus is polled by the checkout page while the customer pays.
func (h *PaymentHandler) PaymentStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderID := c.Param("orderId")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing order id"})
	}

	resp, err := h.paymentService.PaymentStatus(ctx, orderID)
	if err != nil {
		var notFound *service.OrderNotFoundError
		if errors.As(err, &notFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, resp)
}

// BankAccounts returns the account details shown to the payer at checkout.
func (h *PaymentHandler) BankAccounts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.paymentService.BankAccounts())
}
