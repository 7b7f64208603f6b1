package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-payments/internal/dto"
	"storefront-payments/internal/service"
	"storefront-payments/internal/validation"

	"github.com/labstack/echo/v4"
)

// fakePaymentService returns a scripted result so the tests only cover the
// error-to-status-code mapping and the wire bodies.
type fakePaymentService struct {
	confirmResp *dto.PaymentConfirmedResponse
	confirmErr  error
	statusResp  *dto.PaymentStatusResponse
	statusErr   error
}

func (f *fakePaymentService) ConfirmBankSMS(ctx context.Context, payload *dto.BankSMSWebhook) (*dto.PaymentConfirmedResponse, error) {
	return f.confirmResp, f.confirmErr
}

func (f *fakePaymentService) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	return &dto.CheckoutResponse{OrderID: "o1", PaymentRef: "A1B2C3", Total: 250000}, nil
}

func (f *fakePaymentService) PaymentStatus(ctx context.Context, orderID string) (*dto.PaymentStatusResponse, error) {
	return f.statusResp, f.statusErr
}

func (f *fakePaymentService) BankAccounts() []dto.BankAccount {
	return []dto.BankAccount{{BankName: "Хаан банк", AccountNumber: "06000 5021296757", AccountName: "Test"}}
}

func newWebhookContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validation.New()
	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBankSMSWebhook_StatusCodes(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"unauthorized", service.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized - Invalid POSTKEY"},
		{"invalid sender", service.ErrInvalidSender, http.StatusBadRequest, "Invalid sender"},
		{"order not found", &service.OrderNotFoundError{SearchedText: "ZZZ"}, http.StatusNotFound, "Order not found"},
		{"amount not parsed", service.ErrAmountNotParsed, http.StatusBadRequest, "Amount not found in SMS"},
		{"amount mismatch", &service.AmountMismatchError{Received: 140000, Expected: 150000}, http.StatusBadRequest, "Amount mismatch"},
		{"concurrent update", service.ErrConcurrentUpdate, http.StatusConflict, "Concurrent update"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewPaymentHandler(&fakePaymentService{confirmErr: tc.err})
			c, rec := newWebhookContext(t, `{"POSTKEY":"x","from":"y","text":"z"}`)

			if err := h.BankSMSWebhook(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body["error"] != tc.wantError {
				t.Fatalf("expected error %q, got %v", tc.wantError, body["error"])
			}
		})
	}
}

func TestBankSMSWebhook_Success(t *testing.T) {
	h := NewPaymentHandler(&fakePaymentService{
		confirmResp: &dto.PaymentConfirmedResponse{
			Success:    true,
			Message:    "Payment confirmed",
			OrderID:    "o1",
			PaymentRef: "A1B2C3",
		},
	})
	c, rec := newWebhookContext(t, `{"POSTKEY":"789456123","from":"Khaan Bank","text":"ORLOGO: 50,000 MNT Guilgeenii utga: A1B2C3"}`)

	if err := h.BankSMSWebhook(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["success"] != true || body["orderId"] != "o1" || body["paymentRef"] != "A1B2C3" {
		t.Fatalf("unexpected body: %v", body)
	}
	if body["message"] != "Payment confirmed" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestBankSMSWebhook_MismatchDiagnostics(t *testing.T) {
	h := NewPaymentHandler(&fakePaymentService{
		confirmErr: &service.AmountMismatchError{Received: 140000, Expected: 150000},
	})
	c, rec := newWebhookContext(t, `{"POSTKEY":"789456123","from":"Khaan Bank","text":"x"}`)

	if err := h.BankSMSWebhook(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["received"] != float64(140000) || body["expected"] != float64(150000) {
		t.Fatalf("missing diagnostics: %v", body)
	}
}

func TestCheckout_Validation(t *testing.T) {
	h := NewPaymentHandler(&fakePaymentService{})
	e := echo.New()
	e.Validator = validation.New()

	cases := []struct {
		name string
		body string
		want int
	}{
		{
			name: "valid",
			body: `{"items":[{"productId":"p1","productName":"8oz cup","price":250000,"quantity":1}],"customerName":"Bat","customerPhone":"99112233","deliveryAddress":"UB"}`,
			want: http.StatusCreated,
		},
		{
			name: "bad phone",
			body: `{"items":[{"productId":"p1","productName":"8oz cup","price":250000,"quantity":1}],"customerName":"Bat","customerPhone":"123","deliveryAddress":"UB"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "no items",
			body: `{"items":[],"customerName":"Bat","customerPhone":"99112233","deliveryAddress":"UB"}`,
			want: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := h.Checkout(c)
			if err != nil {
				var httpErr *echo.HTTPError
				if !errors.As(err, &httpErr) {
					t.Fatalf("unexpected error type: %v", err)
				}
				if httpErr.Code != tc.want {
					t.Fatalf("expected %d, got %d", tc.want, httpErr.Code)
				}
				return
			}
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestPaymentStatus_NotFound(t *testing.T) {
	h := NewPaymentHandler(&fakePaymentService{statusErr: &service.OrderNotFoundError{}})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/payment/status/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/payment/status/:orderId")
	c.SetParamNames("orderId")
	c.SetParamValues("missing")

	if err := h.PaymentStatus(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestBankAccounts(t *testing.T) {
	h := NewPaymentHandler(&fakePaymentService{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/payment/bank-accounts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.BankAccounts(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var accounts []dto.BankAccount
	if err := json.Unmarshal(rec.Body.Bytes(), &accounts); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(accounts) != 1 || accounts[0].AccountNumber == "" {
		t.Fatalf("unexpected accounts: %v", accounts)
	}
}
