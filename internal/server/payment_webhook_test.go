package server

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/tedxmekong/stagehub/internal/config"
	ticketdomain "github.com/tedxmekong/stagehub/internal/ticket/domain"
)

type fakeTicketService struct {
	confirmed []snowflake.ID
}

func (f *fakeTicketService) Purchase(ctx context.Context, userID, eventID snowflake.ID) (*ticketdomain.EventTicket, error) {
	_ = ctx
	_ = userID
	_ = eventID
	return nil, nil
}

func (f *fakeTicketService) Get(ctx context.Context, userID, ticketID snowflake.ID) (*ticketdomain.EventTicket, error) {
	_ = ctx
	_ = userID
	_ = ticketID
	return nil, nil
}

func (f *fakeTicketService) ListMine(ctx context.Context, userID snowflake.ID) ([]ticketdomain.EventTicket, error) {
	_ = ctx
	_ = userID
	return nil, nil
}

func (f *fakeTicketService) ConfirmPayment(ctx context.Context, ticketID snowflake.ID) (*ticketdomain.EventTicket, error) {
	_ = ctx
	f.confirmed = append(f.confirmed, ticketID)
	return &ticketdomain.EventTicket{ID: ticketID, PaymentStatus: ticketdomain.PaymentPaid}, nil
}

func (f *fakeTicketService) Cancel(ctx context.Context, userID, ticketID snowflake.ID) (*ticketdomain.EventTicket, error) {
	_ = ctx
	_ = userID
	_ = ticketID
	return nil, nil
}

func (f *fakeTicketService) ReceiptPDF(ctx context.Context, userID, ticketID snowflake.ID) ([]byte, error) {
	_ = ctx
	_ = userID
	_ = ticketID
	return nil, nil
}

func newWebhookRouter(svc ticketdomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		cfg:       config.Config{PaymentWebhookSecret: "webhook-test-secret"},
		ticketSvc: svc,
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/api/payments/webhooks/:provider", srv.HandlePaymentWebhook)
	return router
}

func signBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte("webhook-test-secret"))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestPaymentWebhookUnknownProviderReturns404(t *testing.T) {
	svc := &fakeTicketService{}
	router := newWebhookRouter(svc)

	body := []byte(`{"ticket_id":"1","status":"paid"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhooks/stripe", bytes.NewBuffer(body))
	req.Header.Set("X-Webhook-Signature", signBody(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	if len(svc.confirmed) != 0 {
		t.Fatal("expected no payment confirmation for unknown provider")
	}
}

func TestPaymentWebhookBadSignatureReturns401(t *testing.T) {
	svc := &fakeTicketService{}
	router := newWebhookRouter(svc)

	body := []byte(`{"ticket_id":"1","status":"paid"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhooks/mock", bytes.NewBuffer(body))
	req.Header.Set("X-Webhook-Signature", "deadbeef")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
	if len(svc.confirmed) != 0 {
		t.Fatal("expected no payment confirmation with a bad signature")
	}
}

func TestPaymentWebhookConfirmsPaidTicket(t *testing.T) {
	svc := &fakeTicketService{}
	router := newWebhookRouter(svc)

	body := []byte(`{"ticket_id":"42","status":"paid"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhooks/mock", bytes.NewBuffer(body))
	req.Header.Set("X-Webhook-Signature", signBody(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if len(svc.confirmed) != 1 || svc.confirmed[0] != snowflake.ID(42) {
		t.Fatalf("expected ticket 42 confirmed, got %v", svc.confirmed)
	}
}

func TestPaymentWebhookIgnoresNonPaidStatus(t *testing.T) {
	svc := &fakeTicketService{}
	router := newWebhookRouter(svc)

	body := []byte(`{"ticket_id":"42","status":"failed"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhooks/mock", bytes.NewBuffer(body))
	req.Header.Set("X-Webhook-Signature", signBody(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if len(svc.confirmed) != 0 {
		t.Fatal("expected no payment confirmation for a non-paid status")
	}
}
