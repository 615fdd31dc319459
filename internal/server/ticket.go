package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	ticketdomain "github.com/tedxmekong/stagehub/internal/ticket/domain"
)

const (
	webhookProviderMock  = "mock"
	webhookSignatureHead = "X-Webhook-Signature"
)

type PurchaseTicketRequest struct {
	EventID string `json:"event_id"`
}

type paymentWebhookPayload struct {
	TicketID string `json:"ticket_id"`
	Status   string `json:"status"`
}

func (s *Server) PurchaseTicket(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}

	var req PurchaseTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	eventID, err := snowflake.ParseString(strings.TrimSpace(req.EventID))
	if err != nil {
		AbortWithError(c, newValidationError("event_id", "invalid_id", "invalid identifier"))
		return
	}

	ticket, err := s.ticketSvc.Purchase(c.Request.Context(), user.ID, eventID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (s *Server) ListMyTickets(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	tickets, err := s.ticketSvc.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

func (s *Server) GetTicket(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ticket, err := s.ticketSvc.Get(c.Request.Context(), user.ID, ticketID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (s *Server) CancelTicket(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ticket, err := s.ticketSvc.Cancel(c.Request.Context(), user.ID, ticketID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (s *Server) DownloadTicketReceipt(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	pdfBytes, err := s.ticketSvc.ReceiptPDF(c.Request.Context(), user.ID, ticketID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="ticket-`+ticketID.String()+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// HandlePaymentWebhook confirms ticket payments. Only the mock provider
// is wired; its signature is an HMAC-SHA256 of the raw body.
func (s *Server) HandlePaymentWebhook(c *gin.Context) {
	provider := strings.ToLower(strings.TrimSpace(c.Param("provider")))
	if provider != webhookProviderMock {
		AbortWithError(c, ticketdomain.ErrUnknownProvider)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if !s.verifyWebhookSignature(body, c.GetHeader(webhookSignatureHead)) {
		AbortWithError(c, ticketdomain.ErrInvalidSignature)
		return
	}

	var payload paymentWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	ticketID, err := snowflake.ParseString(strings.TrimSpace(payload.TicketID))
	if err != nil {
		AbortWithError(c, newValidationError("ticket_id", "invalid_id", "invalid identifier"))
		return
	}
	if !strings.EqualFold(payload.Status, "paid") {
		AbortWithError(c, newValidationError("status", "unsupported_status", "only paid events are handled"))
		return
	}

	if _, err := s.ticketSvc.ConfirmPayment(c.Request.Context(), ticketID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) verifyWebhookSignature(body []byte, signature string) bool {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(s.cfg.PaymentWebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
