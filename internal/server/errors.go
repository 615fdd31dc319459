package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/tedxmekong/stagehub/internal/auth/domain"
	cartdomain "github.com/tedxmekong/stagehub/internal/cart/domain"
	discountdomain "github.com/tedxmekong/stagehub/internal/discount/domain"
	eventdomain "github.com/tedxmekong/stagehub/internal/event/domain"
	learningdomain "github.com/tedxmekong/stagehub/internal/learning/domain"
	mentordomain "github.com/tedxmekong/stagehub/internal/mentor/domain"
	notificationdomain "github.com/tedxmekong/stagehub/internal/notification/domain"
	offeringdomain "github.com/tedxmekong/stagehub/internal/offering/domain"
	orderdomain "github.com/tedxmekong/stagehub/internal/order/domain"
	organizationdomain "github.com/tedxmekong/stagehub/internal/organization/domain"
	productdomain "github.com/tedxmekong/stagehub/internal/product/domain"
	purchasedomain "github.com/tedxmekong/stagehub/internal/purchase/domain"
	ticketdomain "github.com/tedxmekong/stagehub/internal/ticket/domain"
	workspacedomain "github.com/tedxmekong/stagehub/internal/workspace/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrRateLimited        = errors.New("rate_limited")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

// classifyErrorForLog buckets an error for the request log.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= 500:
		return "server_error", payload.Type
	case status >= 400:
		return "client_error", payload.Type
	default:
		return "none", payload.Type
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isUnauthorizedError(err):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case isForbiddenError(err):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many requests",
		}
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, authdomain.ErrWeakPassword),
		errors.Is(err, authdomain.ErrInvalidEmail),
		errors.Is(err, authdomain.ErrInvalidRole),
		errors.Is(err, authdomain.ErrInvalidToken),
		errors.Is(err, organizationdomain.ErrInvalidName),
		errors.Is(err, organizationdomain.ErrInvalidTier),
		errors.Is(err, organizationdomain.ErrOrgNotApproved),
		errors.Is(err, offeringdomain.ErrInvalidName),
		errors.Is(err, offeringdomain.ErrInvalidPrice),
		errors.Is(err, offeringdomain.ErrInvalidCategory),
		errors.Is(err, offeringdomain.ErrOfferingUnapproved),
		errors.Is(err, eventdomain.ErrInvalidName),
		errors.Is(err, eventdomain.ErrInvalidPrice),
		errors.Is(err, eventdomain.ErrInvalidType),
		errors.Is(err, eventdomain.ErrInvalidDate),
		errors.Is(err, eventdomain.ErrEventUnapproved),
		errors.Is(err, productdomain.ErrInvalidName),
		errors.Is(err, productdomain.ErrInvalidPrice),
		errors.Is(err, productdomain.ErrInvalidStock),
		errors.Is(err, cartdomain.ErrInvalidQuantity),
		errors.Is(err, discountdomain.ErrInvalidCode),
		errors.Is(err, discountdomain.ErrInvalidType),
		errors.Is(err, discountdomain.ErrInvalidValue),
		errors.Is(err, discountdomain.ErrCodeExpired),
		errors.Is(err, discountdomain.ErrBelowMinAmount),
		errors.Is(err, orderdomain.ErrEmptyCart),
		errors.Is(err, orderdomain.ErrInvalidStatus),
		errors.Is(err, orderdomain.ErrInvalidAddress),
		errors.Is(err, orderdomain.ErrProductUnavailable),
		errors.Is(err, orderdomain.ErrInvalidPageToken),
		errors.Is(err, workspacedomain.ErrInvalidName),
		errors.Is(err, workspacedomain.ErrInvalidStatus),
		errors.Is(err, workspacedomain.ErrInvalidParent),
		errors.Is(err, mentordomain.ErrInvalidTimeRange),
		errors.Is(err, notificationdomain.ErrInvalidTitle),
		errors.Is(err, notificationdomain.ErrInvalidDate):
		return true
	default:
		return false
	}
}

func isUnauthorizedError(err error) bool {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked),
		errors.Is(err, authdomain.ErrSessionNotFound),
		errors.Is(err, ticketdomain.ErrInvalidSignature):
		return true
	default:
		return false
	}
}

func isForbiddenError(err error) bool {
	switch {
	case errors.Is(err, ErrForbidden),
		errors.Is(err, organizationdomain.ErrNotOrganizer),
		errors.Is(err, organizationdomain.ErrForbiddenMember),
		errors.Is(err, workspacedomain.ErrAccessDenied),
		errors.Is(err, mentordomain.ErrNotSessionMentor),
		errors.Is(err, mentordomain.ErrNotSessionStudent):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, authdomain.ErrUserExists),
		errors.Is(err, organizationdomain.ErrOrgExists),
		errors.Is(err, organizationdomain.ErrMemberExists),
		errors.Is(err, organizationdomain.ErrSelfRemoveOwner),
		errors.Is(err, productdomain.ErrInsufficientStock),
		errors.Is(err, discountdomain.ErrCodeExists),
		errors.Is(err, discountdomain.ErrCodeExhausted),
		errors.Is(err, discountdomain.ErrRedeemConflict),
		errors.Is(err, orderdomain.ErrInvalidTransition),
		errors.Is(err, orderdomain.ErrNotCancellable),
		errors.Is(err, ticketdomain.ErrTicketNotPending),
		errors.Is(err, ticketdomain.ErrTicketNotPaid),
		errors.Is(err, purchasedomain.ErrAlreadyPurchased),
		errors.Is(err, purchasedomain.ErrPurchaseInactive),
		errors.Is(err, workspacedomain.ErrInvalidTransition),
		errors.Is(err, mentordomain.ErrSlotUnavailable),
		errors.Is(err, mentordomain.ErrSessionNotActive):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, organizationdomain.ErrOrgNotFound),
		errors.Is(err, organizationdomain.ErrMemberNotFound),
		errors.Is(err, offeringdomain.ErrOfferingNotFound),
		errors.Is(err, eventdomain.ErrEventNotFound),
		errors.Is(err, productdomain.ErrProductNotFound),
		errors.Is(err, cartdomain.ErrItemNotFound),
		errors.Is(err, discountdomain.ErrCodeNotFound),
		errors.Is(err, orderdomain.ErrOrderNotFound),
		errors.Is(err, ticketdomain.ErrTicketNotFound),
		errors.Is(err, ticketdomain.ErrUnknownProvider),
		errors.Is(err, purchasedomain.ErrPurchaseNotFound),
		errors.Is(err, workspacedomain.ErrWorkspaceNotFound),
		errors.Is(err, workspacedomain.ErrPageNotFound),
		errors.Is(err, workspacedomain.ErrTaskNotFound),
		errors.Is(err, workspacedomain.ErrFileNotFound),
		errors.Is(err, mentordomain.ErrSessionNotFound),
		errors.Is(err, mentordomain.ErrSlotNotFound),
		errors.Is(err, learningdomain.ErrProgressNotFound),
		errors.Is(err, notificationdomain.ErrNotificationNotFound),
		errors.Is(err, notificationdomain.ErrCalendarEventNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
