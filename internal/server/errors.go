package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	assignmentdomain "github.com/loanridge/loanridge/internal/assignment/domain"
	auditdomain "github.com/loanridge/loanridge/internal/audit/domain"
	authdomain "github.com/loanridge/loanridge/internal/auth/domain"
	"github.com/loanridge/loanridge/internal/authorization"
	contactdomain "github.com/loanridge/loanridge/internal/contact/domain"
	invitationdomain "github.com/loanridge/loanridge/internal/invitation/domain"
	professionaldomain "github.com/loanridge/loanridge/internal/professional/domain"
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

type conflictRef struct {
	Kind  string `json:"kind"`
	RefID string `json:"ref_id"`
	Email string `json:"email,omitempty"`
}

type errorPayload struct {
	Type     string            `json:"type"`
	Message  string            `json:"message"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Conflict *conflictRef      `json:"conflict,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
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

	var dupErr *invitationdomain.DuplicateError
	if errors.As(err, &dupErr) {
		return http.StatusConflict, errorPayload{
			Type:    "duplicate_relationship",
			Message: "an open relationship already exists for this contact",
			Conflict: &conflictRef{
				Kind:  dupErr.Kind,
				RefID: dupErr.RefID.String(),
				Email: dupErr.Email,
			},
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrSessionExpired):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, invitationdomain.ErrInvalidTransition):
		return http.StatusConflict, errorPayload{
			Type:    "invalid_transition",
			Message: "the invitation state does not allow this operation",
		}
	case errors.Is(err, invitationdomain.ErrExpired):
		return http.StatusGone, errorPayload{
			Type:    "invitation_expired",
			Message: "the invitation has expired",
		}
	case errors.Is(err, invitationdomain.ErrDuplicateRelationship),
		errors.Is(err, assignmentdomain.ErrRoleSlotOccupied),
		errors.Is(err, contactdomain.ErrAlreadyLinked),
		errors.Is(err, professionaldomain.ErrEmailTaken):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, invitationdomain.ErrDeliveryFailed):
		return http.StatusBadGateway, errorPayload{
			Type:    "delivery_failed",
			Message: "delivery failed on every requested channel",
		}
	case errors.Is(err, invitationdomain.ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many send attempts",
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
		errors.Is(err, invitationdomain.ErrInvalidInviter),
		errors.Is(err, invitationdomain.ErrInvalidEmail),
		errors.Is(err, invitationdomain.ErrInvalidRole),
		errors.Is(err, invitationdomain.ErrInvalidChannel),
		errors.Is(err, contactdomain.ErrInvalidOwner),
		errors.Is(err, contactdomain.ErrInvalidName),
		errors.Is(err, contactdomain.ErrInvalidEmail),
		errors.Is(err, contactdomain.ErrInvalidCategory),
		errors.Is(err, assignmentdomain.ErrInvalidClient),
		errors.Is(err, assignmentdomain.ErrInvalidProfessional),
		errors.Is(err, assignmentdomain.ErrInvalidRoleTag),
		errors.Is(err, professionaldomain.ErrInvalidName),
		errors.Is(err, professionaldomain.ErrInvalidEmail),
		errors.Is(err, professionaldomain.ErrInvalidRole),
		errors.Is(err, professionaldomain.ErrWeakPassword),
		errors.Is(err, professionaldomain.ErrInvalidChanger),
		errors.Is(err, auditdomain.ErrInvalidUser),
		errors.Is(err, auditdomain.ErrInvalidRole):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, invitationdomain.ErrNotFound),
		errors.Is(err, invitationdomain.ErrInvalidCode),
		errors.Is(err, assignmentdomain.ErrNotFound),
		errors.Is(err, professionaldomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

// classifyErrorForLog maps an error onto (type, code) labels for the
// request log without leaking internals.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	status, payload := mapError(err)
	switch {
	case status >= 500:
		return "server_error", payload.Type
	case status >= 400:
		return "client_error", payload.Type
	default:
		return "", ""
	}
}
