// internal/app/system/apierror/apierror.go

// Package apierror defines the error taxonomy for membership operations and
// renders errors as JSON responses. Business-rule failures carry a
// user-facing message (plan name, numeric limit) so callers can show it
// verbatim; dependency failures pass the upstream payload through.
package apierror

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Kind classifies an error for HTTP status mapping.
type Kind string

const (
	KindNotFound              Kind = "not_found"              // 404
	KindAlreadyMember         Kind = "already_member"         // 409
	KindPlanExpired           Kind = "plan_expired"           // 422
	KindQuotaExceeded         Kind = "quota_exceeded"         // 422
	KindTrialLimit            Kind = "trial_limit"            // 422
	KindPlanRestriction       Kind = "plan_restriction"       // 422
	KindInvitationExpired     Kind = "invitation_expired"     // 422
	KindInvalidOperation      Kind = "invalid_operation"      // 400
	KindValidationFailed      Kind = "validation_failed"      // 400
	KindForbidden             Kind = "forbidden"              // 403
	KindDependencyUnavailable Kind = "dependency_unavailable" // 502
	KindInternal              Kind = "internal"               // 500
)

// Error is a classified error with a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field validation messages for KindValidationFailed.
	Fields map[string]string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind with a user-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause to a classified error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation builds a per-field validation error.
func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidationFailed, Message: "validation failed", Fields: fields}
}

// Status maps an error kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindAlreadyMember:
		return http.StatusConflict
	case KindPlanExpired, KindQuotaExceeded, KindTrialLimit, KindPlanRestriction, KindInvitationExpired:
		return http.StatusUnprocessableEntity
	case KindInvalidOperation, KindValidationFailed:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindDependencyUnavailable:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

type payload struct {
	Error  string            `json:"error"`
	Kind   Kind              `json:"kind"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Render writes err to w as JSON. Unclassified errors become 500s with a
// generic message; the cause is logged, never leaked.
func Render(w http.ResponseWriter, log *zap.Logger, err error) {
	var ae *Error
	if !errors.As(err, &ae) {
		if log != nil {
			log.Error("unhandled error", zap.Error(err))
		}
		ae = &Error{Kind: KindInternal, Message: "internal server error"}
	}
	if ae.Kind == KindInternal && log != nil && ae.Err != nil {
		log.Error("internal error", zap.Error(ae.Err))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ae.Kind.Status())
	_ = json.NewEncoder(w).Encode(payload{Error: ae.Error(), Kind: ae.Kind, Fields: ae.Fields})
}
