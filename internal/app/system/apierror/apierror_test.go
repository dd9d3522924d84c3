package apierror_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ktguru/project-service/internal/app/system/apierror"
	"go.uber.org/zap"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind apierror.Kind
		want int
	}{
		{apierror.KindNotFound, http.StatusNotFound},
		{apierror.KindAlreadyMember, http.StatusConflict},
		{apierror.KindPlanExpired, http.StatusUnprocessableEntity},
		{apierror.KindQuotaExceeded, http.StatusUnprocessableEntity},
		{apierror.KindTrialLimit, http.StatusUnprocessableEntity},
		{apierror.KindPlanRestriction, http.StatusUnprocessableEntity},
		{apierror.KindInvitationExpired, http.StatusUnprocessableEntity},
		{apierror.KindInvalidOperation, http.StatusBadRequest},
		{apierror.KindValidationFailed, http.StatusBadRequest},
		{apierror.KindForbidden, http.StatusForbidden},
		{apierror.KindDependencyUnavailable, http.StatusBadGateway},
		{apierror.KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.kind.Status(); got != tt.want {
			t.Errorf("Status(%s): got %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestIsKind(t *testing.T) {
	err := apierror.New(apierror.KindNotFound, "Project not found")
	if !apierror.IsKind(err, apierror.KindNotFound) {
		t.Error("IsKind: expected match for direct error")
	}
	if apierror.IsKind(err, apierror.KindForbidden) {
		t.Error("IsKind: matched wrong kind")
	}

	wrapped := fmt.Errorf("handler: %w", err)
	if !apierror.IsKind(wrapped, apierror.KindNotFound) {
		t.Error("IsKind: expected match through wrapping")
	}

	if apierror.IsKind(errors.New("plain"), apierror.KindNotFound) {
		t.Error("IsKind: matched a plain error")
	}
}

func TestErrorMessage(t *testing.T) {
	err := apierror.New(apierror.KindQuotaExceeded, "Your current plan is Basic, and you are limited to 5 consultants.")
	if err.Error() != "Your current plan is Basic, and you are limited to 5 consultants." {
		t.Errorf("Error(): got %q", err.Error())
	}

	cause := errors.New("connection refused")
	wrapped := apierror.Wrap(apierror.KindDependencyUnavailable, "identity service unavailable", cause)
	if !errors.Is(wrapped, cause) {
		t.Error("Wrap: cause not reachable through Unwrap")
	}
}

func TestRenderClassified(t *testing.T) {
	rec := httptest.NewRecorder()
	apierror.Render(rec, zap.NewNop(), apierror.New(apierror.KindAlreadyMember, "This user is already a member of the project."))

	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusConflict)
	}
	var body struct {
		Error string        `json:"error"`
		Kind  apierror.Kind `json:"kind"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Error != "This user is already a member of the project." {
		t.Errorf("error message: got %q", body.Error)
	}
	if body.Kind != apierror.KindAlreadyMember {
		t.Errorf("kind: got %q, want %q", body.Kind, apierror.KindAlreadyMember)
	}
}

func TestRenderValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	apierror.Render(rec, zap.NewNop(), apierror.Validation(map[string]string{"email": "email is required"}))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Fields["email"] != "email is required" {
		t.Errorf("fields: got %v", body.Fields)
	}
}

func TestRenderUnclassified(t *testing.T) {
	rec := httptest.NewRecorder()
	apierror.Render(rec, zap.NewNop(), errors.New("mongo: broken pipe"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	// The cause must never leak into the response body.
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Error != "internal server error" {
		t.Errorf("error message: got %q, want generic message", body.Error)
	}
}
