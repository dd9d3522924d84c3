package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ktguru/project-service/internal/domain/models"
)

// FakeIdentity is an httptest stand-in for the user-directory service.
// Tests set the fields they care about; unset endpoints answer with
// sensible defaults.
type FakeIdentity struct {
	Server *httptest.Server

	// AddUserReply is returned from add-resource calls.
	AddUserReply map[string]string
	Tokens       map[string]models.VerificationToken
	RemoveReply  map[string]string

	// Requests records the paths hit, in order.
	Requests []string
}

// NewFakeIdentity starts a fake user-directory service. The server is
// closed on test cleanup.
func NewFakeIdentity(t *testing.T) *FakeIdentity {
	t.Helper()

	f := &FakeIdentity{
		AddUserReply: map[string]string{
			"userId":      "",
			"url":         "https://app.test/invite/tok",
			"declineURL":  "https://app.test/decline/tok",
			"companyName": "Test Company",
		},
		Tokens:      map[string]models.VerificationToken{},
		RemoveReply: map[string]string{"companyName": "Test Company"},
	}

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.Requests = append(f.Requests, r.URL.Path)
		switch {
		case r.URL.Path == "/users/add-resource":
			writeJSON(w, f.AddUserReply)
		case r.URL.Path == "/users/signup-resource":
			writeJSON(w, map[string]bool{"success": true})
		case r.URL.Path == "/users/remove-company":
			var in map[string]string
			_ = json.NewDecoder(r.Body).Decode(&in)
			reply := map[string]string{"userId": in["userId"]}
			for k, v := range f.RemoveReply {
				reply[k] = v
			}
			writeJSON(w, reply)
		case strings.HasPrefix(r.URL.Path, "/users/get-token/"):
			token := strings.TrimPrefix(r.URL.Path, "/users/get-token/")
			if tok, ok := f.Tokens[token]; ok {
				writeJSON(w, tok)
				return
			}
			w.WriteHeader(http.StatusBadRequest)
			writeJSON(w, map[string]string{"message": "Invalid token"})
		case strings.HasPrefix(r.URL.Path, "/users/delete-token/"):
			writeJSON(w, map[string]bool{"success": true})
		case strings.HasPrefix(r.URL.Path, "/users/company-resource/"):
			writeJSON(w, map[string]interface{}{
				"companyName": "Test Company",
				"teamsData":   []models.ResourceEntry{},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.Server.Close)

	return f
}

// URL returns the fake service's base URL.
func (f *FakeIdentity) URL() string { return f.Server.URL }

// FakeSubscription is an httptest stand-in for the subscription oracle.
// A nil Subscription answers 404, which the client reads as plan expired.
type FakeSubscription struct {
	Server       *httptest.Server
	Subscription *models.Subscription
}

// NewFakeSubscription starts a fake subscription service returning sub for
// every company. The server is closed on test cleanup.
func NewFakeSubscription(t *testing.T, sub *models.Subscription) *FakeSubscription {
	t.Helper()

	f := &FakeSubscription{Subscription: sub}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.Subscription == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, f.Subscription)
	}))
	t.Cleanup(f.Server.Close)

	return f
}

// URL returns the fake service's base URL.
func (f *FakeSubscription) URL() string { return f.Server.URL }

// ActivePlan builds an active subscription on a paid plan with the given
// limits.
func ActivePlan(planName string, totalProjects, totalConsultants int) *models.Subscription {
	return &models.Subscription{
		ID:        "sub-1",
		CompanyID: "company-1",
		IsActive:  true,
		PlanID: models.Plan{
			ID:              "plan-1",
			PlanName:        planName,
			TotalProject:    totalProjects,
			TotalConsultant: totalConsultants,
		},
	}
}

// TrialPlan builds an active free-trial subscription.
func TrialPlan() *models.Subscription {
	sub := ActivePlan(models.PlanBasic, 1, 2)
	sub.PlanID.FreeTrial = true
	return sub
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
