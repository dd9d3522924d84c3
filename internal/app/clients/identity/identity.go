// internal/app/clients/identity/identity.go

// Package identity is the client for the user-directory service. It owns
// users, credentials, and verification tokens; this service only calls it
// and trusts its answers. Upstream error payloads pass through so callers
// can surface the original detail.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/domain/models"
)

// Client calls the identity/user-directory service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a Client for the given base URL with a bounded per-request
// timeout. Timeouts surface as DependencyUnavailable; destructive calls
// are never retried here.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// ResolvedUser is the directory's answer to an invite: the (possibly just
// created) user id plus the accept/decline links for the invitation mail.
type ResolvedUser struct {
	UserID      string `json:"userId"`
	URL         string `json:"url"`
	DeclineURL  string `json:"declineURL"`
	CompanyName string `json:"companyName"`
}

// AddUserInput carries the invite context to the directory.
type AddUserInput struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	CompanyID string `json:"companyId,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
	AddedBy   string `json:"addedBy,omitempty"`
}

// AddUser materializes or resolves a user for an email and returns the
// invitation links. A nil result with nil error never happens; an unknown
// email is surfaced as an upstream error.
func (c *Client) AddUser(ctx context.Context, in AddUserInput) (*ResolvedUser, error) {
	var out ResolvedUser
	if err := c.post(ctx, "/users/add-resource", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignupInput completes a profile during token-driven signup.
type SignupInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
	UserID    string `json:"userId"`
	CompanyID string `json:"companyId,omitempty"`
	Role      string `json:"role,omitempty"`
}

// Signup finalizes the invited user's account in the directory.
func (c *Client) Signup(ctx context.Context, in SignupInput) error {
	return c.post(ctx, "/users/signup-resource", in, nil)
}

// CompanyMembership is the directory's view of a user after a
// company-level status change.
type CompanyMembership struct {
	UserID      string `json:"userId"`
	CompanyName string `json:"companyName"`
}

// RemoveFromCompany records a company-level removal or rejection in the
// directory and returns the company name for notification mails.
func (c *Client) RemoveFromCompany(ctx context.Context, companyID, userID string, status models.MembershipStatus) (*CompanyMembership, error) {
	body := map[string]string{
		"companyId": companyID,
		"userId":    userID,
		"status":    string(status),
	}
	var out CompanyMembership
	if err := c.post(ctx, "/users/remove-company", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetToken fetches a verification token. Unknown or used tokens surface as
// an upstream 400.
func (c *Client) GetToken(ctx context.Context, token string) (*models.VerificationToken, error) {
	var out models.VerificationToken
	if err := c.get(ctx, "/users/get-token/"+token, &out); err != nil {
		return nil, err
	}
	if out.UserID == "" {
		return nil, apierror.New(apierror.KindNotFound,
			"The link you followed seems to be incorrect or no longer active.")
	}
	return &out, nil
}

// DeleteToken consumes a verification token. Called exactly once, after
// all membership transitions for the token have succeeded.
func (c *Client) DeleteToken(ctx context.Context, tokenID string) error {
	return c.get(ctx, "/users/delete-token/"+tokenID, nil)
}

// Roster is the company's resource roster used to seed a new project.
type Roster struct {
	CompanyName string                 `json:"companyName"`
	TeamsData   []models.ResourceEntry `json:"teamsData"`
}

// CompanyRoster fetches the company's roster of resources.
func (c *Client) CompanyRoster(ctx context.Context, companyID string) (*Roster, error) {
	var out Roster
	if err := c.get(ctx, "/users/company-resource/"+companyID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	res, err := c.http.Do(req)
	if err != nil {
		return apierror.Wrap(apierror.KindDependencyUnavailable, "identity service unavailable", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return upstreamError("identity", res)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return apierror.Wrap(apierror.KindDependencyUnavailable, "identity service returned a malformed response", err)
	}
	return nil
}

// upstreamError converts a non-2xx response into a classified error that
// keeps the upstream message intact.
func upstreamError(service string, res *http.Response) error {
	msg := fmt.Sprintf("%s service responded %d", service, res.StatusCode)
	body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Error != "" {
			msg = payload.Error
		} else if payload.Message != "" {
			msg = payload.Message
		}
	}
	kind := apierror.KindDependencyUnavailable
	switch {
	case res.StatusCode == http.StatusNotFound:
		kind = apierror.KindNotFound
	case res.StatusCode >= 400 && res.StatusCode < 500:
		kind = apierror.KindInvalidOperation
	}
	return apierror.New(kind, msg)
}
