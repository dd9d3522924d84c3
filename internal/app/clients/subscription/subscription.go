// internal/app/clients/subscription/subscription.go

// Package subscription is the client for the subscription oracle. The only
// question it answers is "what plan, if any, is active for this company".
package subscription

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/domain/models"
)

// Client calls the subscription service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a Client with a bounded per-request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// ActiveSubscription returns the company's active subscription, or nil when
// the company has none (plan expired). Quota gates treat nil as PlanExpired.
func (c *Client) ActiveSubscription(ctx context.Context, companyID string) (*models.Subscription, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/subscriptions/active/"+companyID, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindDependencyUnavailable, "subscription service unavailable", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if res.StatusCode >= 400 {
		msg := fmt.Sprintf("subscription service responded %d", res.StatusCode)
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
		return nil, apierror.New(apierror.KindDependencyUnavailable, msg)
	}

	var sub models.Subscription
	if err := json.NewDecoder(res.Body).Decode(&sub); err != nil {
		return nil, apierror.Wrap(apierror.KindDependencyUnavailable, "subscription service returned a malformed response", err)
	}
	if sub.ID == "" {
		return nil, nil
	}
	return &sub, nil
}
