package services

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/Hues-Apply/profile-sync/internal/api"
	"github.com/Hues-Apply/profile-sync/internal/auth"
	"github.com/Hues-Apply/profile-sync/internal/dtos"
)

// OpportunityService fetches job/scholarship listings and the backend's
// AI-ranked matches. Unlike the profile sync path (which never retries),
// list fetches retry with a fixed delay: they are read-only and cheap to
// repeat.
type OpportunityService struct {
	APIBaseURL string
	Attempts   uint64
	Delay      time.Duration
	// Fallback authenticates requests that carry no bearer token, for
	// the local-dev case where tokens live in a file instead of a
	// browser session. Nil in production.
	Fallback auth.TokenSource
}

func NewOpportunityService(apiBaseURL string, attempts int) *OpportunityService {
	if attempts < 1 {
		attempts = 1
	}
	return &OpportunityService{
		APIBaseURL: apiBaseURL,
		Attempts:   uint64(attempts),
		Delay:      1 * time.Second,
	}
}

// tokens picks the auth context for one fetch: the forwarded bearer token
// when present, the fallback store otherwise.
func (s *OpportunityService) tokens(token string) auth.TokenSource {
	if token == "" && s.Fallback != nil {
		return s.Fallback
	}
	return auth.NewStaticToken(token)
}

// List returns filtered opportunity listings.
func (s *OpportunityService) List(ctx context.Context, token string, filter dtos.OpportunityFilter) (*dtos.OpportunityListResponse, error) {
	client := api.NewClient(s.APIBaseURL, s.tokens(token))

	var resp *dtos.OpportunityListResponse
	err := s.withRetry(ctx, func(ctx context.Context) error {
		var e error
		resp, e = client.ListOpportunities(ctx, filter)
		return e
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Matches returns the server-ranked matches as an opaque ordered list. No
// re-ranking happens here.
func (s *OpportunityService) Matches(ctx context.Context, token string) (*dtos.OpportunityListResponse, error) {
	client := api.NewClient(s.APIBaseURL, s.tokens(token))

	var resp *dtos.OpportunityListResponse
	err := s.withRetry(ctx, func(ctx context.Context) error {
		var e error
		resp, e = client.GetAIMatches(ctx)
		return e
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// withRetry runs f up to Attempts times with a constant delay between
// tries. Client errors (4xx) fail fast: retrying a bad request or an
// expired token can't succeed.
func (s *OpportunityService) withRetry(ctx context.Context, f func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(s.Attempts-1, retry.NewConstant(s.Delay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := f(ctx)
		if err == nil {
			return nil
		}
		if apiErr, ok := err.(*api.Error); ok && apiErr.Status < http.StatusInternalServerError {
			return err
		}
		log.Printf("⚠️ Opportunity fetch failed: %v. Retrying in %v...", err, s.Delay)
		return retry.RetryableError(err)
	})
}
