package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Hues-Apply/profile-sync/internal/auth"
	"github.com/Hues-Apply/profile-sync/internal/dtos"
)

// Error is a non-2xx response from the Remote Profile API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsStatus reports whether err is an API error with the given HTTP status.
func IsStatus(err error, status int) bool {
	if apiErr, ok := err.(*Error); ok {
		return apiErr.Status == status
	}
	return false
}

// Client talks to the Remote Profile API. The bearer token comes from the
// injected TokenSource on every request; a 401 clears it before the error
// is returned.
type Client struct {
	BaseURL string
	Tokens  auth.TokenSource
	HTTP    *http.Client
}

func NewClient(baseURL string, tokens auth.TokenSource) *Client {
	return &Client{
		BaseURL: baseURL,
		Tokens:  tokens,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// do runs one JSON request. body may be nil; out may be nil when the caller
// only cares about success/failure.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.Tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized {
			// Session is dead; drop the stored tokens so the caller
			// re-authenticates instead of looping on a stale token.
			log.Println("⚠️ API returned 401, clearing stored auth tokens")
			c.Tokens.Clear()
		}
		return &Error{Status: resp.StatusCode, Message: extractMessage(raw, resp.StatusCode)}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}

// extractMessage digs the human-readable error out of an error body. The
// backend is inconsistent about the field name, so try them in order.
func extractMessage(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
		Err     string `json:"error"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.Message != "":
			return body.Message
		case body.Err != "":
			return body.Err
		case body.Detail != "":
			return body.Detail
		}
	}
	return fmt.Sprintf("API error: %d", status)
}

// --- Comprehensive read ---

func (c *Client) GetComprehensiveProfile(ctx context.Context) (*dtos.ComprehensiveProfileResponse, error) {
	var resp dtos.ComprehensiveProfileResponse
	if err := c.do(ctx, http.MethodGet, "/api/profile/comprehensive/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Singleton upserts ---

func (c *Client) UpsertPersonalInfo(ctx context.Context, req dtos.PersonalInfoRequest) error {
	return c.do(ctx, http.MethodPost, "/api/profile/personal/", req, nil)
}

func (c *Client) UpsertCareerProfile(ctx context.Context, req dtos.CareerProfileRequest) error {
	return c.do(ctx, http.MethodPost, "/api/profile/career/", req, nil)
}

func (c *Client) UpsertOpportunitiesInterest(ctx context.Context, req dtos.OpportunitiesInterestRequest) error {
	return c.do(ctx, http.MethodPost, "/api/profile/opportunities-interest/", req, nil)
}

func (c *Client) UpsertRecommendationPriority(ctx context.Context, req dtos.RecommendationPriorityRequest) error {
	return c.do(ctx, http.MethodPost, "/api/profile/recommendation-priority/", req, nil)
}

// --- Education CRUD ---

func (c *Client) CreateEducation(ctx context.Context, req dtos.EducationRequest) (int64, error) {
	var resp dtos.SaveResponse
	if err := c.do(ctx, http.MethodPost, "/api/profile/education/", req, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *Client) UpdateEducation(ctx context.Context, id int64, req dtos.EducationRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/profile/education/%d/", id), req, nil)
}

func (c *Client) DeleteEducation(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/profile/education/%d/", id), nil, nil)
}

// --- Experience CRUD ---

func (c *Client) CreateExperience(ctx context.Context, req dtos.ExperienceRequest) (int64, error) {
	var resp dtos.SaveResponse
	if err := c.do(ctx, http.MethodPost, "/api/profile/experience/", req, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *Client) UpdateExperience(ctx context.Context, id int64, req dtos.ExperienceRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/profile/experience/%d/", id), req, nil)
}

func (c *Client) DeleteExperience(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/profile/experience/%d/", id), nil, nil)
}

// --- Project CRUD ---

func (c *Client) CreateProject(ctx context.Context, req dtos.ProjectRequest) (int64, error) {
	var resp dtos.SaveResponse
	if err := c.do(ctx, http.MethodPost, "/api/profile/project/", req, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *Client) UpdateProject(ctx context.Context, id int64, req dtos.ProjectRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/profile/project/%d/", id), req, nil)
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/profile/project/%d/", id), nil, nil)
}

// --- Opportunity listings ---

func (c *Client) ListOpportunities(ctx context.Context, filter dtos.OpportunityFilter) (*dtos.OpportunityListResponse, error) {
	q := url.Values{}
	if filter.Kind != "" {
		q.Set("kind", filter.Kind)
	}
	if filter.Query != "" {
		q.Set("q", filter.Query)
	}
	if filter.Location != "" {
		q.Set("location", filter.Location)
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(filter.PageSize))
	}

	path := "/api/opportunities/"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp dtos.OpportunityListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetAIMatches returns the backend's ranked matches. The ranking itself
// happens server side; we consume the list as-is.
func (c *Client) GetAIMatches(ctx context.Context) (*dtos.OpportunityListResponse, error) {
	var resp dtos.OpportunityListResponse
	if err := c.do(ctx, http.MethodGet, "/api/opportunities/ai-matches/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
