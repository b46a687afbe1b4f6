package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPProvider implements Provider against the hosted identity provider's
// REST API. It holds a single http.Client shared across requests.
type HTTPProvider struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

// NewHTTPProvider creates an HTTPProvider for the provider at baseURL.
// serviceKey authorizes admin endpoints (profile lookup) and may be empty
// when the provider does not require one.
func NewHTTPProvider(baseURL, serviceKey string) *HTTPProvider {
	return &HTTPProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// providerUser is the provider's wire representation of an account.
type providerUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	ConfirmedAt string `json:"confirmed_at"`
	Metadata    struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	} `json:"user_metadata"`
}

// providerError is the provider's wire representation of a failure.
type providerError struct {
	Msg         string `json:"msg"`
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

func (e providerError) message() string {
	switch {
	case e.Description != "":
		return e.Description
	case e.Msg != "":
		return e.Msg
	default:
		return e.Error
	}
}

// SignUp registers an account with the provider. A response without a
// confirmation timestamp means the provider is holding the session until the
// email is verified, reported via SignupResult.Pending.
func (p *HTTPProvider) SignUp(ctx context.Context, email, password, displayName string) (*SignupResult, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"name": displayName},
	}

	status, raw, err := p.post(ctx, "/signup", body)
	if err != nil {
		return nil, fmt.Errorf("calling provider signup: %w", err)
	}

	if status != http.StatusOK && status != http.StatusCreated {
		var perr providerError
		_ = json.Unmarshal(raw, &perr)
		if msg := perr.message(); msg != "" {
			return nil, fmt.Errorf("%w: %s", ErrSignupFailed, msg)
		}
		return nil, ErrSignupFailed
	}

	var user providerUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decoding provider signup response: %w", err)
	}

	return &SignupResult{
		SubjectID: user.ID,
		Email:     user.Email,
		Pending:   user.ConfirmedAt == "",
	}, nil
}

// SignIn exchanges credentials via the provider's password grant. A rejection
// whose detail signals a pending email confirmation maps to
// ErrEmailNotConfirmed; every other rejection collapses to
// ErrInvalidCredentials.
func (p *HTTPProvider) SignIn(ctx context.Context, email, password string) (*Principal, error) {
	body := map[string]string{"email": email, "password": password}

	status, raw, err := p.post(ctx, "/token?grant_type=password", body)
	if err != nil {
		return nil, fmt.Errorf("calling provider token endpoint: %w", err)
	}

	if status != http.StatusOK {
		var perr providerError
		_ = json.Unmarshal(raw, &perr)
		if strings.Contains(strings.ToLower(perr.message()), "confirm") {
			return nil, ErrEmailNotConfirmed
		}
		return nil, ErrInvalidCredentials
	}

	var grant struct {
		User providerUser `json:"user"`
	}
	if err := json.Unmarshal(raw, &grant); err != nil {
		return nil, fmt.Errorf("decoding provider token response: %w", err)
	}
	if grant.User.ID == "" {
		return nil, ErrInvalidCredentials
	}

	return &Principal{
		SubjectID: grant.User.ID,
		Email:     grant.User.Email,
		Role:      ParseRole(grant.User.Role),
	}, nil
}

// GetProfile fetches the subject's profile via the provider's admin API.
func (p *HTTPProvider) GetProfile(ctx context.Context, subjectID string) (*Profile, error) {
	endpoint := p.baseURL + "/admin/users/" + url.PathEscape(subjectID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building profile request: %w", err)
	}
	if p.serviceKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.serviceKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling provider admin API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned status %d", ErrLookupFailed, resp.StatusCode)
	}

	var user providerUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decoding provider user: %w", err)
	}

	return &Profile{
		DisplayName: user.Metadata.Name,
		Phone:       user.Metadata.Phone,
		Role:        ParseRole(user.Role),
	}, nil
}

// post sends a JSON body to the provider and returns the status and raw
// response body.
func (p *HTTPProvider) post(ctx context.Context, path string, body any) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.serviceKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.serviceKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, fmt.Errorf("reading response body: %w", err)
	}

	return resp.StatusCode, raw, nil
}
