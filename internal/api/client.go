// Package api implements the REST client for the Hoppin backend.
// It covers exactly the verbs the client consumes: login, register, the two
// trip listings, trip creation, and the matched-flag toggle. All failures
// are reduced to a single human-readable message (see errors.go); callers
// never see transport details.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hoppin-app/hoppin-go/internal/domain"
)

// Client talks to the Hoppin REST API. The zero value is not usable;
// construct one with NewClient.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a Client for the API rooted at baseURL
// (e.g. "http://localhost:8000/api"). A trailing slash on baseURL is
// tolerated. If httpClient is nil, a default client is used.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// Login exchanges credentials for an authenticated User carrying a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (domain.User, error) {
	body := map[string]string{"email": email, "password": password}
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/auth/login/", "", body, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// SignUp registers a new account and returns the authenticated User.
func (c *Client) SignUp(ctx context.Context, reg domain.Registration) (domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/auth/register/", "", reg, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// ListAllTrips fetches every trip in the system. Admin-only on the backend.
func (c *Client) ListAllTrips(ctx context.Context, token string) ([]domain.Trip, error) {
	var trips []domain.Trip
	if err := c.do(ctx, http.MethodGet, "/trips/", token, nil, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// ListMyTrips fetches the trips owned by the authenticated user.
func (c *Client) ListMyTrips(ctx context.Context, token string) ([]domain.Trip, error) {
	var trips []domain.Trip
	if err := c.do(ctx, http.MethodGet, "/trips/my/", token, nil, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// CreateTrip posts a validated draft and returns the canonical Trip the
// backend created, with identifier and owner fields filled in.
func (c *Client) CreateTrip(ctx context.Context, token string, draft domain.TripDraft) (domain.Trip, error) {
	var trip domain.Trip
	if err := c.do(ctx, http.MethodPost, "/trips/", token, draft, &trip); err != nil {
		return domain.Trip{}, err
	}
	return trip, nil
}

// ToggleMatched flips the matched flag of the trip with the given id and
// returns the backend's updated representation of the whole record.
func (c *Client) ToggleMatched(ctx context.Context, token, tripID string) (domain.Trip, error) {
	var trip domain.Trip
	path := fmt.Sprintf("/trips/%s/match/", tripID)
	if err := c.do(ctx, http.MethodPatch, path, token, nil, &trip); err != nil {
		return domain.Trip{}, err
	}
	return trip, nil
}

// do issues one request and decodes the response into out (when out is
// non-nil). Non-2xx responses are converted to *Error via decodeError.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}
