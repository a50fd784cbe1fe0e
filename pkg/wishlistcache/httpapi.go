package wishlistcache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPAPI talks to the wishlist HTTP surface. Mutation responses carry raw
// storage references, so the client re-reads the resolved view afterwards to
// reconcile in the public product id space the cache tracks.
type HTTPAPI struct {
	baseURL string
	client  *http.Client
	token   func() string
}

// NewHTTPAPI builds a client against baseURL. token supplies the current
// bearer token per call so rotation does not require a new client.
func NewHTTPAPI(baseURL string, client *http.Client, token func() string) *HTTPAPI {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		token:   token,
	}
}

type wishlistResponse struct {
	Success  bool `json:"success"`
	Wishlist []struct {
		ProductID int64 `json:"productId"`
	} `json:"wishlist"`
	Message string `json:"message"`
}

func (a *HTTPAPI) Fetch(ctx context.Context) ([]int64, error) {
	return a.fetchResolved(ctx)
}

func (a *HTTPAPI) Add(ctx context.Context, productID int64) ([]int64, error) {
	target := fmt.Sprintf("%s/api/wishlist/%d", a.baseURL, productID)
	if err := a.mutate(ctx, http.MethodPost, target); err != nil {
		return nil, err
	}
	return a.fetchResolved(ctx)
}

func (a *HTTPAPI) Remove(ctx context.Context, productID int64) ([]int64, error) {
	target := fmt.Sprintf("%s/api/wishlist/%d", a.baseURL, productID)
	if err := a.mutate(ctx, http.MethodDelete, target); err != nil {
		return nil, err
	}
	return a.fetchResolved(ctx)
}

func (a *HTTPAPI) mutate(ctx context.Context, method, target string) error {
	resp, err := a.do(ctx, method, target)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (a *HTTPAPI) fetchResolved(ctx context.Context) ([]int64, error) {
	resp, err := a.do(ctx, http.MethodGet, a.baseURL+"/api/wishlist")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var body wishlistResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding wishlist response: %w", err)
	}
	ids := make([]int64, 0, len(body.Wishlist))
	for _, item := range body.Wishlist {
		ids = append(ids, item.ProductID)
	}
	return ids, nil
}

func (a *HTTPAPI) do(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building wishlist request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if a.token != nil {
		if token := a.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling wishlist api: %w", err)
	}
	return resp, nil
}

func apiError(resp *http.Response) error {
	defer io.Copy(io.Discard, resp.Body)
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return fmt.Errorf("wishlist api: %s", body.Message)
	}
	return fmt.Errorf("wishlist api: unexpected status %d", resp.StatusCode)
}
