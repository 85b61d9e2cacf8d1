package contentful

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrStatus = errors.New("contentful: unexpected status")

type Client struct {
	baseURL     string
	spaceID     string
	environment string
	accessToken string
	httpClient  *http.Client
}

func NewClient(baseURL, spaceID, environment, accessToken string) *Client {
	if environment == "" {
		environment = "master"
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		spaceID:     spaceID,
		environment: environment,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type Sys struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	LinkType string `json:"linkType,omitempty"`
}

type Entry struct {
	Sys    Sys                        `json:"sys"`
	Fields map[string]json.RawMessage `json:"fields"`
}

type Link struct {
	Sys Sys `json:"sys"`
}

type File struct {
	URL         string `json:"url"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

type Asset struct {
	Sys    Sys `json:"sys"`
	Fields struct {
		Title string `json:"title"`
		File  File   `json:"file"`
	} `json:"fields"`
}

type EntryCollection struct {
	Total    int     `json:"total"`
	Skip     int     `json:"skip"`
	Limit    int     `json:"limit"`
	Items    []Entry `json:"items"`
	Includes struct {
		Asset []Asset `json:"Asset"`
	} `json:"includes"`
}

func (c *EntryCollection) Asset(id string) (Asset, bool) {
	for _, a := range c.Includes.Asset {
		if a.Sys.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

// APIError is the body Contentful sends with non-2xx responses.
type APIError struct {
	Status    int    `json:"-"`
	Sys       Sys    `json:"sys"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("contentful: %d %s: %s", e.Status, e.Sys.ID, e.Message)
}

func (e *APIError) Unwrap() error {
	return ErrStatus
}

// GetEntries fetches the entries of one content type together with their
// linked assets.
func (c *Client) GetEntries(ctx context.Context, contentType string) (*EntryCollection, error) {
	q := url.Values{}
	q.Set("content_type", contentType)
	q.Set("include", "1")

	endpoint := fmt.Sprintf("%s/spaces/%s/environments/%s/entries?%s",
		c.baseURL, url.PathEscape(c.spaceID), url.PathEscape(c.environment), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		if json.Unmarshal(body, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return nil, apiErr
	}

	var result EntryCollection
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}
