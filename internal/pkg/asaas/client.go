package asaas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AldeiaHub/Aldeia/internal/pkg/env"
)

const (
	defaultProductionBaseURL = "https://api.asaas.com/v3"
	defaultSandboxBaseURL    = "https://api-sandbox.asaas.com/v3"
)

// ErrAllEnvironmentsFailed is returned when every configured environment was
// tried and none produced a usable response or a structured provider error.
var ErrAllEnvironmentsFailed = errors.New("asaas: all environments failed")

// Environment is one of the provider's alternate API base endpoints.
type Environment struct {
	Name    string
	BaseURL string
}

// Client talks to the billing provider across an ordered list of
// environments. The first environment is authoritative; later ones are only
// tried when a failure looks like endpoint misrouting, never to retry a
// structured provider rejection.
type Client struct {
	Environments []Environment
	AccessToken  string

	HTTPClient *http.Client
}

func NewClientFromEnv() *Client {
	return &Client{
		Environments: []Environment{
			{Name: "production", BaseURL: strings.TrimSpace(env.GetEnv("ASAAS_API_URL", defaultProductionBaseURL))},
			{Name: "sandbox", BaseURL: strings.TrimSpace(env.GetEnv("ASAAS_SANDBOX_API_URL", defaultSandboxBaseURL))},
		},
		AccessToken: strings.TrimSpace(env.GetEnv("ASAAS_ACCESS_TOKEN", "")),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// do executes the request against each environment in priority order and
// decodes a successful response into out. It returns the name of the
// environment that answered.
//
// Failure handling is two-tier: routing-like failures (404, non-JSON body)
// move on to the next environment; structured provider errors are terminal
// and surface verbatim.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any, out any) (string, error) {
	if len(c.Environments) == 0 {
		return "", errors.New("asaas: no environments configured")
	}

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return "", fmt.Errorf("asaas: encoding %s payload: %w", path, err)
		}
	}

	var lastStatus int
	for i, environment := range c.Environments {
		last := i == len(c.Environments)-1

		status, respBody, err := c.attempt(ctx, environment, method, path, query, body)
		if err != nil {
			// Transport-level failure: treat like a routing problem.
			if last {
				return environment.Name, fmt.Errorf("%w: %v", ErrAllEnvironmentsFailed, err)
			}
			continue
		}
		lastStatus = status

		if status >= 200 && status < 300 {
			if out != nil {
				if err := json.Unmarshal(respBody, out); err != nil {
					return environment.Name, fmt.Errorf("asaas: decoding %s response: %w", path, err)
				}
			}
			return environment.Name, nil
		}

		apiErr := parseProviderErrors(status, environment.Name, respBody)
		if isRoutingFailure(status, respBody) && !last {
			continue
		}
		if apiErr != nil {
			return environment.Name, apiErr
		}
		if !last {
			continue
		}
	}

	lastEnv := c.Environments[len(c.Environments)-1]
	return lastEnv.Name, fmt.Errorf("%w: last status %d", ErrAllEnvironmentsFailed, lastStatus)
}

func (c *Client) attempt(ctx context.Context, environment Environment, method, path string, query url.Values, body []byte) (int, []byte, error) {
	fullURL := strings.TrimRight(environment.BaseURL, "/") + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("access_token", c.AccessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	return resp.StatusCode, respBody, nil
}

// isRoutingFailure classifies failures that justify trying the next
// environment: the endpoint does not exist there (404) or the body is not
// the JSON the API speaks (reverse proxy error pages and the like).
func isRoutingFailure(status int, body []byte) bool {
	if status == http.StatusNotFound {
		return true
	}
	return !json.Valid(body)
}

func parseProviderErrors(status int, environmentName string, body []byte) *APIError {
	var parsed struct {
		Errors []ProviderError `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Errors) == 0 {
		return nil
	}
	return &APIError{
		StatusCode:  status,
		Environment: environmentName,
		Errors:      parsed.Errors,
	}
}
