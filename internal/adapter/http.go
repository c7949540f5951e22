// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/globalmart/auth-service/internal/logger"
	"github.com/globalmart/auth-service/internal/utils"
	"github.com/globalmart/auth-service/models"
	"github.com/go-resty/resty/v2"
)

const (
	retryCount       = 3
	retryWaitTime    = 200 * time.Millisecond
	retryMaxWaitTime = 2 * time.Second
)

type httpAuthClient struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPAuthClient constructs an HTTP/REST implementation of [AuthClient].
// It normalises and validates the base URL, configures the underlying HTTP
// client with it, and enables retry with backoff for requests that fail on
// the wire or come back 503 (the transient-store signal).
//
// Returns an error if address is empty or cannot be parsed as a valid URL.
func NewHTTPAuthClient(address string, requestTimeout time.Duration, logger *logger.Logger) (AuthClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid auth service address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(retryMaxWaitTime).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() == http.StatusServiceUnavailable
		})

	return &httpAuthClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Register implements [AuthClient].
func (a *httpAuthClient) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var result models.AuthResponse

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/api/auth/register")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("register request failed: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	return result, nil
}

// Login implements [AuthClient].
func (a *httpAuthClient) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var result models.AuthResponse

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/api/auth/login")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request failed: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	return result, nil
}

// Refresh implements [AuthClient].
func (a *httpAuthClient) Refresh(ctx context.Context, sessionToken string) (models.AuthResponse, error) {
	var result models.AuthResponse

	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(sessionToken).
		SetResult(&result).
		Post("/api/auth/refresh")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("refresh request failed: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	return result, nil
}

// Logout implements [AuthClient].
func (a *httpAuthClient) Logout(ctx context.Context, sessionToken string) error {
	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(sessionToken).
		Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}

	return mapHTTPError(resp)
}

// Me implements [AuthClient].
func (a *httpAuthClient) Me(ctx context.Context, accessToken string) (models.User, error) {
	var result models.User

	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&result).
		Get("/api/user/me")
	if err != nil {
		return models.User{}, fmt.Errorf("profile request failed: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return result, nil
}
