package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is a Go SDK for the curiosity-quest API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithToken sets the bearer token used on authenticated endpoints
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a new curiosity-quest client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetToken replaces the bearer token, typically after Signup or Login
func (c *Client) SetToken(token string) {
	c.token = token
}

// TopicSummary is the listing shape returned by ListTopics
type TopicSummary struct {
	ID            int    `json:"id"`
	TitleEN       string `json:"title_en"`
	TitleZH       string `json:"title_zh"`
	DescriptionEN string `json:"description_en"`
	DescriptionZH string `json:"description_zh"`
}

// Topic is the full topic record including deeper prompts
type Topic struct {
	TopicSummary
	DeeperPromptsEN []string `json:"deeperPrompts_en"`
	DeeperPromptsZH []string `json:"deeperPrompts_zh"`
}

// User is the account snapshot returned by auth endpoints
type User struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	Points      int      `json:"points"`
	Badges      []string `json:"badges"`
}

// AuthResult carries a session token and the user snapshot
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// RewardResult is the updated points/badge state after a reward
type RewardResult struct {
	Points int      `json:"points"`
	Badges []string `json:"badges"`
}

// APIError is a non-2xx response from the server
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// ListTopics fetches all topic summaries
func (c *Client) ListTopics(ctx context.Context) ([]TopicSummary, error) {
	var result struct {
		Topics []TopicSummary `json:"topics"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/topics", nil, &result); err != nil {
		return nil, err
	}
	return result.Topics, nil
}

// GetTopic fetches a full topic record by id
func (c *Client) GetTopic(ctx context.Context, id int) (*Topic, error) {
	var result struct {
		Topic *Topic `json:"topic"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/topics/%d", id), nil, &result); err != nil {
		return nil, err
	}
	return result.Topic, nil
}

// Signup registers a new account and stores the returned token on the client
func (c *Client) Signup(ctx context.Context, email, password, displayName string) (*AuthResult, error) {
	body := map[string]string{
		"email":       email,
		"password":    password,
		"displayName": displayName,
	}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", body, &result); err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// Login authenticates and stores the returned token on the client
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result); err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// Reward awards points and/or a badge to the authenticated user
func (c *Client) Reward(ctx context.Context, points *int, badge string) (*RewardResult, error) {
	body := map[string]interface{}{}
	if points != nil {
		body["points"] = *points
	}
	if badge != "" {
		body["badge"] = badge
	}
	var result RewardResult
	if err := c.do(ctx, http.MethodPost, "/api/user/reward", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GeneratePrompt fetches a deeper prompt for a topic; lang is "en" or "zh"
func (c *Client) GeneratePrompt(ctx context.Context, topicID int, lang string) (string, error) {
	q := url.Values{}
	q.Set("topicId", strconv.Itoa(topicID))
	if lang != "" {
		q.Set("lang", lang)
	}
	var result struct {
		Prompt string `json:"prompt"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/ai/generate?"+q.Encode(), nil, &result); err != nil {
		return "", err
	}
	return result.Prompt, nil
}

// do executes a request and decodes the JSON response
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = string(data)
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
