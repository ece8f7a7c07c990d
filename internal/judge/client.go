package judge

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrExecutionToken   = errors.New("execution token error")
	ErrExecutionTimeout = errors.New("execution timeout")
	// ErrUnavailable marks a judge that could not be reached or answered
	// with an error status or an unreadable body.
	ErrUnavailable = errors.New("code execution service unavailable")
)

type Config struct {
	BaseURL string
	APIKey  string
	Host    string
	Timeout time.Duration
}

// Client talks to a Judge0-compatible REST API with base64 payloads.
type Client struct {
	baseURL string
	apiKey  string
	host    string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		host:    cfg.Host,
		http:    &http.Client{Timeout: timeout},
	}
}

type submitPayload struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
	Stdin      string `json:"stdin"`
}

type statusInfo struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Submission is a judge status snapshot. Output fields are still base64.
type Submission struct {
	Token         string     `json:"token"`
	Status        statusInfo `json:"status"`
	Stdout        *string    `json:"stdout"`
	Stderr        *string    `json:"stderr"`
	CompileOutput *string    `json:"compile_output"`
}

// Terminal reports whether the judge has finished with the submission
// (anything past "In Queue" and "Processing").
func (s *Submission) Terminal() bool {
	return s != nil && s.Status.ID > 2
}

// Submit queues source for execution and returns the submission token.
func (c *Client) Submit(ctx context.Context, source string, languageID int, stdin string) (string, error) {
	body, err := json.Marshal(submitPayload{
		SourceCode: base64.StdEncoding.EncodeToString([]byte(source)),
		LanguageID: languageID,
		Stdin:      base64.StdEncoding.EncodeToString([]byte(stdin)),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/submissions?base64_encoded=true&wait=false&fields=*", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var out Submission
	if err := c.do(req, &out); err != nil {
		return "", fmt.Errorf("submit: %w", err)
	}
	if out.Token == "" {
		return "", ErrExecutionToken
	}
	return out.Token, nil
}

// Status fetches the current state of a submission.
func (c *Client) Status(ctx context.Context, token string) (*Submission, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/submissions/"+token+"?base64_encoded=true&fields=*", nil)
	if err != nil {
		return nil, err
	}
	var out Submission
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("status %s: %w", token, err)
	}
	return &out, nil
}

func (c *Client) do(req *http.Request, out any) error {
	if c.apiKey != "" {
		req.Header.Set("x-rapidapi-key", c.apiKey)
	}
	if c.host != "" {
		req.Header.Set("x-rapidapi-host", c.host)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: judge responded %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed judge response: %v", ErrUnavailable, err)
	}
	return nil
}

// decode turns a base64 judge field into text; Judge0 wraps long payloads with newlines.
func decode(field *string) string {
	if field == nil || *field == "" {
		return ""
	}
	clean := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, *field)
	b, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return *field
	}
	return string(b)
}
