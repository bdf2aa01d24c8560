// Package twitter talks to the v1.1 REST API: recent-status search and
// status updates, signed with OAuth 1.0a.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
	"golang.org/x/net/html"
)

// Credentials are the OAuth 1.0a consumer and access tokens.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	TokenKey       string
	TokenSecret    string
}

// Status is a posted status. Text is the full text with HTML entities
// decoded.
type Status struct {
	ID   int64
	Text string
}

// APIError is returned when the API answers with an error payload or a
// non-2xx status.
type APIError struct {
	StatusCode int
	Errors     []ErrorItem
}

// ErrorItem is one entry of an API error payload.
type ErrorItem struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("twitter: HTTP %d", e.StatusCode)
	}
	msgs := make([]string, len(e.Errors))
	for i, item := range e.Errors {
		msgs[i] = fmt.Sprintf("%s (code %d)", item.Message, item.Code)
	}
	return fmt.Sprintf("twitter: HTTP %d: %s", e.StatusCode, strings.Join(msgs, "; "))
}

// Client calls the REST API.
type Client struct {
	BaseURL string

	// HTTPClient signs requests. New sets an OAuth1 client.
	HTTPClient *http.Client
}

// New creates a Client that signs every request with creds.
func New(baseURL string, creds Credentials) *Client {
	cfg := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.TokenKey, creds.TokenSecret)

	httpClient := cfg.Client(context.Background(), token)
	httpClient.Timeout = 15 * time.Second

	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: httpClient,
	}
}

type apiStatus struct {
	ID       int64  `json:"id"`
	FullText string `json:"full_text"`
	Text     string `json:"text"`
}

func (s apiStatus) toStatus() Status {
	text := s.FullText
	if text == "" {
		text = s.Text
	}
	return Status{ID: s.ID, Text: CleanText(text)}
}

type searchResponse struct {
	Statuses []apiStatus `json:"statuses"`
	Errors   []ErrorItem `json:"errors"`
}

type updateResponse struct {
	apiStatus
	Errors []ErrorItem `json:"errors"`
}

// Search returns recent statuses matching query, in full-text mode.
func (c *Client) Search(ctx context.Context, query string) ([]Status, error) {
	params := url.Values{
		"q":           {query},
		"result_type": {"recent"},
		"tweet_mode":  {"extended"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint("search/tweets.json")+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var payload searchResponse
	if err := c.do(req, &payload, func() []ErrorItem { return payload.Errors }); err != nil {
		return nil, err
	}

	statuses := make([]Status, len(payload.Statuses))
	for i, s := range payload.Statuses {
		statuses[i] = s.toStatus()
	}
	return statuses, nil
}

// Update posts text as a new status and returns it.
func (c *Client) Update(ctx context.Context, text string) (Status, error) {
	form := url.Values{"status": {text}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint("statuses/update.json"), strings.NewReader(form.Encode()))
	if err != nil {
		return Status{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var payload updateResponse
	if err := c.do(req, &payload, func() []ErrorItem { return payload.Errors }); err != nil {
		return Status{}, err
	}
	return payload.toStatus(), nil
}

// do sends req and decodes the JSON body into payload. errs reads the error
// list of the decoded payload.
func (c *Client) do(req *http.Request, payload any, errs func() []ErrorItem) error {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	decodeErr := json.Unmarshal(body, payload)

	if items := errs(); decodeErr == nil && len(items) > 0 {
		return &APIError{StatusCode: resp.StatusCode, Errors: items}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode}
	}
	if decodeErr != nil {
		return fmt.Errorf("twitter: decode response: %w", decodeErr)
	}
	return nil
}

func (c *Client) endpoint(path string) string {
	return c.BaseURL + "/" + path
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

// CleanText decodes HTML entities and drops any markup.
func CleanText(s string) string {
	if !strings.ContainsAny(s, "&<") {
		return s
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}
