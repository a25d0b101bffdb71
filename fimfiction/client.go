package fimfiction

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/flanksource/commons/logger"
)

// DefaultBaseURL is the public Fimfiction site.
const DefaultBaseURL = "https://www.fimfiction.net"

var storyURLRegex = regexp.MustCompile(`^https?://(?:www\.)?fimfiction\.net/story/(\d+)`)
var numericRegex = regexp.MustCompile(`^\d+$`)

// ParseStoryArg accepts a numeric story ID or a story page URL and returns
// the story ID.
func ParseStoryArg(arg string) (string, error) {
	if numericRegex.MatchString(arg) {
		return arg, nil
	}
	if m := storyURLRegex.FindStringSubmatch(arg); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("%q is not a story ID or a fimfiction story URL", arg)
}

type Author struct {
	Name string `json:"name"`
}

// Story is the subset of the story API payload the wrapper cares about.
type Story struct {
	ID        json.Number `json:"id"`
	Title     string      `json:"title"`
	Author    Author      `json:"author"`
	Image     string      `json:"image"`
	FullImage string      `json:"full_image"`
	URL       string      `json:"url"`
}

// HasCover reports whether the story has a cover image on Fimfiction.
func (s Story) HasCover() bool {
	return s.Image != "" || s.FullImage != ""
}

// Client queries the Fimfiction story API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type apiResponse struct {
	Story *Story `json:"story"`
	Error string `json:"error"`
}

// FetchStory returns the story metadata for the given ID. API-level errors
// (unknown story, deleted story) come back in the payload and are surfaced
// as errors.
func (c *Client) FetchStory(ctx context.Context, id string) (*Story, error) {
	url := fmt.Sprintf("%s/api/story.php?story=%s", c.BaseURL, id)
	logger.Debugf("Fetching story metadata from %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query story API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("story API returned %s for story %s", resp.Status, id)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode story API response: %w", err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("story API error for story %s: %s", id, payload.Error)
	}
	if payload.Story == nil {
		return nil, fmt.Errorf("story API response has no story entry for %s", id)
	}

	logger.Debugf("Story %s: %q by %s", id, payload.Story.Title, payload.Story.Author.Name)
	return payload.Story, nil
}
