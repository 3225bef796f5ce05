package provider

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
	"unicode/utf8"
)

const (
	maxResults     = 10
	maxQueryLength = 200
)

type YouTubeClient struct {
	apiKey    string
	searchURL string
	http      *http.Client
}

func NewYouTubeClient(apiKey, searchURL string, timeout time.Duration) *YouTubeClient {
	return &YouTubeClient{
		apiKey:    apiKey,
		searchURL: searchURL,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

type ytSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
	Error json.RawMessage `json:"error"`
}

// Search runs one video search. Results without a video id are dropped.
func (c *YouTubeClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrMissingQuery
	}
	if utf8.RuneCountInString(query) > maxQueryLength {
		return nil, ErrQueryTooLong
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	val := url.Values{}
	val.Set("part", "snippet")
	val.Set("type", "video")
	val.Set("maxResults", fmt.Sprint(maxResults))
	val.Set("q", query)
	val.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+val.Encode(), nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: redactKey(err, c.apiKey)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var body ytSearchResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Details:    map[string]string{"raw": string(raw)},
		}
	}

	hasError := len(body.Error) > 0 && string(body.Error) != "null"
	if resp.StatusCode < 200 || resp.StatusCode > 299 || hasError {
		details := json.RawMessage(raw)
		if hasError {
			details = body.Error
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Details: details}
	}

	out := make([]SearchResult, 0, len(body.Items))
	for _, it := range body.Items {
		if it.ID.VideoID == "" {
			continue
		}
		thumbs := it.Snippet.Thumbnails
		thumb := thumbs.Default.URL
		if thumb == "" {
			thumb = thumbs.Medium.URL
		}
		if thumb == "" {
			thumb = thumbs.High.URL
		}

		out = append(out, SearchResult{
			VideoID:      it.ID.VideoID,
			Title:        it.Snippet.Title,
			Channel:      it.Snippet.ChannelTitle,
			ThumbnailURL: thumb,
		})
	}
	return out, nil
}

// redactKey strips the API key from the request URL that *url.Error embeds
// in its message.
func redactKey(err error, key string) error {
	var ue *url.Error
	if key == "" || !errors.As(err, &ue) {
		return err
	}
	ue.URL = strings.ReplaceAll(ue.URL, url.QueryEscape(key), "REDACTED")
	return err
}
