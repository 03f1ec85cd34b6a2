package transcript

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Vasudevshetty/studysyncs/apperr"
)

const defaultBaseURL = "https://video.google.com/timedtext"

// Fetcher pulls English captions for a YouTube video from the timedtext
// endpoint and flattens them into one plain-text transcript.
type Fetcher struct {
	httpClient *http.Client
	baseURL    string
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

// NewFetcherWithBase exists for tests pointing at a local server.
func NewFetcherWithBase(client *http.Client, baseURL string) *Fetcher {
	return &Fetcher{httpClient: client, baseURL: baseURL}
}

type timedText struct {
	Texts []struct {
		Body string `xml:",chardata"`
	} `xml:"text"`
}

// Fetch returns the transcript text for videoID. A video without
// English captions yields NotFound since the endpoint answers an empty
// document rather than an error status.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) (string, error) {
	if strings.TrimSpace(videoID) == "" {
		return "", apperr.Newf(apperr.InvalidArgument, "video id is required")
	}

	reqURL := fmt.Sprintf("%s?lang=en&v=%s", f.baseURL, url.QueryEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", apperr.New(apperr.UpstreamFailure, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", apperr.New(apperr.UpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", apperr.Newf(apperr.UpstreamFailure,
			"timedtext returned %d: %s", resp.StatusCode, string(body))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.New(apperr.UpstreamFailure, err)
	}

	text, err := Parse(raw)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", apperr.Newf(apperr.NotFound, "no captions for video %s", videoID)
	}
	return text, nil
}

// Parse flattens a timedtext XML document into caption lines joined by
// spaces. Caption bodies carry HTML entities, so each line is unescaped.
func Parse(raw []byte) (string, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return "", nil
	}

	var doc timedText
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return "", apperr.New(apperr.UpstreamFailure, err)
	}

	lines := make([]string, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		line := strings.TrimSpace(html.UnescapeString(t.Body))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, " "), nil
}
