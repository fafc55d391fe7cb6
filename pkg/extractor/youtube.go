package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"ai-learning-be/internal/pkg/apperr"
)

const (
	transcriptEndpoint = "https://yt-api.p.rapidapi.com/get_transcript"
	transcriptHost     = "yt-api.p.rapidapi.com"

	// Transcript fetches can be slow; metadata scraping is best-effort and
	// gets a much shorter budget.
	transcriptTimeout = 15 * time.Second
	metadataTimeout   = 5 * time.Second
)

// videoIDPattern matches watch URLs, short links, shorts, live and embed URLs.
var (
	videoIDPattern     = regexp.MustCompile(`(?:v=|/v/|/embed/|/shorts/|/live/)([A-Za-z0-9_-]{11})(?:\?|&|$|/)`)
	shortLinkPattern   = regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`)
	titlePattern       = regexp.MustCompile(`<title>(.*?)</title>`)
	uploadDatePattern  = regexp.MustCompile(`"uploadDate":"(.*?)"`)
	channelNamePattern = regexp.MustCompile(`"ownerChannelName":"(.*?)"`)
)

// YouTubeExtractor fetches English transcripts through a transcript API
// proxy, which works from data-center IPs where direct scraping does not.
type YouTubeExtractor struct {
	apiKey     string
	client     *http.Client
	metaClient *http.Client
}

var _ TranscriptExtractor = (*YouTubeExtractor)(nil)

func NewYouTubeExtractor(apiKey string) *YouTubeExtractor {
	return &YouTubeExtractor{
		apiKey:     apiKey,
		client:     &http.Client{Timeout: transcriptTimeout},
		metaClient: &http.Client{Timeout: metadataTimeout},
	}
}

// ExtractVideoID parses the 11-character video ID out of any YouTube URL form.
func ExtractVideoID(rawURL string) (string, error) {
	if m := videoIDPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1], nil
	}
	if m := shortLinkPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1], nil
	}
	return "", apperr.New(apperr.KindValidation, "invalid YouTube URL: could not find a video ID")
}

type videoMetadata struct {
	Title   string
	Date    string
	Channel string
}

// Extract fetches the transcript plus page metadata and returns them as one
// text block. The metadata header gives the model something to answer
// "who made this / when" questions from.
func (e *YouTubeExtractor) Extract(ctx context.Context, rawURL string) (string, error) {
	videoID, err := ExtractVideoID(rawURL)
	if err != nil {
		return "", err
	}

	if e.apiKey == "" {
		return "", apperr.New(apperr.KindUpstream, "transcript API key not configured")
	}

	meta := e.fetchMetadata(ctx, rawURL)

	transcript, err := e.fetchTranscript(ctx, videoID)
	if err != nil {
		return "", err
	}

	header := fmt.Sprintf(
		"SOURCE METADATA (Use this for general info about the source/author):\n- Title: %s\n- Channel/Author: %s\n- Publication/Release Date: %s\n\n",
		meta.Title, meta.Channel, meta.Date,
	)
	return header + "TRANSCRIPT CONTEXT:\n" + transcript, nil
}

// fetchMetadata scrapes title/date/channel off the watch page. Failures fall
// back to placeholders; metadata is never worth failing an ingestion over.
func (e *YouTubeExtractor) fetchMetadata(ctx context.Context, rawURL string) videoMetadata {
	meta := videoMetadata{
		Title:   "YouTube Video",
		Date:    "Unknown Date",
		Channel: "Unknown Channel",
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return meta
	}
	res, err := e.metaClient.Do(req)
	if err != nil {
		return meta
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 2<<20))
	if err != nil {
		return meta
	}
	html := string(body)

	if m := titlePattern.FindStringSubmatch(html); m != nil {
		meta.Title = strings.TrimSpace(strings.TrimSuffix(m[1], " - YouTube"))
	}
	if m := uploadDatePattern.FindStringSubmatch(html); m != nil {
		meta.Date = strings.SplitN(m[1], "T", 2)[0]
	}
	if m := channelNamePattern.FindStringSubmatch(html); m != nil {
		meta.Channel = m[1]
	}
	return meta
}

type transcriptEntry struct {
	Text string `json:"text"`
}

type transcriptResponse struct {
	Transcript []transcriptEntry `json:"transcript"`
	Data       *struct {
		Transcript []transcriptEntry `json:"transcript"`
	} `json:"data"`
}

func (e *YouTubeExtractor) fetchTranscript(ctx context.Context, videoID string) (string, error) {
	endpoint := fmt.Sprintf("%s?id=%s&lang=en", transcriptEndpoint, url.QueryEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "failed to build transcript request", err)
	}
	req.Header.Set("X-RapidAPI-Key", strings.TrimSpace(e.apiKey))
	req.Header.Set("X-RapidAPI-Host", transcriptHost)

	res, err := e.client.Do(req)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "transcript fetch failed", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "failed to read transcript response", err)
	}
	if res.StatusCode != http.StatusOK {
		return "", apperr.Newf(apperr.KindUpstream, "transcript API returned status %d: %s", res.StatusCode, excerptOf(body))
	}

	entries, err := parseTranscriptEntries(body)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, entry := range entries {
		if entry.Text != "" {
			parts = append(parts, entry.Text)
		}
	}
	text := strings.TrimSpace(strings.Join(parts, " "))
	if text == "" {
		return "", apperr.New(apperr.KindValidation, "transcript was found but appeared empty")
	}
	return text, nil
}

// parseTranscriptEntries tolerates the three shapes the transcript API is
// known to return: {"transcript": [...]}, {"data": {"transcript": [...]}}
// and a bare top-level array.
func parseTranscriptEntries(body []byte) ([]transcriptEntry, error) {
	var resp transcriptResponse
	if err := json.Unmarshal(body, &resp); err == nil {
		if len(resp.Transcript) > 0 {
			return resp.Transcript, nil
		}
		if resp.Data != nil && len(resp.Data.Transcript) > 0 {
			return resp.Data.Transcript, nil
		}
	}

	var bare []transcriptEntry
	if err := json.Unmarshal(body, &bare); err == nil && len(bare) > 0 {
		return bare, nil
	}

	return nil, apperr.New(apperr.KindValidation,
		"no transcript found for this video; it might have captions disabled or be in a different language")
}

func excerptOf(body []byte) string {
	const limit = 200
	if len(body) > limit {
		return string(body[:limit])
	}
	return string(body)
}
