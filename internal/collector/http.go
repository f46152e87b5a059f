package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	devicedomain "github.com/copystack/printledger/internal/device/domain"
)

// maxBodyBytes bounds how much of a status page is read. Printer embedded
// web servers serve small pages; anything bigger is not a counter.
const maxBodyBytes = 1 << 20

// HTTPFetcher scrapes a counter from a printer's embedded web server. The
// body may be a bare number, a JSON blob inside a script tag, or an HTML
// fragment with the number in its text, possibly in a non-UTF-8 charset.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, dev *devicedomain.Device) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, dev.Endpoint, nil)
	if err != nil {
		return 0, &FetchError{Kind: FailureParse, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, &FetchError{Kind: classify(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &FetchError{Kind: FailureHTTP, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, &FetchError{Kind: classify(err), Err: err}
	}

	counter, err := parseCounter(body)
	if err != nil {
		return 0, &FetchError{Kind: FailureParse, Err: err}
	}
	return counter, nil
}

var errNoCounter = errors.New("no counter in response body")

// counterKeys are the JSON field names printers put the lifetime count
// under, in preference order.
var counterKeys = []string{"counter", "total", "life_count", "total_pages", "pages"}

// parseCounter extracts the counter from a response body. It works on raw
// bytes: digits are ASCII, so a non-UTF-8 charset around them is harmless.
func parseCounter(body []byte) (int64, error) {
	trimmed := bytes.TrimSpace(body)
	if n, err := strconv.ParseInt(string(trimmed), 10, 64); err == nil {
		return n, nil
	}

	if n, ok := counterFromJSON(trimmed); ok {
		return n, nil
	}
	if n, ok := counterFromText(trimmed); ok {
		return n, nil
	}
	return 0, errNoCounter
}

// counterFromJSON tries every balanced {...} slice of the body, matching
// JSON objects assigned inside <script> tags.
func counterFromJSON(body []byte) (int64, bool) {
	for start := bytes.IndexByte(body, '{'); start >= 0; {
		end := matchBrace(body, start)
		if end < 0 {
			return 0, false
		}
		var obj map[string]any
		if err := json.Unmarshal(body[start:end+1], &obj); err == nil {
			if n, ok := counterField(obj); ok {
				return n, true
			}
		}
		next := bytes.IndexByte(body[start+1:], '{')
		if next < 0 {
			return 0, false
		}
		start += 1 + next
	}
	return 0, false
}

func counterField(obj map[string]any) (int64, bool) {
	for _, key := range counterKeys {
		switch v := obj[key].(type) {
		case float64:
			return int64(v), true
		case string:
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

func matchBrace(body []byte, start int) int {
	depth := 0
	for i := start; i < len(body); i++ {
		switch body[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// counterFromText strips markup and returns the first run of digits, the
// shape of a counter served as an HTML fragment.
func counterFromText(body []byte) (int64, bool) {
	var digits []byte
	inTag := false
	for _, b := range body {
		switch {
		case b == '<':
			inTag = true
		case b == '>':
			inTag = false
		case inTag:
		case b >= '0' && b <= '9':
			digits = append(digits, b)
		default:
			if len(digits) > 0 {
				n, err := strconv.ParseInt(string(digits), 10, 64)
				return n, err == nil
			}
		}
	}
	if len(digits) > 0 {
		n, err := strconv.ParseInt(string(digits), 10, 64)
		return n, err == nil
	}
	return 0, false
}
