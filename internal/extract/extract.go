package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	defaultFetchTimeout = 10 * time.Second
	maxBodyBytes        = 2 << 20 // 2 MiB is plenty for page text
	userAgent           = "InvestShield-Scanner/1.0"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Extractor fetches a web page and reduces it to plain text. It lives outside
// the scoring engine: the engine only ever receives text.
type Extractor struct {
	client *http.Client
	logger *zap.Logger
}

// New creates a page-text extractor. A non-positive timeout uses the default.
func New(timeout time.Duration, logger *zap.Logger) *Extractor {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Extractor{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// TextFromURL fetches the page and returns its visible text with scripts,
// styles, and chrome stripped and whitespace collapsed.
func (e *Extractor) TextFromURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page fetch returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	doc.Find("script, style, noscript, nav, header, footer, iframe").Remove()
	text := doc.Find("body").Text()
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	if text == "" {
		return "", fmt.Errorf("page at %s contains no extractable text", url)
	}

	e.logger.Debug("Page text extracted",
		zap.String("url", url),
		zap.Int("chars", len(text)))

	return text, nil
}
