package awards

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	// HistoryURL is the award-winner history article.
	HistoryURL = "https://www.nba.com/news/history-mvp-award-winners"

	// UserAgent for requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	renderTimeout = 30 * time.Second
)

// Client fetches the award-winner article. The page is rendered client-side
// and the host blocks plain HTTP clients, so it is loaded in a headless
// browser and the rendered HTML handed to the parser.
type Client struct {
	url      string
	allocCtx context.Context
	cancel   context.CancelFunc
	logger   *log.Logger
}

// NewClient creates an award-page client. An empty url uses HistoryURL.
func NewClient(url string, logger *log.Logger) *Client {
	if url == "" {
		url = HistoryURL
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[awards] ", log.LstdFlags)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Client{
		url:      url,
		allocCtx: allocCtx,
		cancel:   cancel,
		logger:   logger,
	}
}

// Close releases the browser allocator.
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// FetchHistoryHTML renders the award-winner article and returns its HTML.
func (c *Client) FetchHistoryHTML(ctx context.Context) (string, error) {
	browserCtx, cancelBrowser := chromedp.NewContext(c.allocCtx)
	defer cancelBrowser()

	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, renderTimeout)
	defer cancelTimeout()

	// The browser context must descend from the allocator, so caller
	// cancellation is forwarded instead of inherited.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			cancelTimeout()
		case <-done:
		}
	}()

	c.logger.Printf("rendering %s", c.url)

	var html string
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(c.url),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("rendering award page: %w", err)
	}

	return html, nil
}
