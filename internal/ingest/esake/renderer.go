package esake

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"golang.org/x/net/html"
)

// Renderer loads game pages in headless Chrome. Game pages fill their box
// score tables from javascript, so a plain GET returns empty tables.
type Renderer struct {
	wait    time.Duration
	timeout time.Duration

	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewRenderer starts a browser allocator. wait is how long to let page scripts
// run after the body is visible.
func NewRenderer(wait time.Duration) *Renderer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Renderer{
		wait:     wait,
		timeout:  30*time.Second + wait,
		allocCtx: allocCtx,
		cancel:   cancel,
	}
}

// Close shuts the browser down.
func (r *Renderer) Close() {
	if r.cancel != nil {
		r.cancel()
	}
}

// Render returns the outer HTML of url after scripts have run.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(r.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, r.timeout)
	defer cancel()

	// Stop the tab when the caller gives up.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(r.wait),
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp error: %w", err)
	}
	if htmlContent == "" {
		return "", fmt.Errorf("empty HTML content returned")
	}
	return htmlContent, nil
}

// RenderText renders url and flattens it into game text.
func (r *Renderer) RenderText(ctx context.Context, url string) (string, error) {
	page, err := r.Render(ctx, url)
	if err != nil {
		return "", err
	}
	text, err := FlattenText(page)
	if err != nil {
		return "", err
	}
	log.Printf("[renderer] %s: %d characters of text", url, len(text))
	return text, nil
}

// FlattenText joins every non-empty text node of the page with single spaces.
// Each node is trimmed and has its line breaks removed first.
func FlattenText(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			t := strings.NewReplacer("\r", "", "\n", "").Replace(strings.TrimSpace(n.Data))
			if t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return strings.Join(parts, " "), nil
}
