// Package extract applies a source's selector rules to listing and article HTML.
package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/Redoy0/political-violence-monitor/internal/domain"
	"github.com/Redoy0/political-violence-monitor/internal/logger"
)

// minTitleLength is the exclusive lower bound on stub titles. Shorter
// fragments are navigation links and section labels, not headlines.
const minTitleLength = 10

// genericContentSelectors are ranked fallbacks tried after a source's own
// content selector: broad content containers first, then bare paragraphs.
// The longest extracted text wins, which survives selector drift across
// differently-templated news sites without per-site maintenance.
var genericContentSelectors = []string{
	".story-element-text",
	".article-content",
	".news-content",
	".post-content",
	"p",
}

// Extractor turns raw HTML into article stubs and body text.
type Extractor struct {
	logger logger.Interface
}

// New creates an extractor.
func New(log logger.Interface) *Extractor {
	return &Extractor{logger: log}
}

// Stubs extracts candidate articles from a source's listing page.
// A stub is emitted only when a title longer than minTitleLength and a
// resolvable link are both present.
func (e *Extractor) Stubs(source domain.Source, listingHTML []byte) ([]domain.ArticleStub, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(listingHTML))
	if err != nil {
		return nil, fmt.Errorf("parse listing html: %w", err)
	}

	base, err := url.Parse(source.URL)
	if err != nil {
		return nil, fmt.Errorf("parse source url: %w", err)
	}

	var stubs []domain.ArticleStub
	doc.Find(source.Selectors.Articles).Each(func(_ int, item *goquery.Selection) {
		titleEl := item.Find(source.Selectors.Title).First()
		title := strings.TrimSpace(titleEl.Text())

		link, ok := titleEl.Attr("href")
		if !ok && source.Selectors.Link != "" {
			link, _ = item.Find(source.Selectors.Link).Attr("href")
		}
		link = resolveLink(base, link)

		if title == "" || link == "" || utf8.RuneCountInString(title) <= minTitleLength {
			return
		}

		date := ""
		if source.Selectors.Date != "" {
			date = strings.TrimSpace(item.Find(source.Selectors.Date).First().Text())
		}

		stubs = append(stubs, domain.ArticleStub{
			Title:  title,
			Link:   link,
			Date:   date,
			Source: source.Name,
		})
	})

	e.logger.Debug("extracted stubs", "source", source.Name, "count", len(stubs))
	return stubs, nil
}

// Content extracts an article's body text from its page. The source's own
// content selector and each generic fallback are all tried; the longest
// text wins. When nothing beats the headline's own length the title is
// returned, guarding against selectors that only match captions or ads.
func (e *Extractor) Content(source domain.Source, articleHTML []byte, title string) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(articleHTML))
	if err != nil {
		return title
	}

	selectors := make([]string, 0, len(genericContentSelectors)+1)
	if source.Selectors.Content != "" {
		selectors = append(selectors, source.Selectors.Content)
	}
	selectors = append(selectors, genericContentSelectors...)

	var best string
	for _, sel := range selectors {
		var parts []string
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			parts = append(parts, s.Text())
		})
		text := strings.TrimSpace(strings.Join(parts, " "))
		if len(text) > len(best) {
			best = text
		}
	}

	if utf8.RuneCountInString(best) <= utf8.RuneCountInString(title) {
		return title
	}
	return best
}

// resolveLink turns a possibly relative href into an absolute URL against
// the listing page's origin. Returns "" when the href cannot be parsed.
func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
