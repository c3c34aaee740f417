package helpers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Link is a snapshot of one anchor element.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
	// RawHref is the href attribute exactly as written in the page.
	RawHref string `json:"rawHref"`
	Target  string `json:"target"`
}

// HarvestLinks returns one Link for every anchor in the document, in document order. Hrefs
// are resolved against pageURL (or the document's base element, if it has one); an anchor
// without an href gets an empty Href and RawHref.
func HarvestLinks(html, pageURL string) ([]Link, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("could not parse page: %w", err)
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if b, err := base.Parse(strings.TrimSpace(href)); err == nil {
			base = b
		}
	}

	links := make([]Link, 0, doc.Find("a").Length())
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		link := Link{
			Text:   strings.TrimSpace(s.Text()),
			Target: s.AttrOr("target", ""),
		}
		if href, ok := s.Attr("href"); ok {
			link.RawHref = href
			link.Href = resolve(base, href)
		}
		links = append(links, link)
	})
	return links, nil
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
