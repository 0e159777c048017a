package middleware

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// goqueryDOM adapts a *goquery.Document to the narrow core.DOM capability so
// the rest of the chain never imports goquery directly (§9 "DOM traversal").
type goqueryDOM struct {
	doc *goquery.Document
}

// newGoqueryDOM parses html into a queryable tree.
func newGoqueryDOM(html string) (*goqueryDOM, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return &goqueryDOM{doc: doc}, nil
}

func (d *goqueryDOM) Find(selector string) []string {
	var out []string

	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})

	return out
}

func (d *goqueryDOM) Remove(selector string) {
	d.doc.Find(selector).Remove()
}

func (d *goqueryDOM) Attr(selector, attr string) (string, bool) {
	return d.doc.Find(selector).First().Attr(attr)
}

func (d *goqueryDOM) HTML() (string, error) {
	html, err := d.doc.Html()
	if err != nil {
		return "", fmt.Errorf("serialize html: %w", err)
	}

	return html, nil
}

// Selection exposes the raw *goquery.Selection for steps that need more than
// the narrow core.DOM capability (link/attribute extraction with structure).
func (d *goqueryDOM) Selection() *goquery.Selection {
	return d.doc.Selection
}
