package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/ksysoev/docindex/pkg/core"
)

// htmlToMarkdownConverter keeps pipe-syntax tables and fenced code blocks,
// matching the commonmark + table plugin combination used for this kind of
// one-shot HTML-to-Markdown conversion.
var htmlToMarkdownConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// HTMLToMarkdownStep serializes the (sanitized) tree to Markdown. Tables
// keep pipe syntax; code blocks carry the language inferred from
// `class="language-X"`, `class="highlight-source-X"`, `data-language="X"`,
// or — failing those — a chroma-based content sniff (§4.3.7).
func HTMLToMarkdownStep() Step {
	return func(_ context.Context, pc *core.ProcessingContext) error {
		dom, ok := pc.DOM.(*goqueryDOM)
		if !ok {
			return nil
		}

		annotateCodeLanguages(dom)

		html, err := dom.HTML()
		if err != nil {
			return fmt.Errorf("html->markdown: %w", err)
		}

		md, err := htmlToMarkdownConverter.ConvertString(html, converter.WithDomain(pc.Source))
		if err != nil {
			return fmt.Errorf("html->markdown: %w", err)
		}

		pc.Content = []byte(md)
		pc.ContentType = "text/markdown"

		return nil
	}
}

// annotateCodeLanguages fills in a `language-X` class on <code> elements
// inside <pre> that declare no language hint, inferred from content via
// chroma's lexer analysis, so the converter's language-class heuristic still
// has something to read.
func annotateCodeLanguages(dom *goqueryDOM) {
	dom.Selection().Find("pre code").Each(func(_ int, s *goquery.Selection) {
		if hasLanguageHint(s) {
			return
		}

		lexer := lexers.Analyse(s.Text())
		if lexer == nil {
			return
		}

		config := lexer.Config()
		if config == nil || config.Name == "" {
			return
		}

		existing, _ := s.Attr("class")
		s.SetAttr("class", joinClass(existing, "language-"+config.Name))
	})
}

func hasLanguageHint(s *goquery.Selection) bool {
	class, _ := s.Attr("class")
	if strings.Contains(class, "language-") || strings.Contains(class, "highlight-source-") {
		return true
	}

	_, ok := s.Attr("data-language")

	return ok
}

func joinClass(existing, add string) string {
	if existing == "" {
		return add
	}

	return existing + " " + add
}
