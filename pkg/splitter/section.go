// Package splitter turns cleaned Markdown content into the flat sequence of
// Sections and, after content-specific splitting and coalescing, the final
// Chunks persisted by the store (§4.5).
package splitter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/ksysoev/docindex/pkg/core"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var mdToHTML = goldmark.New(goldmark.WithExtensions(extension.Table))

var htmlToMD = converter.NewConverter(converter.WithPlugins(
	base.NewBasePlugin(),
	commonmark.NewCommonmarkPlugin(),
	table.NewTablePlugin(),
))

var headingLevels = map[string]int{"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6}

// SplitSections converts markdown into the flat Section sequence the content
// splitters and coalescer consume. It renders the Markdown to HTML with
// goldmark, then walks the body's direct children with goquery, classifying
// each as heading/code/table/text (§4.5 "Section splitter").
func SplitSections(markdown string) ([]core.Section, error) {
	var buf bytes.Buffer
	if err := mdToHTML.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("render markdown to html: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return nil, fmt.Errorf("parse rendered html: %w", err)
	}

	var (
		sections   []core.Section
		pathStack  core.SectionPath
		levelStack []int
	)

	doc.Find("body").Children().Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)

		if level, ok := headingLevels[tag]; ok {
			for len(levelStack) > 0 && levelStack[len(levelStack)-1] >= level {
				levelStack = levelStack[:len(levelStack)-1]
				pathStack = pathStack[:len(pathStack)-1]
			}

			text := strings.TrimSpace(s.Text())
			levelStack = append(levelStack, level)
			pathStack = append(pathStack, text)

			sections = append(sections, core.Section{
				Level:   level,
				Path:    clonePath(pathStack),
				Content: []core.SectionPiece{{Type: core.SectionHeading, Text: text}},
			})

			return
		}

		curLevel := 0
		if len(levelStack) > 0 {
			curLevel = levelStack[len(levelStack)-1]
		}

		curPath := clonePath(pathStack)

		switch tag {
		case "pre":
			sections = append(sections, core.Section{
				Level:   curLevel,
				Path:    curPath,
				Content: []core.SectionPiece{{Type: core.SectionCode, Text: renderCodeBlock(s)}},
			})
		case "table":
			sections = append(sections, core.Section{
				Level:   curLevel,
				Path:    curPath,
				Content: []core.SectionPiece{{Type: core.SectionTable, Text: renderTable(s)}},
			})
		default:
			md := renderMarkdown(s)
			if md == "" {
				return
			}

			sections = append(sections, core.Section{
				Level:   curLevel,
				Path:    curPath,
				Content: []core.SectionPiece{{Type: core.SectionText, Text: md}},
			})
		}
	})

	return sections, nil
}

func clonePath(p core.SectionPath) core.SectionPath {
	out := make(core.SectionPath, len(p))
	copy(out, p)

	return out
}

func renderCodeBlock(s *goquery.Selection) string {
	code := s.Find("code").First()

	lang := ""
	if class, ok := code.Attr("class"); ok {
		lang = languageFromClass(class)
	}

	text := code.Text()
	if code.Length() == 0 {
		text = s.Text()
	}

	return "```" + lang + "\n" + strings.Trim(text, "\n") + "\n```"
}

func languageFromClass(class string) string {
	for _, c := range strings.Fields(class) {
		if lang, ok := strings.CutPrefix(c, "language-"); ok {
			return lang
		}
	}

	return ""
}

func renderTable(s *goquery.Selection) string {
	html, err := goquery.OuterHtml(s)
	if err != nil {
		return strings.TrimSpace(s.Text())
	}

	md, err := htmlToMD.ConvertString(html)
	if err != nil {
		return strings.TrimSpace(s.Text())
	}

	return strings.TrimSpace(md)
}

func renderMarkdown(s *goquery.Selection) string {
	html, err := goquery.OuterHtml(s)
	if err != nil {
		return strings.TrimSpace(s.Text())
	}

	md, err := htmlToMD.ConvertString(html)
	if err != nil {
		return strings.TrimSpace(s.Text())
	}

	return strings.TrimSpace(md)
}
