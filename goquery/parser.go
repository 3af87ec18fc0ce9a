// Package goquery provides a CSS-selector based implementation of
// docgraph.PageParser. It strips boilerplate containers, locates the main
// content region, and walks the remaining DOM top-down, emitting one
// typed block per structural element in document order.
package goquery

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/docgraph/docgraph"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var _ docgraph.PageParser = (*Parser)(nil)

// boilerplateSelectors remove navigation chrome, scripts and overlays
// before block extraction. Hrefs and breadcrumbs are collected first, so
// links living in the navigation still reach the crawler.
var boilerplateSelectors = []string{
	"script", "style", "noscript", "iframe", "embed", "object",
	"nav", "header", "footer",
	".navbar", ".menu", ".navigation", ".sidebar",
	".header", ".footer", ".cookie", ".modal", ".popup",
	`[role="navigation"]`, `[role="banner"]`, `[role="contentinfo"]`,
}

// contentSelectors locate the main content region, tried in order; the
// full body is the fallback.
var contentSelectors = []string{
	"main", "article",
	".content", ".main-content", "#content", ".article-content",
	`[role="main"]`,
	".help-content", ".documentation-content",
}

// Parser converts raw page markup into metadata, typed blocks and
// discovered hrefs. The zero value is not usable; call NewParser.
type Parser struct {
	// Markers is the ordered special-block marker table.
	Markers []Marker
}

// NewParser creates a Parser with the default marker table.
func NewParser() *Parser {
	return &Parser{Markers: DefaultMarkers()}
}

// Parse converts one page's markup. It never fails on malformed markup:
// the worst case is a page with empty metadata and no blocks.
func (p *Parser) Parse(rawHTML string, sourceURL string) (*docgraph.Page, error) {
	page := &docgraph.Page{URL: sourceURL}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		// html.Parse accepts almost anything; a reader error leaves an
		// empty page rather than failing the document.
		return page, nil
	}

	page.Meta.Title = extractTitle(doc)
	page.Meta.Breadcrumbs = extractBreadcrumbs(doc)
	page.Meta.Section = sectionOf(page.Meta.Breadcrumbs, sourceURL)
	page.Hrefs = extractHrefs(doc, sourceURL)

	for _, sel := range boilerplateSelectors {
		doc.Find(sel).Remove()
	}

	main := findMainContent(doc)
	walker := &blockWalker{markers: p.Markers}
	walker.walk(main)
	page.Blocks = walker.blocks
	page.Meta.ImageCount = walker.images

	return page, nil
}

// extractTitle falls back through the primary heading, the document title
// tag and the social-preview metadata tag.
func extractTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if t, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		return strings.TrimSpace(t)
	}
	return ""
}

// extractBreadcrumbs collects the navigation trail from breadcrumb-classed
// elements and from JSON-LD structured data.
func extractBreadcrumbs(doc *goquery.Document) []string {
	var crumbs []string
	seen := make(map[string]bool)
	add := func(text string) {
		text = strings.TrimSpace(text)
		if text != "" && !seen[text] {
			seen[text] = true
			crumbs = append(crumbs, text)
		}
	}

	doc.Find(`nav[class*="breadcrumb"] a`).Each(func(_ int, s *goquery.Selection) {
		add(s.Text())
	})
	doc.Find(`ol[class*="breadcrumb"] li, ul[class*="breadcrumb"] li`).Each(func(_ int, s *goquery.Selection) {
		add(s.Text())
	})

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var data struct {
			ItemListElement []struct {
				Name string `json:"name"`
			} `json:"itemListElement"`
		}
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return
		}
		for _, item := range data.ItemListElement {
			add(item.Name)
		}
	})

	return crumbs
}

// helpSegment is the bounded help-root marker; a bare "help/" substring
// would also match inside segments like "tickethelp/".
const helpSegment = "/help/"

// sectionOf combines the breadcrumb trail with the first path segment
// after the help root.
func sectionOf(crumbs []string, sourceURL string) string {
	var segment string
	if u, err := url.Parse(sourceURL); err == nil {
		path := "/" + strings.Trim(strings.ToLower(u.Path), "/")
		if i := strings.LastIndex(path, helpSegment); i != -1 {
			segment, _, _ = strings.Cut(path[i+len(helpSegment):], "/")
		}
	}

	var parts []string
	if len(crumbs) > 0 {
		parts = append(parts, strings.Join(crumbs, " > "))
	}
	if segment != "" {
		parts = append(parts, "["+segment+"]")
	}
	return strings.Join(parts, " | ")
}

// extractHrefs collects every anchor target in the full document, resolved
// to absolute URLs. Filtering and normalization happen downstream.
func extractHrefs(doc *goquery.Document, sourceURL string) []string {
	base, err := url.Parse(sourceURL)
	if err != nil {
		base = nil
	}

	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		if base != nil {
			if ref, err := url.Parse(href); err == nil {
				href = base.ResolveReference(ref).String()
			}
		}
		hrefs = append(hrefs, href)
	})
	return hrefs
}

func findMainContent(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}

// blockWalker accumulates blocks while descending through container
// elements in document order.
type blockWalker struct {
	markers []Marker
	blocks  []docgraph.Block
	images  int
}

func (w *blockWalker) walk(container *goquery.Selection) {
	container.Children().Each(func(_ int, s *goquery.Selection) {
		w.element(s)
	})
}

func (w *blockWalker) element(s *goquery.Selection) {
	switch name := goquery.NodeName(s); name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		text := collapsed(s.Text())
		if text == "" {
			return
		}
		if m, ok := matchMarker(w.markers, text); ok {
			w.append(&docgraph.SpecialBlock{Kind: m.Kind, Heading: text, Children: inlineChildren(s)})
			return
		}
		level, _ := strconv.Atoi(name[1:])
		id, _ := s.Attr("id")
		w.append(&docgraph.Header{Level: level, Text: text, ID: id})

	case "p":
		text := collapsed(s.Text())
		if text == "" {
			return
		}
		// Short marker-phrase paragraphs act as headings for the content
		// that follows them.
		if len([]rune(text)) <= 60 {
			if m, ok := matchMarker(w.markers, text); ok {
				w.append(&docgraph.SpecialBlock{Kind: m.Kind, Heading: text, Children: inlineChildren(s)})
				return
			}
		}
		w.append(&docgraph.Paragraph{Children: inlineChildren(s)})

	case "pre":
		code := s.Find("code").First()
		if code.Length() > 0 {
			w.append(&docgraph.CodeBlock{Language: codeLanguage(code), Code: code.Text()})
		} else {
			w.append(&docgraph.CodeBlock{Code: s.Text()})
		}

	case "code":
		if text := s.Text(); strings.TrimSpace(text) != "" {
			w.append(&docgraph.CodeBlock{Language: codeLanguage(s), Code: text})
		}

	case "ul", "ol":
		var items [][]docgraph.Inline
		s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			if item := inlineChildren(li); len(item) > 0 {
				items = append(items, item)
			}
		})
		if len(items) > 0 {
			w.append(&docgraph.List{Ordered: name == "ol", Items: items})
		}

	case "table":
		if t := parseTable(s); t != nil {
			w.append(t)
		}

	case "img":
		src, _ := s.Attr("src")
		alt, _ := s.Attr("alt")
		if src != "" {
			w.images++
			w.append(&docgraph.Image{Src: src, Alt: alt})
		}

	case "div", "section", "article", "main", "figure", "blockquote":
		w.walk(s)
	}
}

func (w *blockWalker) append(b docgraph.Block) {
	w.blocks = append(w.blocks, b)
}

func parseTable(s *goquery.Selection) *docgraph.Table {
	var header []string
	s.Find("tr").First().Find("th").Each(func(_ int, th *goquery.Selection) {
		header = append(header, collapsed(th.Text()))
	})

	var rows [][]string
	s.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			row = append(row, collapsed(td.Text()))
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})

	if len(header) == 0 && len(rows) == 0 {
		return nil
	}
	return &docgraph.Table{Header: header, Rows: rows}
}

// inlineChildren converts an element's contents into inline runs: text
// nodes become Text, anchors become Link with the raw href as target, and
// other elements contribute their own inline runs.
func inlineChildren(s *goquery.Selection) []docgraph.Inline {
	var children []docgraph.Inline
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		node := c.Nodes[0]
		switch {
		case node.Type == html.TextNode:
			if text := collapsedKeepEdges(node.Data); text != "" {
				children = appendText(children, text)
			}
		case node.Type == html.ElementNode && node.Data == "a":
			href, _ := c.Attr("href")
			text := collapsed(c.Text())
			if text == "" && href == "" {
				return
			}
			children = append(children, docgraph.Link{Text: text, Target: href})
		case node.Type == html.ElementNode:
			for _, nested := range inlineChildren(c) {
				if t, ok := nested.(docgraph.Text); ok {
					children = appendText(children, t.Text)
				} else {
					children = append(children, nested)
				}
			}
		}
	})

	// Trim the outermost whitespace the edge-preserving collapse kept.
	if len(children) > 0 {
		if t, ok := children[0].(docgraph.Text); ok {
			if trimmed := strings.TrimLeft(t.Text, " "); trimmed == "" {
				children = children[1:]
			} else {
				children[0] = docgraph.Text{Text: trimmed}
			}
		}
	}
	if n := len(children); n > 0 {
		if t, ok := children[n-1].(docgraph.Text); ok {
			if trimmed := strings.TrimRight(t.Text, " "); trimmed == "" {
				children = children[:n-1]
			} else {
				children[n-1] = docgraph.Text{Text: trimmed}
			}
		}
	}
	return children
}

// appendText merges adjacent text runs.
func appendText(children []docgraph.Inline, text string) []docgraph.Inline {
	if n := len(children); n > 0 {
		if prev, ok := children[n-1].(docgraph.Text); ok {
			merged := prev.Text + text
			if strings.HasSuffix(prev.Text, " ") && strings.HasPrefix(text, " ") {
				merged = prev.Text + strings.TrimLeft(text, " ")
			}
			children[n-1] = docgraph.Text{Text: merged}
			return children
		}
	}
	return append(children, docgraph.Text{Text: text})
}

func codeLanguage(s *goquery.Selection) string {
	if class, ok := s.Attr("class"); ok {
		for _, cls := range strings.Fields(class) {
			if lang, ok := strings.CutPrefix(cls, "language-"); ok {
				return lang
			}
			if lang, ok := strings.CutPrefix(cls, "lang-"); ok {
				return lang
			}
		}
	}
	if lang, ok := s.Attr("data-lang"); ok {
		return lang
	}
	if lang, ok := s.Attr("data-language"); ok {
		return lang
	}
	return ""
}

// collapsed squeezes runs of whitespace into single spaces and trims.
func collapsed(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// collapsedKeepEdges squeezes whitespace but keeps one leading/trailing
// space so word boundaries survive across inline nodes. Pure-whitespace
// input collapses to a single separator space.
func collapsedKeepEdges(s string) string {
	if s == "" {
		return ""
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}
	out := strings.Join(fields, " ")
	if r := s[0]; r == ' ' || r == '\t' || r == '\n' || r == '\r' {
		out = " " + out
	}
	if r := s[len(s)-1]; r == ' ' || r == '\t' || r == '\n' || r == '\r' {
		out += " "
	}
	return out
}
