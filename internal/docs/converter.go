package docs

import (
	"bytes"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// boilerplateTags never carry documentation content.
var boilerplateTags = map[string]bool{
	"nav": true, "header": true, "footer": true, "aside": true,
	"script": true, "style": true, "noscript": true, "iframe": true,
	"form": true, "button": true, "svg": true,
}

// Converter turns HTML pages into Markdown, keeping only the main content.
type Converter struct {
	converter *md.Converter
}

// NewConverter creates a Converter with GitHub-flavored output.
func NewConverter() *Converter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &Converter{converter: converter}
}

// Convert returns the page title and the Markdown for its main content.
func (c *Converter) Convert(page []byte) (title, markdown string, err error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return "", "", err
	}

	title = pageTitle(doc)
	content := mainContent(doc)

	markdown, err = c.converter.ConvertString(content)
	if err != nil {
		return "", "", err
	}
	markdown = tidy(markdown)

	if title == "" {
		title = firstHeading(markdown)
	}
	return title, markdown, nil
}

func pageTitle(doc *html.Node) string {
	if n := find(doc, func(n *html.Node) bool { return n.Data == "title" }); n != nil {
		return strings.TrimSpace(text(n))
	}
	return ""
}

// mainContent renders the first <main>, <article> or role=main element, or
// the body stripped of boilerplate when there is none.
func mainContent(doc *html.Node) string {
	candidates := []func(*html.Node) bool{
		func(n *html.Node) bool { return n.Data == "main" },
		func(n *html.Node) bool { return n.Data == "article" },
		func(n *html.Node) bool { return attr(n, "role") == "main" },
	}
	for _, match := range candidates {
		if n := find(doc, match); n != nil {
			return render(n)
		}
	}

	strip(doc)
	if body := find(doc, func(n *html.Node) bool { return n.Data == "body" }); body != nil {
		return render(body)
	}
	return render(doc)
}

// find returns the first element node in document order that matches.
func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func strip(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && boilerplateTags[c.Data] {
			n.RemoveChild(c)
		} else {
			strip(c)
		}
		c = next
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func render(n *html.Node) string {
	var sb strings.Builder
	_ = html.Render(&sb, n)
	return sb.String()
}

func tidy(markdown string) string {
	lines := strings.Split(markdown, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	markdown = strings.Join(lines, "\n")
	markdown = blankRunRe.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown)
}

func firstHeading(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}
