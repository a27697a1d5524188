package ingest

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

// image extensions the pipeline recognizes but cannot extract text from
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// extractText pulls plain text out of raw document bytes based on the
// source extension. Anything that is not a PDF or an image is treated as
// an HTML page.
func extractText(src Source, data []byte) (string, error) {
	ext := src.extension()
	switch {
	case ext == ".pdf":
		return extractPDFText(data)
	case imageExtensions[ext]:
		return "", fmt.Errorf("image source %s: text extraction is not supported", ext)
	default:
		return extractHTMLText(data), nil
	}
}

// extractPDFText extracts the plain text of every page of a PDF document
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	text, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return normalizeWhitespace(string(text)), nil
}

// extractHTMLText strips tags from an HTML document and returns its visible
// text. Script, style and head content is discarded. Malformed markup is
// tolerated; the tokenizer recovers what it can.
func extractHTMLText(data []byte) string {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return normalizeWhitespace(string(data))
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "head":
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return normalizeWhitespace(sb.String())
}

// normalizeWhitespace collapses all whitespace runs to single spaces
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
