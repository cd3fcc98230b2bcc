package gsheets

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// looksLikeHTML reports whether body is an HTML page (a login wall, an error
// page) rather than a CSV export.
func looksLikeHTML(body []byte) bool {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(body, utf8BOM), " \t\r\n")
	if len(trimmed) > 16 {
		trimmed = trimmed[:16]
	}
	head := strings.ToLower(string(trimmed))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

// pageTitle extracts the <title> of an HTML page for error messages.
func pageTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
