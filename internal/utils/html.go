package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML 去掉文本中的 HTML 标签与实体，合并多余空白
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
