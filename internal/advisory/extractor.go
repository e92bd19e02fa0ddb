package advisory

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Элементы, которые не несут текста advisory
const noiseSelector = "script, style, noscript, template, svg, iframe, nav, header, footer, aside, form, button"

// Блочные элементы, после которых ставится перевод строки
const blockSelector = "p, div, section, article, li, tr, pre, blockquote, h1, h2, h3, h4, h5, h6, dt, dd, table, ul, ol"

var (
	spaceRun     = regexp.MustCompile(`[ \t\x{00a0}]+`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
)

// IsHTML определяет HTML по Content-Type, а без него - по началу тела
func IsHTML(contentType, body string) bool {
	if contentType != "" {
		return strings.Contains(strings.ToLower(contentType), "html")
	}
	head := strings.ToLower(strings.TrimSpace(body))
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.Contains(head, "<html")
}

// ExtractText превращает HTML страницу advisory в обычный текст.
// Берётся <main>/<article>, если они есть, иначе <body>; заголовок страницы идёт первой строкой.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find(noiseSelector).Remove()

	root := doc.Find("main, article").First()
	if root.Length() == 0 {
		root = doc.Find("body")
	}
	if root.Length() == 0 {
		root = doc.Selection
	}

	root.Find("br").ReplaceWithHtml("\n")
	root.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	root.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})

	text := normalizeWhitespace(root.Text())
	if title != "" && !strings.HasPrefix(text, title) {
		text = "Title: " + title + "\n\n" + text
	}
	return text, nil
}

func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = blankLineRun.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
