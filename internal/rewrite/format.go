package rewrite

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	linkMarkupRe = regexp.MustCompile(`\[([^\]]*)\]\((https?://[^)\s]+)\)`)
	boldMarkupRe = regexp.MustCompile(`\*\*([^*]+)\*\*`)

	// the tag subset the delivery channel accepts
	allowedTagRe = regexp.MustCompile(`<b>|</b>|<a href="[^"]*">|</a>`)
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// FormatHTML converts lightweight emphasis markup into the delivery
// tag subset and escapes everything else, then guarantees the message
// opens with a bold title line.
func FormatHTML(text, title string) string {
	text = linkMarkupRe.ReplaceAllString(text, `<a href="$2">$1</a>`)
	text = boldMarkupRe.ReplaceAllString(text, "<b>$1</b>")
	text = escapeOutsideTags(text)

	if !strings.HasPrefix(text, "<b>") {
		text = fmt.Sprintf("<b>%s</b>\n\n%s", htmlEscaper.Replace(title), text)
	}
	return text
}

// escapeOutsideTags escapes &, < and > in every segment that is not
// one of the allowed tags, so stray angle brackets in the model's
// prose cannot break message parsing
func escapeOutsideTags(text string) string {
	var b strings.Builder
	last := 0
	for _, loc := range allowedTagRe.FindAllStringIndex(text, -1) {
		b.WriteString(htmlEscaper.Replace(text[last:loc[0]]))
		b.WriteString(text[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(htmlEscaper.Replace(text[last:]))
	return b.String()
}
