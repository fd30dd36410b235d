// Package rewrite turns a stored content item into channel-ready
// Persian copy with the configured signature footer.
package rewrite

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nikavisa/visaflow/internal/llm"
	"github.com/nikavisa/visaflow/internal/model"
)

// Rewriter rephrases items for delivery. Footer rotation is
// round-robin keyed by the posted-log length, so a re-run before any
// new post composes the identical message.
type Rewriter struct {
	provider llm.Provider
	footers  []string
	verbose  bool
}

// New creates a rewriter
func New(provider llm.Provider, footers []string, verbose bool) *Rewriter {
	return &Rewriter{
		provider: provider,
		footers:  footers,
		verbose:  verbose,
	}
}

// Rewrite rephrases the item into engaging Persian with a bold
// headline, hashtags and a rotating footer. A provider failure never
// fails the caller: the item falls back to its stored title and
// content with the same footer.
func (r *Rewriter) Rewrite(ctx context.Context, item *model.ContentItem, postedCount int) string {
	footer := r.footerFor(postedCount)

	prompt := fmt.Sprintf(`متن زیر مربوط به تحصیل یا مهاجرت است. آن را به فارسی روان و جذاب خلاصه و بازنویسی کن.
در ابتدای پیام، یک تیتر کوتاه و توصیفی قرار بده که باید درون تگ HTML <b> </b> باشد (برای بولد شدن در تلگرام).
در انتهای پیام سه هشتگ مرتبط اضافه کن (به فارسی).
سپس جمله زیر را به عنوان امضای انتهایی اضافه کن:
%s

عنوان: %s
متن: %s`, footer, item.Title, item.Content)

	resp, err := r.provider.Complete(ctx, llm.CompletionRequest{Prompt: prompt})
	if err != nil || strings.TrimSpace(resp.Text) == "" {
		if err != nil {
			fmt.Fprintf(os.Stderr, "rephrase failed, using stored text: %v\n", err)
		}
		return fallbackMessage(item, footer)
	}

	text := strings.TrimSpace(resp.Text)
	if !strings.HasPrefix(text, "<b>") {
		text = fmt.Sprintf("<b>%s</b>\n\n%s", item.Title, text)
	}
	return text
}

// footerFor returns the footer for the nth post since the log began
func (r *Rewriter) footerFor(postedCount int) string {
	if len(r.footers) == 0 {
		return ""
	}
	return r.footers[postedCount%len(r.footers)]
}

func fallbackMessage(item *model.ContentItem, footer string) string {
	msg := fmt.Sprintf("<b>%s</b>\n\n%s", item.Title, item.Content)
	if footer != "" {
		msg += "\n\n" + footer
	}
	return msg
}
