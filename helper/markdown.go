package helper

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// MarkdownRenderer converts topic bodies to sanitized HTML. The output is
// restricted to a fixed allow-list of tags; anything else is stripped. Stores
// never render; only the HTTP layer calls this.
type MarkdownRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewMarkdownRenderer() *MarkdownRenderer {
	policy := bluemonday.NewPolicy()
	policy.AllowElements(
		"p", "br", "strong", "em",
		"ul", "ol", "li",
		"code", "pre", "blockquote",
		"h1", "h2", "h3",
	)
	policy.AllowAttrs("href", "title", "rel").OnElements("a")
	policy.AllowStandardURLs()

	return &MarkdownRenderer{
		md:     goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps())),
		policy: policy,
	}
}

func (r *MarkdownRenderer) Render(text string) (string, error) {
	if text == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return r.policy.Sanitize(buf.String()), nil
}
