package conv

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions     = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags      = html.CommonFlags | html.HrefTargetBlank
	telegramPolicy = newTelegramPolicy()
)

// newTelegramPolicy allows only the tags Telegram renders,
// https://core.telegram.org/bots/api#html-style. Everything else is
// stripped rather than escaped.
func newTelegramPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("class").OnElements("code")
	return p
}

func MarkdownToTelegramHTML(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	unsafeHTML := markdown.Render(p.Parse(md), renderer)

	return string(telegramPolicy.SanitizeBytes(unsafeHTML))
}
