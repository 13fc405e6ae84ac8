package helpers

import (
	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var markdownEscaper = newMarkdownEscaper()

func newMarkdownEscaper() *escaper {
	return &escaper{special: ".-_*[]()~`>#+=|{}!"}
}

type escaper struct {
	special string
}

func (e *escaper) escape(text string) string {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		for j := 0; j < len(e.special); j++ {
			if text[i] == e.special[j] {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, text[i])
	}
	return string(out)
}

// EscapeMarkdownV2 escapes Telegram MarkdownV2 special characters.
func EscapeMarkdownV2(text string) string {
	return markdownEscaper.escape(text)
}

// FormatPrice renders a price with US thousand separators and a precision
// that scales with magnitude.
func FormatPrice(price float64, escapeMarkdown bool) string {
	decimals := 6
	switch {
	case price >= 1000:
		decimals = 0
	case price > 1.2:
		decimals = 2
	case price < 0.00001:
		decimals = 8
	}

	p := message.NewPrinter(language.English)
	formatted := p.Sprintf("%.*f", decimals, price)

	if escapeMarkdown {
		return EscapeMarkdownV2(formatted)
	}
	return formatted
}

// FormatPercent renders a signed 24h change, e.g. "+2.41%".
func FormatPercent(change float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%+.2f%%", change)
}

// FormatMarketCap renders a market cap as whole units with separators.
func FormatMarketCap(cap float64) string {
	return humanize.CommafWithDigits(cap, 0)
}
