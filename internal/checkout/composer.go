package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/sukalov/shitsu/pkg/config"
	"github.com/sukalov/shitsu/pkg/enums"
)

const (
	orderHeader  = "ЗАКАЗ"
	customHeader = "ИНДИВИДУАЛЬНЫЙ ЗАКАЗ"
)

// LineInput is one cart line fed into the order message.
type LineInput struct {
	Name     string
	Price    int
	Quantity int
}

// OrderInput is everything needed to compose a checkout hand-off.
type OrderInput struct {
	Lines          []LineInput
	DeliveryMethod enums.DeliveryMethod
	Address        string
}

// ComposeResult is the rendered message plus the deep link to the chat.
// Valid is false when required input is missing; no link is built then.
type ComposeResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Link    string `json:"link,omitempty"`
	Total   int    `json:"total"`
}

// Composer renders order messages and Telegram deep links.
type Composer struct {
	host    string
	handle  string
	printer *message.Printer
}

// NewComposer builds a composer targeting the configured chat.
func NewComposer(cfg config.TelegramConfig) *Composer {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "t.me"
	}
	handle := strings.TrimSpace(strings.TrimPrefix(cfg.Handle, "@"))
	return &Composer{
		host:    host,
		handle:  handle,
		printer: message.NewPrinter(language.Russian),
	}
}

// ComposeOrder renders the full order message. An empty address (after
// trimming) yields an invalid result instead of an error.
func (c *Composer) ComposeOrder(input OrderInput) ComposeResult {
	total := 0
	for _, line := range input.Lines {
		total += line.Price * line.Quantity
	}

	address := sanitize(input.Address)
	if address == "" || len(input.Lines) == 0 || !input.DeliveryMethod.IsValid() {
		return ComposeResult{Valid: false, Total: total}
	}

	var b strings.Builder
	b.WriteString(orderHeader)
	b.WriteString("\n\n")
	for i, line := range input.Lines {
		if i > 0 {
			b.WriteString("\n")
		}
		lineTotal := line.Price * line.Quantity
		fmt.Fprintf(&b, "%s (%d шт.) - %s ₽", sanitize(line.Name), line.Quantity, c.formatAmount(lineTotal))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Доставка: %s\n", input.DeliveryMethod.Label())
	fmt.Fprintf(&b, "Адрес: %s\n", address)
	fmt.Fprintf(&b, "Итого: %s ₽", c.formatAmount(total))

	msg := b.String()
	return ComposeResult{
		Valid:   true,
		Message: msg,
		Link:    c.deepLink(msg),
		Total:   total,
	}
}

// ComposeCustom renders a commission request from a free-form brief.
func (c *Composer) ComposeCustom(brief string) ComposeResult {
	brief = sanitize(brief)
	if brief == "" {
		return ComposeResult{Valid: false}
	}
	msg := customHeader + "\n\n" + brief
	return ComposeResult{
		Valid:   true,
		Message: msg,
		Link:    c.deepLink(msg),
	}
}

func (c *Composer) deepLink(msg string) string {
	return fmt.Sprintf("https://%s/%s?text=%s", c.host, c.handle, encodeComponent(msg))
}

// formatAmount renders the ruble amount with ru-RU digit grouping.
func (c *Composer) formatAmount(amount int) string {
	return c.printer.Sprint(number.Decimal(amount))
}

// sanitize trims the value and strips angle brackets so no markup can be
// injected into the outgoing message.
func sanitize(value string) string {
	value = strings.ReplaceAll(value, "<", "")
	value = strings.ReplaceAll(value, ">", "")
	return strings.TrimSpace(value)
}

// encodeComponent matches JavaScript's encodeURIComponent: spaces become
// %20, never +.
func encodeComponent(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
