package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailOptions struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// EmailResult captures the delivery outcome. Dispatch never propagates an
// error to the caller; failures live here.
type EmailResult struct {
	Success   bool
	MessageID string
	Err       error
}

type EmailDispatcher interface {
	SendEmail(opts EmailOptions) EmailResult
}

// SendGridDispatcher sends through the SendGrid v3 API.
type SendGridDispatcher struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func NewSendGridDispatcher(apiKey, from, fromName string) *SendGridDispatcher {
	d := &SendGridDispatcher{from: from, fromName: fromName}
	if apiKey == "" {
		log.Println("⚠️  SendGrid API key not set, invitation emails will not be delivered")
		return d
	}
	d.client = sendgrid.NewSendClient(apiKey)
	return d
}

func (d *SendGridDispatcher) SendEmail(opts EmailOptions) EmailResult {
	if d.client == nil {
		return EmailResult{Err: errors.New("sendgrid api key not configured")}
	}

	text := opts.Text
	if text == "" {
		text = StripHTML(opts.HTML)
	}

	from := mail.NewEmail(d.fromName, d.from)
	to := mail.NewEmail("", opts.To)
	message := mail.NewSingleEmail(from, opts.Subject, to, text, opts.HTML)

	resp, err := d.client.Send(message)
	if err != nil {
		log.Printf("❌ Email send error for %s: %v", opts.To, err)
		return EmailResult{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("⚠️  SendGrid returned status %d for %s", resp.StatusCode, opts.To)
		return EmailResult{Err: fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, resp.Body)}
	}

	var messageID string
	if ids := resp.Headers["X-Message-Id"]; len(ids) > 0 {
		messageID = ids[0]
	}
	log.Printf("✅ Email sent to %s", opts.To)
	return EmailResult{Success: true, MessageID: messageID}
}

var (
	brRe    = regexp.MustCompile(`(?i)<br\s*/?>`)
	pRe     = regexp.MustCompile(`(?i)<p[^>]*>`)
	liRe    = regexp.MustCompile(`(?i)<li[^>]*>`)
	tagRe   = regexp.MustCompile(`<[^>]*>`)
	blankRe = regexp.MustCompile(`\n\s*\n`)
)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// StripHTML derives a plain-text body from an HTML one: line breaks for
// block and list elements, tags removed, common entities decoded.
func StripHTML(html string) string {
	text := brRe.ReplaceAllString(html, "\n")
	text = pRe.ReplaceAllString(text, "\n")
	text = liRe.ReplaceAllString(text, "\n- ")
	text = tagRe.ReplaceAllString(text, "")
	text = entityReplacer.Replace(text)
	text = blankRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
