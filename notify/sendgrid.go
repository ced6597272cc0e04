package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type SendgridNotifier struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
}

var _ Notifier = (*SendgridNotifier)(nil)

func NewSendgridNotifier(key, appName, fromEmail string) *SendgridNotifier {
	return &SendgridNotifier{
		key:        key,
		from:       sgmail.NewEmail(appName, fromEmail),
		subjPrefix: "[" + appName + "] ",
	}
}

func (n *SendgridNotifier) NotifyFileUploaded(ctx context.Context, recipients []Recipient, msg FileUploaded) error {
	m := n.prepare(recipients, msg)
	if m == nil {
		return nil
	}

	req := sendgrid.GetRequest(n.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("failed to send upload notification: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid rejected upload notification: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

// prepare builds one personalization per recipient so members do not see
// each other's addresses. Recipients without an email are skipped.
func (n *SendgridNotifier) prepare(recipients []Recipient, msg FileUploaded) *sgmail.SGMailV3 {
	m := sgmail.NewV3Mail()
	m.SetFrom(n.from)

	count := 0
	for _, r := range recipients {
		if r.Email == "" {
			continue
		}
		p := sgmail.NewPersonalization()
		p.Subject = n.subjPrefix + msg.Subject()
		p.AddTos(sgmail.NewEmail(r.Name, r.Email))
		m.AddPersonalizations(p)
		count++
	}
	if count == 0 {
		return nil
	}

	m.AddContent(sgmail.NewContent("text/plain", msg.Text()))
	return m
}
