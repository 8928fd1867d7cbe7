package smtp

import (
	"bytes"
	"fmt"
	"io"
	netsmtp "net/smtp"
	"time"

	"github.com/emersion/go-message/mail"
)

// Attachment is a file to attach to an outgoing message.
type Attachment struct {
	Name string
	Data []byte
}

// Message is an outgoing email.
type Message struct {
	From        string
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Sender sends email through an SMTP submission endpoint with PLAIN auth.
type Sender struct {
	host string
	port int
}

// NewSender creates a new SMTP sender
func NewSender(host string, port int) *Sender {
	return &Sender{host: host, port: port}
}

// Send builds a MIME message and submits it. The account doubles as the
// envelope sender.
func (s *Sender) Send(account, password string, msg *Message) error {
	raw, err := buildMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := netsmtp.PlainAuth("", account, password, s.host)
	if err := netsmtp.SendMail(addr, auth, account, []string{msg.To}, raw); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func buildMessage(msg *Message) ([]byte, error) {
	var b bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Address: msg.From}})
	h.SetAddressList("To", []*mail.Address{{Address: msg.To}})
	h.SetSubject(msg.Subject)

	mw, err := mail.CreateWriter(&b, h)
	if err != nil {
		return nil, err
	}

	tw, err := mw.CreateInline()
	if err != nil {
		return nil, err
	}
	var th mail.InlineHeader
	th.Set("Content-Type", "text/plain; charset=utf-8")
	pw, err := tw.CreatePart(th)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(pw, msg.Body); err != nil {
		return nil, err
	}
	pw.Close()
	tw.Close()

	for _, att := range msg.Attachments {
		var ah mail.AttachmentHeader
		ah.Set("Content-Type", "application/octet-stream")
		ah.SetFilename(att.Name)
		aw, err := mw.CreateAttachment(ah)
		if err != nil {
			return nil, err
		}
		if _, err := aw.Write(att.Data); err != nil {
			aw.Close()
			return nil, err
		}
		aw.Close()
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
