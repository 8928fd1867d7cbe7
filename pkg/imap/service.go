package imap

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"snowmail-backend/internal/inbox/domain"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message"
)

// fetchWindow is the number of messages fetched per round trip while walking
// the mailbox backwards.
const fetchWindow = 50

var senderRegexp = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// Service scans an IMAP mailbox for application-related messages. It
// implements domain.MailboxScanner.
type Service struct {
	host  string
	port  int
	store domain.AttachmentStore
}

// NewService creates a new IMAP scanner backed by the given attachment store.
func NewService(host string, port int, store domain.AttachmentStore) *Service {
	return &Service{host: host, port: port, store: store}
}

// Scan logs into the mailbox and walks INBOX newest-first, stopping at the
// first message not newer than checkpoint. Messages from tracked senders are
// parsed and their attachments uploaded; everything else is skipped cheaply
// on envelope data alone. Results come back newest-first.
func (s *Service) Scan(ctx context.Context, account, password string, checkpoint time.Time, trackedSenders []string) ([]domain.ScannedEmail, error) {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	c, err := client.DialTLS(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMailboxConnection, err)
	}
	defer c.Logout()

	if err := c.Login(account, password); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMailboxAuth, err)
	}

	mbox, err := c.Select("INBOX", true)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select INBOX: %v", domain.ErrMailboxConnection, err)
	}
	if mbox.Messages == 0 {
		return nil, nil
	}

	tracked := make(map[string]struct{}, len(trackedSenders))
	for _, sender := range trackedSenders {
		tracked[strings.ToLower(sender)] = struct{}{}
	}

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchEnvelope, imap.FetchInternalDate, section.FetchItem()}

	fetch := func(low, high uint32) ([]*imap.Message, error) {
		seqset := new(imap.SeqSet)
		seqset.AddRange(low, high)

		messages := make(chan *imap.Message, fetchWindow)
		done := make(chan error, 1)
		go func() {
			done <- c.Fetch(seqset, items, messages)
		}()

		var batch []*imap.Message
		for msg := range messages {
			batch = append(batch, msg)
		}
		if err := <-done; err != nil {
			return nil, fmt.Errorf("%w: fetch failed: %v", domain.ErrMailboxConnection, err)
		}
		return batch, nil
	}

	return s.walkMailbox(ctx, mbox.Messages, checkpoint, tracked, section, fetch)
}

// fetchFunc fetches one window of messages by ascending sequence number range.
type fetchFunc func(low, high uint32) ([]*imap.Message, error)

// walkMailbox enumerates the mailbox newest-first in fetchWindow-sized
// ranges. Within each batch it walks backwards so the newest message comes
// first, collects tracked messages and terminates at the first message not
// newer than checkpoint. Untracked messages are skipped, not treated as a
// stop.
func (s *Service) walkMailbox(ctx context.Context, total uint32, checkpoint time.Time, tracked map[string]struct{}, section *imap.BodySectionName, fetch fetchFunc) ([]domain.ScannedEmail, error) {
	var results []domain.ScannedEmail
	high := total
	for {
		low := uint32(1)
		if high > fetchWindow {
			low = high - fetchWindow + 1
		}

		batch, err := fetch(low, high)
		if err != nil {
			return nil, err
		}

		for i := len(batch) - 1; i >= 0; i-- {
			msg := batch[i]
			if !msg.InternalDate.After(checkpoint) {
				return results, nil
			}

			email, ok := s.processMessage(ctx, msg, section, tracked)
			if ok {
				results = append(results, email)
			}
		}

		if low == 1 {
			break
		}
		high = low - 1
	}

	return results, nil
}

// processMessage turns one fetched message into a ScannedEmail. The second
// return value is false when the message is untracked or unparseable.
func (s *Service) processMessage(ctx context.Context, msg *imap.Message, section *imap.BodySectionName, tracked map[string]struct{}) (domain.ScannedEmail, bool) {
	sender, ok := senderAddress(msg)
	if !ok {
		return domain.ScannedEmail{}, false
	}
	if _, found := tracked[strings.ToLower(sender)]; !found {
		return domain.ScannedEmail{}, false
	}

	r := msg.GetBody(section)
	if r == nil {
		log.Printf("[MailboxScanner] Message %d has no body section", msg.SeqNum)
		return domain.ScannedEmail{}, false
	}

	entity, err := message.Read(r)
	if err != nil && !message.IsUnknownCharset(err) {
		log.Printf("[MailboxScanner] Failed to parse message %d: %v", msg.SeqNum, err)
		return domain.ScannedEmail{}, false
	}

	body, parts := ExtractContent(entity)

	var attachments []domain.ScannedAttachment
	for _, part := range parts {
		url, err := s.store.Upload(ctx, part.Name, bytes.NewReader(part.Data))
		if err != nil {
			log.Printf("[MailboxScanner] Failed to upload attachment %q: %v", part.Name, err)
			continue
		}
		attachments = append(attachments, domain.ScannedAttachment{Name: part.Name, URL: url})
	}

	return domain.ScannedEmail{
		SenderEmail: sender,
		Subject:     msg.Envelope.Subject,
		Body:        body,
		Attachments: attachments,
		ReceivedAt:  msg.InternalDate,
	}, true
}

// senderAddress extracts the sender email from the envelope. The address is
// re-matched against an email pattern so display-name noise never leaks into
// sender comparisons.
func senderAddress(msg *imap.Message) (string, bool) {
	if msg.Envelope == nil || len(msg.Envelope.From) == 0 {
		return "", false
	}
	from := msg.Envelope.From[0]
	email := senderRegexp.FindString(from.Address())
	if email == "" {
		return "", false
	}
	return email, true
}
