package imap

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	uploads []string
	fail    bool
}

func (f *fakeStore) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	if f.fail {
		return "", errors.New("storage unavailable")
	}
	f.uploads = append(f.uploads, name)
	return "https://storage.example/signed/" + name, nil
}

func (f *fakeStore) Delete(ctx context.Context, name string) error {
	return nil
}

func buildMessage(from *imap.Address, subject, rawBody string, received time.Time, section *imap.BodySectionName) *imap.Message {
	return &imap.Message{
		SeqNum:       1,
		InternalDate: received,
		Envelope: &imap.Envelope{
			Subject: subject,
			From:    []*imap.Address{from},
		},
		Body: map[*imap.BodySectionName]imap.Literal{
			section: bytes.NewBufferString(rawBody),
		},
	}
}

func plainMessage(seq uint32, from *imap.Address, body string, received time.Time, section *imap.BodySectionName) *imap.Message {
	raw := "Content-Type: text/plain\r\n\r\n" + body
	msg := buildMessage(from, "Update", raw, received, section)
	msg.SeqNum = seq
	return msg
}

// fetchFromSlice serves windows out of an ascending-by-seq message slice and
// records the requested ranges.
func fetchFromSlice(all []*imap.Message, ranges *[][2]uint32) fetchFunc {
	return func(low, high uint32) ([]*imap.Message, error) {
		*ranges = append(*ranges, [2]uint32{low, high})
		return all[low-1 : high], nil
	}
}

func TestWalkMailboxStopsAtCheckpointAndSkipsUntracked(t *testing.T) {
	svc := NewService("imap.example.com", 993, &fakeStore{})

	checkpoint := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	jane := &imap.Address{MailboxName: "jane", HostName: "corp.com"}
	news := &imap.Address{MailboxName: "news", HostName: "spam.com"}

	stored := &imap.BodySectionName{}
	all := []*imap.Message{
		plainMessage(1, jane, "old news", checkpoint.Add(-time.Hour), stored),
		plainMessage(2, jane, "first update", checkpoint.Add(time.Minute), stored),
		plainMessage(3, jane, "second update", checkpoint.Add(2*time.Minute), stored),
		plainMessage(4, news, "weekly digest", checkpoint.Add(3*time.Minute), stored),
	}

	var ranges [][2]uint32
	tracked := map[string]struct{}{"jane@corp.com": {}}
	results, err := svc.walkMailbox(context.Background(), 4, checkpoint, tracked, &imap.BodySectionName{Peek: true}, fetchFromSlice(all, &ranges))
	require.NoError(t, err)

	// The untracked newest message is skipped, not a stop; the walk ends at
	// the first message at or before the checkpoint
	require.Len(t, results, 2)
	assert.Equal(t, "second update\n", results[0].Body)
	assert.Equal(t, "first update\n", results[1].Body)
	assert.Equal(t, [][2]uint32{{1, 4}}, ranges)
}

func TestWalkMailboxContinuesAcrossWindows(t *testing.T) {
	svc := NewService("imap.example.com", 993, &fakeStore{})

	checkpoint := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	jane := &imap.Address{MailboxName: "jane", HostName: "corp.com"}
	stored := &imap.BodySectionName{}

	// Seq 5 lands exactly on the checkpoint; 6..60 are newer
	all := make([]*imap.Message, 60)
	for seq := uint32(1); seq <= 60; seq++ {
		received := checkpoint.Add(time.Duration(int(seq)-5) * time.Minute)
		all[seq-1] = plainMessage(seq, jane, "update", received, stored)
	}

	var ranges [][2]uint32
	tracked := map[string]struct{}{"jane@corp.com": {}}
	results, err := svc.walkMailbox(context.Background(), 60, checkpoint, tracked, &imap.BodySectionName{Peek: true}, fetchFromSlice(all, &ranges))
	require.NoError(t, err)

	// The first window exhausts without hitting the checkpoint; the walk
	// continues into the next window and terminates inside it
	assert.Equal(t, [][2]uint32{{11, 60}, {1, 10}}, ranges)
	require.Len(t, results, 55)
	assert.Equal(t, all[59].InternalDate, results[0].ReceivedAt)
	assert.Equal(t, all[5].InternalDate, results[54].ReceivedAt)
}

func TestWalkMailboxFetchErrorPropagates(t *testing.T) {
	svc := NewService("imap.example.com", 993, &fakeStore{})

	fetch := func(low, high uint32) ([]*imap.Message, error) {
		return nil, errors.New("connection reset")
	}
	_, err := svc.walkMailbox(context.Background(), 10, time.Now(), nil, &imap.BodySectionName{Peek: true}, fetch)
	assert.Error(t, err)
}

func TestProcessMessageTrackedSender(t *testing.T) {
	store := &fakeStore{}
	svc := NewService("imap.example.com", 993, store)

	section := &imap.BodySectionName{}
	raw := "Content-Type: multipart/mixed; boundary=b\r\n" +
		"\r\n" +
		"--b\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"Congratulations, we would like to extend an offer.\r\n" +
		"--b\r\n" +
		"Content-Type: application/pdf\r\n" +
		"Content-Disposition: attachment; filename=\"offer.pdf\"\r\n" +
		"\r\n" +
		"pdf bytes\r\n" +
		"--b--\r\n"

	received := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	from := &imap.Address{MailboxName: "jane", HostName: "corp.com"}
	msg := buildMessage(from, "Your application", raw, received, section)

	tracked := map[string]struct{}{"jane@corp.com": {}}
	email, ok := svc.processMessage(context.Background(), msg, &imap.BodySectionName{Peek: true}, tracked)

	require.True(t, ok)
	assert.Equal(t, "jane@corp.com", email.SenderEmail)
	assert.Equal(t, "Your application", email.Subject)
	assert.Contains(t, email.Body, "extend an offer")
	assert.Equal(t, received, email.ReceivedAt)
	require.Len(t, email.Attachments, 1)
	assert.Equal(t, "offer.pdf", email.Attachments[0].Name)
	assert.Equal(t, "https://storage.example/signed/offer.pdf", email.Attachments[0].URL)
	assert.Equal(t, []string{"offer.pdf"}, store.uploads)
}

func TestProcessMessageUntrackedSenderSkipped(t *testing.T) {
	store := &fakeStore{}
	svc := NewService("imap.example.com", 993, store)

	section := &imap.BodySectionName{}
	raw := "Content-Type: text/plain\r\n\r\nnewsletter"
	from := &imap.Address{MailboxName: "news", HostName: "spam.com"}
	msg := buildMessage(from, "Weekly digest", raw, time.Now(), section)

	tracked := map[string]struct{}{"jane@corp.com": {}}
	_, ok := svc.processMessage(context.Background(), msg, &imap.BodySectionName{Peek: true}, tracked)

	assert.False(t, ok)
	assert.Empty(t, store.uploads)
}

func TestProcessMessageSenderMatchIsCaseInsensitive(t *testing.T) {
	store := &fakeStore{}
	svc := NewService("imap.example.com", 993, store)

	section := &imap.BodySectionName{}
	raw := "Content-Type: text/plain\r\n\r\nupdate"
	from := &imap.Address{MailboxName: "Jane", HostName: "Corp.com"}
	msg := buildMessage(from, "Update", raw, time.Now(), section)

	tracked := map[string]struct{}{"jane@corp.com": {}}
	email, ok := svc.processMessage(context.Background(), msg, &imap.BodySectionName{Peek: true}, tracked)

	require.True(t, ok)
	assert.Equal(t, "Jane@Corp.com", email.SenderEmail)
}

func TestProcessMessageMissingEnvelope(t *testing.T) {
	svc := NewService("imap.example.com", 993, &fakeStore{})

	msg := &imap.Message{SeqNum: 1, InternalDate: time.Now()}
	_, ok := svc.processMessage(context.Background(), msg, &imap.BodySectionName{Peek: true}, map[string]struct{}{})

	assert.False(t, ok)
}

func TestProcessMessageUploadFailureKeepsEmail(t *testing.T) {
	store := &fakeStore{fail: true}
	svc := NewService("imap.example.com", 993, store)

	section := &imap.BodySectionName{}
	raw := "Content-Type: multipart/mixed; boundary=b\r\n" +
		"\r\n" +
		"--b\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"see attached\r\n" +
		"--b\r\n" +
		"Content-Disposition: attachment; filename=\"doc.pdf\"\r\n" +
		"\r\n" +
		"pdf\r\n" +
		"--b--\r\n"

	from := &imap.Address{MailboxName: "jane", HostName: "corp.com"}
	msg := buildMessage(from, "Docs", raw, time.Now(), section)

	tracked := map[string]struct{}{"jane@corp.com": {}}
	email, ok := svc.processMessage(context.Background(), msg, &imap.BodySectionName{Peek: true}, tracked)

	// The email survives; only the failed attachment is dropped
	require.True(t, ok)
	assert.Contains(t, email.Body, "see attached")
	assert.Empty(t, email.Attachments)
}

func TestSenderAddress(t *testing.T) {
	msg := &imap.Message{Envelope: &imap.Envelope{
		From: []*imap.Address{{PersonalName: "Jane Doe", MailboxName: "jane.doe+jobs", HostName: "corp.io"}},
	}}

	sender, ok := senderAddress(msg)
	require.True(t, ok)
	assert.Equal(t, "jane.doe+jobs@corp.io", sender)

	_, ok = senderAddress(&imap.Message{Envelope: &imap.Envelope{}})
	assert.False(t, ok)
}
