package imap

import (
	"strings"
	"testing"

	"github.com/emersion/go-message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseEntity(t *testing.T, raw string) *message.Entity {
	t.Helper()
	entity, err := message.Read(strings.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		require.NoError(t, err)
	}
	return entity
}

func TestExtractContentPlainText(t *testing.T) {
	raw := "Content-Type: text/plain\r\n" +
		"\r\n" +
		"We received your application."

	body, attachments := ExtractContent(parseEntity(t, raw))

	assert.Equal(t, "We received your application.\n", body)
	assert.Empty(t, attachments)
}

func TestExtractContentIgnoresNonTextSinglePart(t *testing.T) {
	raw := "Content-Type: text/html\r\n" +
		"\r\n" +
		"<p>hello</p>"

	body, attachments := ExtractContent(parseEntity(t, raw))

	assert.Empty(t, body)
	assert.Empty(t, attachments)
}

func TestExtractContentMultipartWithAttachment(t *testing.T) {
	raw := "Content-Type: multipart/mixed; boundary=outer\r\n" +
		"\r\n" +
		"--outer\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"Interview scheduled for Monday.\r\n" +
		"--outer\r\n" +
		"Content-Type: application/pdf\r\n" +
		"Content-Disposition: attachment; filename=\"offer letter.pdf\"\r\n" +
		"\r\n" +
		"%PDF-1.4 fake\r\n" +
		"--outer--\r\n"

	body, attachments := ExtractContent(parseEntity(t, raw))

	assert.Equal(t, "Interview scheduled for Monday.\n", body)
	require.Len(t, attachments, 1)
	// Whitespace is stripped so the name can be used as a storage key
	assert.Equal(t, "offerletter.pdf", attachments[0].Name)
	assert.Equal(t, "%PDF-1.4 fake", string(attachments[0].Data))
}

func TestExtractContentAttachmentWithoutFilename(t *testing.T) {
	raw := "Content-Type: multipart/mixed; boundary=outer\r\n" +
		"\r\n" +
		"--outer\r\n" +
		"Content-Type: application/octet-stream\r\n" +
		"Content-Disposition: attachment\r\n" +
		"\r\n" +
		"data\r\n" +
		"--outer--\r\n"

	_, attachments := ExtractContent(parseEntity(t, raw))

	require.Len(t, attachments, 1)
	assert.Equal(t, "unknown", attachments[0].Name)
}

func TestExtractContentAttachmentDispositionWins(t *testing.T) {
	// A text/plain part marked as an attachment is an attachment, not body
	raw := "Content-Type: multipart/mixed; boundary=outer\r\n" +
		"\r\n" +
		"--outer\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Disposition: attachment; filename=\"notes.txt\"\r\n" +
		"\r\n" +
		"attached notes\r\n" +
		"--outer--\r\n"

	body, attachments := ExtractContent(parseEntity(t, raw))

	assert.Empty(t, body)
	require.Len(t, attachments, 1)
	assert.Equal(t, "notes.txt", attachments[0].Name)
}

func TestExtractContentDescendsIntoNestedMultipart(t *testing.T) {
	raw := "Content-Type: multipart/mixed; boundary=outer\r\n" +
		"\r\n" +
		"--outer\r\n" +
		"Content-Type: multipart/alternative; boundary=inner\r\n" +
		"\r\n" +
		"--inner\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"inner text\r\n" +
		"--inner--\r\n" +
		"--outer\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"outer text\r\n" +
		"--outer--\r\n"

	body, _ := ExtractContent(parseEntity(t, raw))

	// The outer level is consumed before descending
	assert.Equal(t, "outer text\ninner text\n", body)
}

func TestExtractContentOnlyFirstNestedContainerIsWalked(t *testing.T) {
	raw := "Content-Type: multipart/mixed; boundary=outer\r\n" +
		"\r\n" +
		"--outer\r\n" +
		"Content-Type: multipart/alternative; boundary=one\r\n" +
		"\r\n" +
		"--one\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"first nested\r\n" +
		"--one--\r\n" +
		"--outer\r\n" +
		"Content-Type: multipart/alternative; boundary=two\r\n" +
		"\r\n" +
		"--two\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"second nested\r\n" +
		"--two--\r\n" +
		"--outer--\r\n"

	body, _ := ExtractContent(parseEntity(t, raw))

	assert.Contains(t, body, "first nested")
	assert.NotContains(t, body, "second nested")
}

func TestExtractContentDecodesBase64Parts(t *testing.T) {
	raw := "Content-Type: multipart/mixed; boundary=outer\r\n" +
		"\r\n" +
		"--outer\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Transfer-Encoding: base64\r\n" +
		"\r\n" +
		"aGVsbG8gd29ybGQ=\r\n" +
		"--outer--\r\n"

	body, _ := ExtractContent(parseEntity(t, raw))

	assert.Equal(t, "hello world\n", body)
}
