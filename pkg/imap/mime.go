package imap

import (
	"bytes"
	"io"
	"log"
	"regexp"
	"strings"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
)

// AttachmentPart is an attachment lifted out of a MIME tree, already decoded
// from its transfer encoding.
type AttachmentPart struct {
	Name string
	Data []byte
}

var filenameWhitespace = regexp.MustCompile(`\s+`)

// ExtractContent walks a parsed message and collects its plain-text body and
// attachments. Multipart containers are walked one level at a time: every
// part of the current level is consumed, and the first nested multipart part
// encountered becomes the next level. Text from multiple parts is
// concatenated with newline separators. A part that fails to decode is
// logged and skipped; it never aborts the message.
func ExtractContent(entity *message.Entity) (string, []AttachmentPart) {
	var body strings.Builder
	var attachments []AttachmentPart

	current := entity
	for current != nil {
		mr := current.MultipartReader()
		if mr == nil {
			mediaType, _, _ := current.Header.ContentType()
			if mediaType == "text/plain" {
				data, err := io.ReadAll(current.Body)
				if err != nil {
					log.Printf("[MimeWalker] Failed to read text part: %v", err)
				} else {
					body.Write(data)
					body.WriteString("\n")
				}
			}
			break
		}

		var nested *message.Entity
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil && !message.IsUnknownCharset(err) {
				log.Printf("[MimeWalker] Failed to read next part: %v", err)
				break
			}

			disposition, dispParams, _ := part.Header.ContentDisposition()
			mediaType, typeParams, _ := part.Header.ContentType()

			switch {
			case strings.EqualFold(disposition, "attachment"):
				data, err := io.ReadAll(part.Body)
				if err != nil {
					log.Printf("[MimeWalker] Failed to read attachment %q: %v", dispParams["filename"], err)
					continue
				}
				attachments = append(attachments, AttachmentPart{
					Name: attachmentName(dispParams, typeParams),
					Data: data,
				})
			case mediaType == "text/plain":
				data, err := io.ReadAll(part.Body)
				if err != nil {
					log.Printf("[MimeWalker] Failed to read text part: %v", err)
					continue
				}
				body.Write(data)
				body.WriteString("\n")
			case strings.HasPrefix(mediaType, "multipart/"):
				if nested != nil {
					continue
				}
				raw, err := io.ReadAll(part.Body)
				if err != nil {
					log.Printf("[MimeWalker] Failed to buffer nested multipart: %v", err)
					continue
				}
				inner, err := message.New(part.Header, bytes.NewReader(raw))
				if err != nil && !message.IsUnknownCharset(err) {
					log.Printf("[MimeWalker] Failed to parse nested multipart: %v", err)
					continue
				}
				nested = inner
			}
		}

		current = nested
	}

	return body.String(), attachments
}

// attachmentName resolves an attachment filename from its headers. Whitespace
// is stripped so the name can double as a storage object key.
func attachmentName(dispParams, typeParams map[string]string) string {
	name := dispParams["filename"]
	if name == "" {
		name = typeParams["name"]
	}
	name = filenameWhitespace.ReplaceAllString(name, "")
	if name == "" {
		return "unknown"
	}
	return name
}
