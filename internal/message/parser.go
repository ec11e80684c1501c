package message

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	gomessage "github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"github.com/hyswd/mailpeek/internal/imap"
)

// Message holds the three fields extracted from one raw mail message.
// A Message is only ever built from bytes that yielded all three.
type Message struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Parse decodes raw RFC 5322 bytes and extracts the sender address,
// the subject line, and the plain-text body. The first extraction that
// fails aborts the rest; no partial Message is ever returned.
func Parse(raw []byte) (*Message, error) {
	entity, err := gomessage.Read(bytes.NewReader(raw))
	if err != nil && !gomessage.IsUnknownCharset(err) {
		return nil, &MalformedMessageError{Err: err}
	}

	from, err := extractFrom(entity)
	if err != nil {
		return nil, err
	}

	subject, err := extractSubject(entity)
	if err != nil {
		return nil, err
	}

	body, err := extractBody(entity)
	if err != nil {
		return nil, err
	}

	return &Message{
		From:    from,
		Subject: subject,
		Body:    body,
	}, nil
}

// ParseAll converts a batch of fetched messages in order. The batch is
// all-or-nothing: the first message that fails to parse fails the whole
// call, and no partial results are returned.
func ParseAll(raws []imap.RawMessage) ([]Message, error) {
	messages := make([]Message, 0, len(raws))
	for _, raw := range raws {
		msg, err := Parse(raw.Data)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", raw.UID, err)
		}
		messages = append(messages, *msg)
	}
	return messages, nil
}

// extractFrom returns the bare address of the first mailbox in the From
// header, with no display name.
func extractFrom(entity *gomessage.Entity) (string, error) {
	if !entity.Header.Has("From") {
		return "", &MissingHeaderError{Header: "From"}
	}

	// net/mail silently flattens RFC 5322 group syntax into the member
	// list, which would misreport the sender. Reject it up front: a
	// group is "display-name : mailbox-list ;".
	rawFrom := strings.TrimSpace(entity.Header.Get("From"))
	if strings.HasSuffix(rawFrom, ";") && strings.Contains(rawFrom, ":") {
		return "", ErrUnsupportedAddressForm
	}

	header := mail.Header{Header: entity.Header}
	addrs, err := header.AddressList("From")
	if err != nil {
		return "", &AddressParseError{Err: err}
	}
	if len(addrs) == 0 {
		return "", &AddressParseError{Err: errors.New("empty address list")}
	}

	if addrs[0].Address == "" {
		return "", ErrUnsupportedAddressForm
	}
	return addrs[0].Address, nil
}

// extractSubject returns the Subject value with whatever encoded-word
// decoding go-message applies, and nothing beyond that.
func extractSubject(entity *gomessage.Entity) (string, error) {
	if !entity.Header.Has("Subject") {
		return "", &MissingHeaderError{Header: "Subject"}
	}

	header := mail.Header{Header: entity.Header}
	subject, err := header.Subject()
	if err != nil {
		// Undecodable encoded words fall back to the raw value.
		return entity.Header.Get("Subject"), nil
	}
	return subject, nil
}

// extractBody locates the plain-text content. A non-multipart message
// is its own body candidate. A multipart message is scanned in order
// for the first immediate subpart typed exactly text/plain; nested
// multiparts are not recursed into.
func extractBody(entity *gomessage.Entity) (string, error) {
	part := entity

	if mr := entity.MultipartReader(); mr != nil {
		part = nil
		for {
			p, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				return "", &MalformedMessageError{Err: err}
			}

			contentType, _, err := p.Header.ContentType()
			if err != nil {
				continue
			}
			if contentType == "text/plain" {
				part = p
				break
			}
		}
		if part == nil {
			return "", ErrNoPlainTextPart
		}
	}

	body, err := io.ReadAll(part.Body)
	if err != nil {
		return "", &MalformedMessageError{Err: err}
	}

	// Trailing whitespace only; leading whitespace is content.
	return strings.TrimRightFunc(string(body), unicode.IsSpace), nil
}
