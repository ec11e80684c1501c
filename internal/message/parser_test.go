package message

import (
	"errors"
	"strings"
	"testing"

	"github.com/hyswd/mailpeek/internal/imap"
)

// crlf converts test fixtures written with \n into wire-form CRLF.
func crlf(s string) []byte {
	return []byte(strings.ReplaceAll(s, "\n", "\r\n"))
}

func TestParseSimpleMessage(t *testing.T) {
	raw := crlf(`From: user@example.com
To: someone@example.com
Subject: Hello

hello

`)

	msg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if msg.From != "user@example.com" {
		t.Errorf("From = %q, want %q", msg.From, "user@example.com")
	}
	if msg.Subject != "Hello" {
		t.Errorf("Subject = %q, want %q", msg.Subject, "Hello")
	}
	if msg.Body != "hello" {
		t.Errorf("Body = %q, want %q", msg.Body, "hello")
	}
}

func TestParseTrimsTrailingWhitespaceOnly(t *testing.T) {
	raw := crlf(`From: user@example.com
Subject: spaces

  hello
`)

	msg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if msg.Body != "  hello" {
		t.Errorf("Body = %q, want %q (leading whitespace must survive)", msg.Body, "  hello")
	}
}

func TestParseFromStripsDisplayName(t *testing.T) {
	tests := []struct {
		name string
		from string
		want string
	}{
		{"plain address", "user@example.com", "user@example.com"},
		{"display name", "John Doe <john@example.com>", "john@example.com"},
		{"quoted display name", "\"Doe, John\" <john@example.com>", "john@example.com"},
		{"angle brackets only", "<user@example.com>", "user@example.com"},
		{"address list takes first", "a@example.com, b@example.com", "a@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := crlf("From: " + tt.from + "\nSubject: x\n\nbody\n")

			msg, err := Parse(raw)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if msg.From != tt.want {
				t.Errorf("From = %q, want %q", msg.From, tt.want)
			}
		})
	}
}

func TestParseMissingFrom(t *testing.T) {
	raw := crlf(`Subject: no sender

body
`)

	_, err := Parse(raw)
	var missing *MissingHeaderError
	if !errors.As(err, &missing) {
		t.Fatalf("Parse() error = %v, want *MissingHeaderError", err)
	}
	if missing.Header != "From" {
		t.Errorf("missing header = %q, want %q", missing.Header, "From")
	}
}

func TestParseMissingSubject(t *testing.T) {
	raw := crlf(`From: user@example.com

body
`)

	_, err := Parse(raw)
	var missing *MissingHeaderError
	if !errors.As(err, &missing) {
		t.Fatalf("Parse() error = %v, want *MissingHeaderError", err)
	}
	if missing.Header != "Subject" {
		t.Errorf("missing header = %q, want %q", missing.Header, "Subject")
	}
}

func TestParseEncodedSubject(t *testing.T) {
	raw := crlf(`From: user@example.com
Subject: =?utf-8?q?Hello_World?=

body
`)

	msg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if msg.Subject != "Hello World" {
		t.Errorf("Subject = %q, want %q", msg.Subject, "Hello World")
	}
}

func TestParseUnparsableFrom(t *testing.T) {
	raw := crlf(`From: not-an-address
Subject: x

body
`)

	_, err := Parse(raw)
	var addrErr *AddressParseError
	if !errors.As(err, &addrErr) {
		t.Fatalf("Parse() error = %v, want *AddressParseError", err)
	}
}

func TestParseGroupAddressUnsupported(t *testing.T) {
	raw := crlf(`From: Team: a@example.com, b@example.com;
Subject: x

body
`)

	_, err := Parse(raw)
	if !errors.Is(err, ErrUnsupportedAddressForm) {
		t.Fatalf("Parse() error = %v, want ErrUnsupportedAddressForm", err)
	}
}

func TestParseMultipartPicksFirstPlainPart(t *testing.T) {
	raw := crlf(`From: user@example.com
Subject: multi
MIME-Version: 1.0
Content-Type: multipart/alternative; boundary=BOUNDARY

--BOUNDARY
Content-Type: text/html

<p>nope</p>
--BOUNDARY
Content-Type: text/plain; charset=utf-8

first
--BOUNDARY
Content-Type: text/plain

second
--BOUNDARY--
`)

	msg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if msg.Body != "first" {
		t.Errorf("Body = %q, want %q (first text/plain part wins)", msg.Body, "first")
	}
}

func TestParseMultipartNoPlainPart(t *testing.T) {
	raw := crlf(`From: user@example.com
Subject: html only
MIME-Version: 1.0
Content-Type: multipart/alternative; boundary=BOUNDARY

--BOUNDARY
Content-Type: text/html

<p>hello</p>
--BOUNDARY--
`)

	_, err := Parse(raw)
	if !errors.Is(err, ErrNoPlainTextPart) {
		t.Fatalf("Parse() error = %v, want ErrNoPlainTextPart", err)
	}
}

func TestParseDoesNotRecurseIntoNestedMultipart(t *testing.T) {
	// The only text/plain part lives inside a nested multipart; the
	// shallow scan must not find it.
	raw := crlf(`From: user@example.com
Subject: nested
MIME-Version: 1.0
Content-Type: multipart/mixed; boundary=OUTER

--OUTER
Content-Type: multipart/alternative; boundary=INNER

--INNER
Content-Type: text/plain

nested text
--INNER--

--OUTER
Content-Type: text/html

<p>x</p>
--OUTER--
`)

	_, err := Parse(raw)
	if !errors.Is(err, ErrNoPlainTextPart) {
		t.Fatalf("Parse() error = %v, want ErrNoPlainTextPart", err)
	}
}

func TestParseDecodesTransferEncoding(t *testing.T) {
	raw := crlf(`From: user@example.com
Subject: encoded
MIME-Version: 1.0
Content-Type: multipart/alternative; boundary=BOUNDARY

--BOUNDARY
Content-Type: text/plain
Content-Transfer-Encoding: base64

aGVsbG8gd29ybGQ=
--BOUNDARY--
`)

	msg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if msg.Body != "hello world" {
		t.Errorf("Body = %q, want %q", msg.Body, "hello world")
	}
}

func TestParseMalformedMessage(t *testing.T) {
	raw := []byte("this first line has no colon\r\n\r\nbody\r\n")

	_, err := Parse(raw)
	var malformed *MalformedMessageError
	if !errors.As(err, &malformed) {
		t.Fatalf("Parse() error = %v, want *MalformedMessageError", err)
	}
}

func validRaw(body string) []byte {
	return crlf("From: user@example.com\nSubject: ok\n\n" + body + "\n")
}

func TestParseAll(t *testing.T) {
	raws := []imap.RawMessage{
		{UID: 1, Data: validRaw("one")},
		{UID: 2, Data: validRaw("two")},
		{UID: 3, Data: validRaw("three")},
	}

	messages, err := ParseAll(raws)
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}

	if len(messages) != 3 {
		t.Fatalf("ParseAll() returned %d messages, want 3", len(messages))
	}

	want := []string{"one", "two", "three"}
	for i, msg := range messages {
		if msg.Body != want[i] {
			t.Errorf("messages[%d].Body = %q, want %q (order must be preserved)", i, msg.Body, want[i])
		}
	}
}

func TestParseAllEmpty(t *testing.T) {
	messages, err := ParseAll(nil)
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}
	if messages == nil {
		t.Fatal("ParseAll() = nil, want empty slice")
	}
	if len(messages) != 0 {
		t.Errorf("ParseAll() returned %d messages, want 0", len(messages))
	}
}

func TestParseAllFailsWholeBatchOnOneBadMessage(t *testing.T) {
	raws := make([]imap.RawMessage, 0, 11)
	for i := 0; i < 5; i++ {
		raws = append(raws, imap.RawMessage{UID: uint32(i + 1), Data: validRaw("ok")})
	}
	raws = append(raws, imap.RawMessage{UID: 6, Data: crlf("Subject: no sender\n\nbody\n")})
	for i := 6; i < 11; i++ {
		raws = append(raws, imap.RawMessage{UID: uint32(i + 1), Data: validRaw("ok")})
	}

	messages, err := ParseAll(raws)
	if err == nil {
		t.Fatal("ParseAll() error = nil, want batch failure")
	}
	if messages != nil {
		t.Errorf("ParseAll() returned %d messages alongside error, want none", len(messages))
	}

	var missing *MissingHeaderError
	if !errors.As(err, &missing) {
		t.Errorf("ParseAll() error = %v, want wrapped *MissingHeaderError", err)
	}
	if !strings.Contains(err.Error(), "message 6") {
		t.Errorf("ParseAll() error %q should name the failing message identifier", err)
	}
}
