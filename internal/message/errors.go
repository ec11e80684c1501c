package message

import (
	"errors"
	"fmt"
)

// ErrUnsupportedAddressForm is returned when the first From address is
// not a single plain mailbox (e.g. RFC 5322 group syntax).
var ErrUnsupportedAddressForm = errors.New("unsupported address form in From header")

// ErrNoPlainTextPart is returned for multipart messages with no
// immediate text/plain subpart.
var ErrNoPlainTextPart = errors.New("no text/plain part")

// MalformedMessageError reports raw bytes whose MIME structure could
// not be decoded at all.
type MalformedMessageError struct {
	Err error
}

func (e *MalformedMessageError) Error() string {
	return fmt.Sprintf("malformed message: %v", e.Err)
}

func (e *MalformedMessageError) Unwrap() error { return e.Err }

// MissingHeaderError reports a required header that is absent.
type MissingHeaderError struct {
	Header string
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("missing %s header", e.Header)
}

// AddressParseError reports a From header whose value could not be
// parsed as an address list, or parsed to an empty list.
type AddressParseError struct {
	Err error
}

func (e *AddressParseError) Error() string {
	return fmt.Sprintf("failed to parse From address: %v", e.Err)
}

func (e *AddressParseError) Unwrap() error { return e.Err }
