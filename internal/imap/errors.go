package imap

import "fmt"

// TransportError reports a failure to establish the encrypted transport:
// TLS negotiation, DNS, or an unreachable host.
type TransportError struct {
	Addr string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to connect to IMAP server %s: %v", e.Addr, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthError reports rejected credentials. It is deliberately distinct
// from ProtocolError so callers can tell "wrong password" apart from
// "server misbehaving".
type AuthError struct {
	Username string
	Err      error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("IMAP login failed for %s: %v", e.Username, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// FolderError reports that the requested folder does not exist or could
// not be selected.
type FolderError struct {
	Folder string
	Err    error
}

func (e *FolderError) Error() string {
	return fmt.Sprintf("failed to select folder %s: %v", e.Folder, e.Err)
}

func (e *FolderError) Unwrap() error { return e.Err }

// ProtocolError reports a session-level failure in one of the protocol
// operations that is neither an auth nor a folder problem.
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("IMAP %s failed: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }
