package imap

// RawMessage is a single message as retrieved from the server, still in
// its RFC 5322 wire form. UID is the server-assigned identifier and is
// only meaningful within the session that produced it.
type RawMessage struct {
	UID  uint32 `json:"uid"`
	Data []byte `json:"-"`
}
