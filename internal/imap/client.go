package imap

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/hyswd/mailpeek/internal/config"
)

// Client is a single-use IMAP session. Operations must follow the
// Connect -> Select -> FetchAll -> Close order; calls made out of order
// fail without touching the network.
type Client struct {
	config *config.Config
	logger *slog.Logger
	client *imapclient.Client
	folder string
}

func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		config: cfg,
		logger: logger,
	}, nil
}

// Connect dials the server over TLS and authenticates. The password is
// resolved from the system keyring at call time, never held in config.
func (c *Client) Connect() error {
	password, err := c.config.GetPassword()
	if err != nil {
		return fmt.Errorf("failed to get password: %w", err)
	}

	addr := net.JoinHostPort(c.config.Server.Host, strconv.Itoa(c.config.Server.Port))

	options := &imapclient.Options{
		TLSConfig: &tls.Config{
			ServerName: c.config.Server.Host,
		},
	}

	client, err := imapclient.DialTLS(addr, options)
	if err != nil {
		return &TransportError{Addr: addr, Err: err}
	}

	if err := client.Login(c.config.Server.Username, password).Wait(); err != nil {
		client.Close()
		return &AuthError{Username: c.config.Server.Username, Err: err}
	}

	c.client = client
	c.logger.Debug("imap session established", "addr", addr, "user", c.config.Server.Username)
	return nil
}

// Close logs out and releases the connection. Safe to call in any
// state, so callers can defer it right after Connect succeeds.
func (c *Client) Close() error {
	if c.client != nil {
		if err := c.client.Logout().Wait(); err != nil {
			c.logger.Debug("imap logout failed, closing anyway", "err", err)
		}
		err := c.client.Close()
		c.client = nil
		c.folder = ""
		return err
	}
	return nil
}

func (c *Client) Select(folder string) error {
	if c.client == nil {
		return fmt.Errorf("not connected")
	}

	data, err := c.client.Select(folder, nil).Wait()
	if err != nil {
		return &FolderError{Folder: folder, Err: err}
	}

	c.folder = folder
	c.logger.Debug("folder selected", "folder", folder, "messages", data.NumMessages)
	return nil
}

// FetchAll enumerates every message in the selected folder and retrieves
// each one's full raw content, one blocking round-trip per message, in
// server order. The body section is fetched with Peek so the \Seen flag
// is never set as a side effect of reading.
func (c *Client) FetchAll() ([]RawMessage, error) {
	if c.client == nil {
		return nil, fmt.Errorf("not connected")
	}
	if c.folder == "" {
		return nil, fmt.Errorf("no folder selected")
	}

	// An empty criteria set matches every message (SEARCH ALL).
	searchData, err := c.client.UIDSearch(&imap.SearchCriteria{}, nil).Wait()
	if err != nil {
		return nil, &ProtocolError{Op: "search", Err: err}
	}

	uids := searchData.AllUIDs()
	messages := make([]RawMessage, 0, len(uids))
	if len(uids) == 0 {
		return messages, nil
	}

	section := &imap.FetchItemBodySection{Peek: true}
	fetchOptions := &imap.FetchOptions{
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{section},
	}

	for _, uid := range uids {
		fetchCmd := c.client.Fetch(imap.UIDSetNum(uid), fetchOptions)
		bufs, err := fetchCmd.Collect()
		if err != nil {
			return nil, &ProtocolError{Op: "fetch", Err: err}
		}
		if len(bufs) == 0 {
			return nil, &ProtocolError{Op: "fetch", Err: fmt.Errorf("no data returned for message %d", uid)}
		}

		data := bufs[0].FindBodySection(section)
		if data == nil {
			return nil, &ProtocolError{Op: "fetch", Err: fmt.Errorf("missing body section for message %d", uid)}
		}

		messages = append(messages, RawMessage{UID: uint32(uid), Data: data})
	}

	c.logger.Debug("fetched messages", "folder", c.folder, "count", len(messages))
	return messages, nil
}
