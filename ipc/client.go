package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
)

// ErrConnect indicates the control socket could not be reached.
var ErrConnect = errors.New("control socket unavailable")

// ErrProtocol indicates a malformed or truncated server reply.
var ErrProtocol = errors.New("control protocol error")

// Client is a control channel client. It is not safe for concurrent use.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
}

// Dial connects to the control socket at path.
func Dial(ctx context.Context, path string) (*Client, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	return &Client{conn: conn, reader: bufio.NewReaderSize(conn, maxRequestBytes)}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Do sends one request and waits for its response. params may be nil for
// kinds without parameters. Application-level failures come back as a
// *WireError; transport and framing failures wrap ErrConnect or
// ErrProtocol.
func (c *Client) Do(ctx context.Context, kind string, params any) (json.RawMessage, error) {
	payload, err := encodeRequest(kind, params)
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConnect, err)
		}
	}
	if _, err := c.conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	line, err := c.reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if !resp.OK {
		return nil, fmt.Errorf("%w: response carries neither data nor error", ErrProtocol)
	}
	return resp.Data, nil
}

// encodeRequest flattens params next to the kind discriminator.
func encodeRequest(kind string, params any) ([]byte, error) {
	fields := map[string]any{}
	if params != nil {
		encoded, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(encoded, &fields); err != nil {
			return nil, err
		}
	}
	fields["kind"] = kind
	return json.Marshal(fields)
}
