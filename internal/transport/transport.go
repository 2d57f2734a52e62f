// Package transport implements the resolver's UDP send/receive with a fixed
// receive timeout and a single retransmit on timeout.
package transport

import (
	"context"
	"fmt"
	"net"
	"time"
)

// recvTimeout is the SO_RCVTIMEO-equivalent bound on a single datagram
// receive.
const recvTimeout = 5 * time.Second

// maxDatagram is the largest UDP response this resolver will read.
const maxDatagram = 1024

// Transport sends one query datagram and returns the raw reply bytes.
type Transport interface {
	SendAndReceive(ctx context.Context, payload []byte, server net.IP, port int) ([]byte, error)
}

// UDPTransport is the production Transport: one ephemeral UDP socket per
// call, a read deadline (5s by default), and exactly one retransmit on
// timeout.
type UDPTransport struct {
	// Timeout overrides the default 5s receive bound. Zero means "use the
	// default"; tests that need a fast timeout path set this explicitly.
	Timeout time.Duration
}

// NewUDPTransport returns a ready-to-use UDP transport with the default 5s
// receive timeout.
func NewUDPTransport() *UDPTransport {
	return &UDPTransport{Timeout: recvTimeout}
}

func (t *UDPTransport) timeout() time.Duration {
	if t.Timeout > 0 {
		return t.Timeout
	}

	return recvTimeout
}

// SendAndReceive implements Transport. It dials server:port, writes
// payload, and awaits one reply. If the first receive times out, payload is
// resent exactly once; a second timeout is returned as an error. Any other
// I/O error propagates immediately.
func (t *UDPTransport) SendAndReceive(ctx context.Context, payload []byte, server net.IP, port int) ([]byte, error) {
	addr := &net.UDPAddr{IP: server, Port: port}

	d := net.Dialer{Timeout: t.timeout()}
	conn, err := d.DialContext(ctx, "udp", addr.String())
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", addr, err)
	}
	defer conn.Close()

	buf := make([]byte, maxDatagram)

	n, err := t.roundTrip(conn, payload, buf)
	if err == nil {
		return buf[:n], nil
	}

	if !isTimeout(err) {
		return nil, fmt.Errorf("transport: %w", err)
	}

	n, err = t.roundTrip(conn, payload, buf)
	if err != nil {
		return nil, fmt.Errorf("transport: timed out after retry: %w", err)
	}

	return buf[:n], nil
}

func (t *UDPTransport) roundTrip(conn net.Conn, payload, buf []byte) (int, error) {
	if err := conn.SetDeadline(time.Now().Add(t.timeout())); err != nil {
		return 0, err
	}

	if _, err := conn.Write(payload); err != nil {
		return 0, err
	}

	n, err := conn.Read(buf)
	if err != nil {
		return 0, err
	}

	return n, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return asNetError(err, &netErr) && netErr.Timeout()
}

// asNetError is a tiny errors.As shim kept local to avoid importing errors
// just for this one call site.
func asNetError(err error, target *net.Error) bool {
	if ne, ok := err.(net.Error); ok {
		*target = ne
		return true
	}

	return false
}
