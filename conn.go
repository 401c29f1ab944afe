package fbhost

import (
	"bufio"
	"context"
	"io"
	"log"
	"net"

	"github.com/google/uuid"
)

// Conn runs one connection's Reading → Dispatching → Writing state machine.
// Requests on a single connection are processed strictly sequentially: the
// loop doesn't read the next frame until the previous request's response
// has been written.
type Conn struct {
	id      string
	netConn net.Conn
	reader  *bufio.Reader
	writer  *bufio.Writer
	channel *Channel
	metrics Metrics
}

// NewConn wraps an accepted net.Conn for the connection task loop. id is a
// uuid-derived log-correlation tag; it never appears on the wire.
func NewConn(netConn net.Conn, channel *Channel, metrics Metrics) *Conn {
	return &Conn{
		id:      uuid.New().String(),
		netConn: netConn,
		reader:  bufio.NewReader(netConn),
		writer:  bufio.NewWriter(netConn),
		channel: channel,
		metrics: metrics,
	}
}

// Serve runs the read-decode-dispatch-write loop until ctx is cancelled, a
// transport-fatal error occurs, or the peer disconnects in an orderly way
// at a frame boundary. It never returns a *DecodeError past itself without
// having already refrained from writing a response for it: a request body
// that fails to decode has no trustable id to answer against, so the
// connection is simply closed.
func (c *Conn) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { _ = c.netConn.Close() })
	defer stop()
	for {
		frame, err := ReadFrame(c.reader)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if c.metrics != nil {
			c.metrics.IncrementBytesRead(int64(len(frame.Dest) + len(frame.Body)))
		}

		req, err := DecodeRequestXML(frame.Body)
		if err != nil {
			return err
		}
		req.Destination = ParseDestination(frame.Dest)

		result := c.channel.Submit(ctx, req)

		resp := Response{ID: req.ID, Reason: result.Reason, Data: result.Data}
		body, err := EncodeResponseXML(resp)
		if err != nil {
			return err
		}
		if err := WriteFrame(c.writer, body); err != nil {
			return err
		}
		if c.metrics != nil {
			c.metrics.IncrementBytesWritten(int64(len(body)))
		}
	}
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.netConn.Close()
}

// GetMetrics implements the metricsProvider interface metrics.GetMetrics
// looks for.
func (c *Conn) GetMetrics() Metrics { return c.metrics }

// serveConn is the goroutine body spawned per accepted connection by the
// server acceptor.
func serveConn(ctx context.Context, netConn net.Conn, channel *Channel, metrics Metrics) {
	c := NewConn(netConn, channel, metrics)
	defer func() {
		_ = c.Close()
		if metrics != nil {
			metrics.IncrementConnectionsClosed()
		}
	}()

	if err := c.Serve(ctx); err != nil {
		log.Printf("[fbhost] connection %s (%s): %v", c.id, netConn.RemoteAddr(), err)
		return
	}
	log.Printf("[fbhost] connection %s (%s) closed", c.id, netConn.RemoteAddr())
}
