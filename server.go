package fbhost

import (
	"context"
	"errors"
	"log"
	"net"
)

// Server accepts TCP connections and spawns a connection task per client.
// Transient Accept() errors are retried with exponential backoff rather
// than giving up.
type Server struct {
	listener net.Listener
	channel  *Channel
	metrics  Metrics
	poll     *AdaptivePoll
}

// Listen binds the configured address and returns a Server ready to Run.
func Listen(cfg *Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ln, err := net.Listen("tcp", cfg.listenAddr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: ln,
		metrics:  cfg.metrics,
		poll:     NewAdaptivePoll(cfg.acceptRetryFast, cfg.acceptRetrySteady),
	}, nil
}

// Addr returns the address the server is bound to.
func (s *Server) Addr() net.Addr { return s.listener.Addr() }

// Close stops accepting new connections.
func (s *Server) Close() error { return s.listener.Close() }

// Run accepts connections until ctx is cancelled or the listener is
// closed, dispatching each to its own connection task goroutine bound to
// channel. It retries transient Accept() errors with exponential backoff
// and gives up on permanent ones.
func (s *Server) Run(ctx context.Context, channel *Channel) error {
	s.channel = channel

	go func() {
		<-ctx.Done()
		_ = s.listener.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				s.poll.Sleep()
				continue
			}
			if isTemporary(err) {
				s.poll.Sleep()
				continue
			}
			return err
		}
		s.poll.Reset()

		if s.metrics != nil {
			s.metrics.IncrementConnectionsAccepted()
		}
		go serveConn(ctx, conn, channel, s.metrics)
	}
}

// isTemporary reports whether err looks like a transient accept-loop error
// worth retrying rather than surfacing. net.Error's Temporary method is
// deprecated upstream but still worth checking for older error types that
// only implement it.
func isTemporary(err error) bool {
	type temporary interface{ Temporary() bool }
	te, ok := err.(temporary)
	return ok && te.Temporary()
}

// ListenAndServe is a convenience entry point: bind, build the request
// channel at the configured capacity, and run the acceptor and the runtime
// driver together, blocking until ctx is cancelled or a fatal error occurs.
// innerFactory supplies the constructors each Embedded Resource's own
// container uses for its children. Used by cmd/fbhostd.
func ListenAndServe(ctx context.Context, innerFactory *Factory, opts ...Option) error {
	cfg := applyConfig(opts)
	if err := cfg.Validate(); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, cfg.cancel)
	defer stop()

	srv, err := Listen(cfg)
	if err != nil {
		return err
	}
	defer srv.Close()

	log.Printf("[fbhost] listening on %s", srv.Addr())

	channel := NewChannel(cfg.channelCapacity)
	rt := NewRuntime(innerFactory, channel, cfg.metrics)

	driverDone := make(chan struct{})
	go func() {
		defer close(driverDone)
		rt.Run(cfg.ctx)
	}()

	err = srv.Run(cfg.ctx, channel)
	cfg.cancel()
	<-driverDone
	return err
}
