package fbhost

import (
	"net"
	"sync/atomic"
)

// Metrics tracks runtime statistics across connections. Collectors read via
// Get*; the server, connection tasks and runtime driver call Increment*.
type Metrics interface {
	IncrementConnectionsAccepted()
	IncrementConnectionsClosed()
	IncrementRequestsHandled()
	IncrementRequestsFailed()
	IncrementBytesRead(n int64)
	IncrementBytesWritten(n int64)

	GetConnectionsAccepted() int64
	GetConnectionsClosed() int64
	GetRequestsHandled() int64
	GetRequestsFailed() int64
	GetBytesRead() int64
	GetBytesWritten() int64
}

// DefaultMetrics implements Metrics with atomic counters.
type DefaultMetrics struct {
	connectionsAccepted int64
	connectionsClosed   int64
	requestsHandled     int64
	requestsFailed      int64
	bytesRead           int64
	bytesWritten        int64
}

// NewDefaultMetrics creates a new DefaultMetrics instance.
func NewDefaultMetrics() *DefaultMetrics { return &DefaultMetrics{} }

func (m *DefaultMetrics) IncrementConnectionsAccepted() { atomic.AddInt64(&m.connectionsAccepted, 1) }
func (m *DefaultMetrics) IncrementConnectionsClosed()   { atomic.AddInt64(&m.connectionsClosed, 1) }
func (m *DefaultMetrics) IncrementRequestsHandled()     { atomic.AddInt64(&m.requestsHandled, 1) }
func (m *DefaultMetrics) IncrementRequestsFailed()      { atomic.AddInt64(&m.requestsFailed, 1) }
func (m *DefaultMetrics) IncrementBytesRead(n int64)    { atomic.AddInt64(&m.bytesRead, n) }
func (m *DefaultMetrics) IncrementBytesWritten(n int64) { atomic.AddInt64(&m.bytesWritten, n) }

func (m *DefaultMetrics) GetConnectionsAccepted() int64 {
	return atomic.LoadInt64(&m.connectionsAccepted)
}
func (m *DefaultMetrics) GetConnectionsClosed() int64 { return atomic.LoadInt64(&m.connectionsClosed) }
func (m *DefaultMetrics) GetRequestsHandled() int64   { return atomic.LoadInt64(&m.requestsHandled) }
func (m *DefaultMetrics) GetRequestsFailed() int64    { return atomic.LoadInt64(&m.requestsFailed) }
func (m *DefaultMetrics) GetBytesRead() int64         { return atomic.LoadInt64(&m.bytesRead) }
func (m *DefaultMetrics) GetBytesWritten() int64      { return atomic.LoadInt64(&m.bytesWritten) }

// GetMetrics returns the metrics a connection was built with, if it
// supports metrics tracking. It returns nil otherwise.
func GetMetrics(c net.Conn) Metrics {
	type metricsProvider interface{ GetMetrics() Metrics }
	if mp, ok := c.(metricsProvider); ok {
		return mp.GetMetrics()
	}
	return nil
}
