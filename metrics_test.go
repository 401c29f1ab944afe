package fbhost

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultMetricsIncrementAndGet(t *testing.T) {
	m := NewDefaultMetrics()
	m.IncrementConnectionsAccepted()
	m.IncrementConnectionsAccepted()
	m.IncrementRequestsHandled()
	m.IncrementRequestsFailed()
	m.IncrementBytesRead(10)
	m.IncrementBytesWritten(20)

	require.EqualValues(t, 2, m.GetConnectionsAccepted())
	require.EqualValues(t, 1, m.GetRequestsHandled())
	require.EqualValues(t, 1, m.GetRequestsFailed())
	require.EqualValues(t, 10, m.GetBytesRead())
	require.EqualValues(t, 20, m.GetBytesWritten())
	require.EqualValues(t, 0, m.GetConnectionsClosed())
}

type fakeMetricsConn struct {
	net.Conn
	metrics Metrics
}

func (f *fakeMetricsConn) GetMetrics() Metrics { return f.metrics }

func TestGetMetricsFromConn(t *testing.T) {
	m := NewDefaultMetrics()
	c := &fakeMetricsConn{metrics: m}
	require.Equal(t, Metrics(m), GetMetrics(c))

	var plainConn net.Conn = &struct{ net.Conn }{}
	require.Nil(t, GetMetrics(plainConn))
}
