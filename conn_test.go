package fbhost

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clientSend writes one request frame to w and reads back the matched
// response frame from r, the same exchange a client makes over a real TCP
// connection.
func clientSend(t *testing.T, r *bufio.Reader, w *bufio.Writer, dest string, req Request) Response {
	t.Helper()
	body, err := EncodeRequestXML(req)
	require.NoError(t, err)
	require.NoError(t, WriteRequestFrame(w, dest, body))

	frame, err := ReadFrame(r)
	require.NoError(t, err)
	resp, err := DecodeResponseXML(frame.Body)
	require.NoError(t, err)
	return resp
}

func TestConnServeRoundTrip(t *testing.T) {
	inner := NewFactory()
	RegisterStandardTypes(inner)
	channel := NewChannel(DefaultChannelCapacity)
	rt := NewRuntime(inner, channel, NewDefaultMetrics())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go rt.Run(ctx)

	server, client := net.Pipe()
	go serveConn(ctx, server, channel, nil)

	r := bufio.NewReader(client)
	w := bufio.NewWriter(client)

	resp := clientSend(t, r, w, "", Request{ID: "1", Action: ActionCreate, Data: FunctionBlockData{Name: "res1", Type: RootFactoryTypeName}})
	require.Equal(t, "1", resp.ID)
	require.Equal(t, Error(""), resp.Reason)

	resp = clientSend(t, r, w, "res1", Request{ID: "2", Action: ActionStart})
	require.Equal(t, "2", resp.ID)
	require.Equal(t, Error(""), resp.Reason)

	resp = clientSend(t, r, w, "nonexistent", Request{ID: "3", Action: ActionStart})
	require.Equal(t, "3", resp.ID)
	require.Equal(t, ErrInvalidDst, resp.Reason)

	client.Close()
}

func TestConnServeSequentialOrderingPerConnection(t *testing.T) {
	inner := NewFactory()
	RegisterStandardTypes(inner)
	channel := NewChannel(DefaultChannelCapacity)
	rt := NewRuntime(inner, channel, NewDefaultMetrics())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go rt.Run(ctx)

	server, client := net.Pipe()
	go serveConn(ctx, server, channel, nil)

	r := bufio.NewReader(client)
	w := bufio.NewWriter(client)
	defer client.Close()

	_ = clientSend(t, r, w, "", Request{ID: "1", Action: ActionCreate, Data: FunctionBlockData{Name: "res1", Type: RootFactoryTypeName}})

	for i := 0; i < 5; i++ {
		name := string(rune('a' + i))
		resp := clientSend(t, r, w, "res1", Request{ID: name, Action: ActionCreate, Data: FunctionBlockData{Name: name, Type: TypeSetReset}})
		require.Equal(t, name, resp.ID)
		require.Equal(t, Error(""), resp.Reason)
	}
}

func TestConnServeMalformedXMLClosesWithoutResponse(t *testing.T) {
	channel := NewChannel(1)
	server, client := net.Pipe()

	done := make(chan struct{})
	go func() {
		serveConn(context.Background(), server, channel, nil)
		close(done)
	}()

	w := bufio.NewWriter(client)
	require.NoError(t, WriteRequestFrame(w, "", "<Request ID=\"1\" Action=\"CREATE\">not closed"))

	r := bufio.NewReader(client)
	_, err := ReadFrame(r)
	require.Error(t, err, "malformed XML must not produce a response, only connection closure")

	client.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("serveConn did not exit after decode error")
	}
}
