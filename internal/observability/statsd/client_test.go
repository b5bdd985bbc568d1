package statsd

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLine(t *testing.T) {
	t.Parallel()

	got := FormatLine("libraryctl", "api.request", "1", "c",
		map[string]string{"env": "prod", "kind": "ignored"},
		map[string]string{"kind": "books", " method ": "GET", "": "dropped"},
	)
	assert.Equal(t, "libraryctl.api.request:1|c|#env:prod,kind:books,method:GET", got)
}

func TestFormatLineSanitizesName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "p.a_b.c:1|c", FormatLine("p", " a/b..c. ", "1", "c", nil, nil))
	assert.Equal(t, "x:2|g", FormatLine("", "x", "2", "g", nil, nil))
	assert.Empty(t, FormatLine("p", "  ", "1", "c", nil, nil))
}

func TestClientWritesDatagrams(t *testing.T) {
	t.Parallel()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	client, err := NewClient(Config{
		Enabled:    true,
		Address:    pc.LocalAddr().String(),
		Prefix:     "libraryctl.",
		GlobalTags: map[string]string{"env": "test"},
	})
	require.NoError(t, err)
	defer client.Close()
	require.True(t, client.Enabled())

	client.Timing("api.duration", 1500*time.Microsecond, map[string]string{"kind": "books"})

	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 512)
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, "libraryctl.api.duration:1.5|ms|#env:test,kind:books", string(buf[:n]))
}

func TestClientCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	clientConn, peerConn := net.Pipe()
	defer peerConn.Close()

	client := &Client{conn: clientConn}
	require.True(t, client.Enabled())
	require.NoError(t, client.Close())
	assert.False(t, client.Enabled())
	require.NoError(t, client.Close())

	// writes after close are dropped
	client.Count("x", 1, nil)

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
	require.NoError(t, nilClient.Close())
	nilClient.Gauge("x", 1, nil)
}

func TestNewClientDisabledWithoutAddress(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{Enabled: true, Address: "   "})
	require.NoError(t, err)
	assert.False(t, client.Enabled())
}

func TestNewClientDialError(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{Enabled: true, Address: "bad address"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "statsd dial"))
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder
	r.Count("a", 2, nil)
	r.Timing("b", 3*time.Millisecond, map[string]string{"k": "v"})
	r.Gauge("a", 1, nil)

	assert.Len(t, r.Points(), 3)
	a := r.Named("a")
	require.Len(t, a, 2)
	assert.Equal(t, "c", a[0].Kind)
	assert.Equal(t, "g", a[1].Kind)
	assert.InDelta(t, 3.0, r.Named("b")[0].Value, 0.0001)
}
