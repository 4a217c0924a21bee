package demostream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replaycore/s2demo/errs"
)

func TestHTTPBroadcastStream_FetchesStartThenDelta(t *testing.T) {
	var frag0Body, frag1Body []byte
	frag0Body = writeBroadcastCmd(frag0Body, CmdClassInfo, 1, []byte("one"))
	frag1Body = writeBroadcastCmd(frag1Body, CmdPacket, 2, []byte("two"))

	var requestedPaths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPaths = append(requestedPaths, r.URL.Path)
		switch r.URL.Path {
		case "/0/start":
			w.Write(frag0Body)
		case "/1/delta":
			w.Write(frag1Body)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	stream := NewHTTPBroadcastStream(srv.URL)
	ctx := context.Background()

	hdr, err := stream.ReadCmdHeader(ctx)
	require.NoError(t, err)
	assert.Equal(t, CmdClassInfo, hdr.Kind)
	body, err := stream.ReadCmd(ctx, hdr)
	require.NoError(t, err)
	assert.Equal(t, "one", string(body))

	hdr2, err := stream.ReadCmdHeader(ctx)
	require.NoError(t, err)
	assert.Equal(t, CmdPacket, hdr2.Kind)
	body2, err := stream.ReadCmd(ctx, hdr2)
	require.NoError(t, err)
	assert.Equal(t, "two", string(body2))

	assert.Equal(t, []string{"/0/start", "/1/delta"}, requestedPaths)
	assert.False(t, stream.IsAtEOF())
	assert.EqualValues(t, -1, stream.StreamLen())
}

func TestHTTPBroadcastStream_RetriesOn404ThenSucceeds(t *testing.T) {
	var attempts int32
	var frag []byte
	frag = writeBroadcastCmd(frag, CmdStop, 0, nil)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(frag)
	}))
	defer srv.Close()

	stream := NewHTTPBroadcastStream(srv.URL, WithRetryPolicy(RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
	}))

	hdr, err := stream.ReadCmdHeader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CmdStop, hdr.Kind)
	assert.EqualValues(t, 3, atomic.LoadInt32(&attempts))
}

func TestHTTPBroadcastStream_GoneFragmentIsPermanent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer srv.Close()

	stream := NewHTTPBroadcastStream(srv.URL, WithRetryPolicy(RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    time.Millisecond,
	}))

	_, err := stream.ReadCmdHeader(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrFragmentGone)
}

func TestHTTPBroadcastStream_UnreadAndSeekUnsupported(t *testing.T) {
	stream := NewHTTPBroadcastStream("http://example.invalid")
	assert.ErrorIs(t, stream.UnreadCmdHeader(CmdHeader{}), errs.ErrTransport)
	assert.ErrorIs(t, stream.Seek(context.Background(), 0), errs.ErrTransport)
}

func TestHTTPBroadcastStream_WithAppIDSetsHeader(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("x-dota-steam-appid")
		w.Write(writeBroadcastCmd(nil, CmdClassInfo, 1, []byte("one")))
	}))
	defer srv.Close()

	stream := NewHTTPBroadcastStream(srv.URL, WithAppID("570"))
	_, err := stream.ReadCmdHeader(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "570", gotHeader)
}
