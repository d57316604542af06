package poller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/mentora-cli/internal/model"
)

func TestPushStreamDeliversNotifications(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer func() {
			_ = conn.Close()
		}()

		_ = conn.WriteJSON(model.Notification{ID: "n-1", Title: "Grade posted"})
		_ = conn.WriteJSON(model.Notification{ID: "n-2", Title: "New message"})
		// Hold the connection open until the client hangs up.
		_, _, _ = conn.ReadMessage()
	}))
	defer srv.Close()

	var mu sync.Mutex
	var got []string
	s := NewPushStream(wsURL(srv), func(n model.Notification) {
		mu.Lock()
		got = append(got, n.ID)
		mu.Unlock()
	}, zerolog.Nop())

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{"n-1", "n-2"}, got)
	mu.Unlock()
}

func TestPushStreamStopUnblocksRead(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		// Never write; the client read blocks until Stop.
		_, _, _ = conn.ReadMessage()
		_ = conn.Close()
	}))
	defer srv.Close()

	s := NewPushStream(wsURL(srv), func(model.Notification) {}, zerolog.Nop())
	s.Start()

	// Give the dial a moment to land in the blocked read.
	time.Sleep(50 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop hung on a blocked read")
	}

	// Stop twice is safe.
	s.Stop()
}

func TestPushStreamIgnoresUndecodablePayloads(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer func() {
			_ = conn.Close()
		}()

		_ = conn.WriteMessage(websocket.TextMessage, []byte("not json"))
		_ = conn.WriteJSON(model.Notification{ID: "n-1"})
		_, _, _ = conn.ReadMessage()
	}))
	defer srv.Close()

	delivered := make(chan model.Notification, 1)
	s := NewPushStream(wsURL(srv), func(n model.Notification) { delivered <- n }, zerolog.Nop())
	s.Start()
	defer s.Stop()

	select {
	case n := <-delivered:
		assert.Equal(t, "n-1", n.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("valid notification never delivered")
	}
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}
