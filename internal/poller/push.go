package poller

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/mentora-cli/internal/model"
)

// Source is a running feed with an owned lifecycle. Both the interval
// poller and the push stream implement it, so the notification watcher does
// not care which transport feeds it.
type Source interface {
	Start()
	Stop()
}

// reconnectDelay paces redial attempts when the push stream drops.
const reconnectDelay = 5 * time.Second

// PushStream subscribes to the backend's notification WebSocket and hands
// each decoded notification to deliver. Connection drops trigger redials
// until Stop; the stream degrades silently because the caller always has
// polling available as the fallback transport.
type PushStream struct {
	url     string
	deliver func(model.Notification)
	log     zerolog.Logger

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	conn    *websocket.Conn
	wg      sync.WaitGroup
}

// NewPushStream creates a stream against the given ws(s) URL.
func NewPushStream(url string, deliver func(model.Notification), log zerolog.Logger) *PushStream {
	return &PushStream{
		url:     url,
		deliver: deliver,
		log:     log.With().Str("component", "push_stream").Logger(),
	}
}

// Start launches the dial/read loop.
func (s *PushStream) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)
}

// Stop closes the connection and waits for the loop to exit. Idempotent.
func (s *PushStream) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	cancel := s.cancel
	conn := s.conn
	s.mu.Unlock()

	cancel()
	if conn != nil {
		_ = conn.Close() // Unblocks the blocked ReadMessage.
	}
	s.wg.Wait()
}

func (s *PushStream) loop(ctx context.Context) {
	defer s.wg.Done()

	for ctx.Err() == nil {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.log.Warn().Err(err).Msg("Push dial failed, retrying")
			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectDelay):
			}
			continue
		}

		s.mu.Lock()
		s.conn = conn
		s.mu.Unlock()

		s.read(ctx, conn)

		s.mu.Lock()
		s.conn = nil
		s.mu.Unlock()
		_ = conn.Close()
	}
}

func (s *PushStream) read(ctx context.Context, conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn().Err(err).Msg("Push connection lost")
			}
			return
		}

		var n model.Notification
		if err := json.Unmarshal(data, &n); err != nil {
			s.log.Warn().Err(err).Msg("Undecodable push payload")
			continue
		}
		s.deliver(n)
	}
}
