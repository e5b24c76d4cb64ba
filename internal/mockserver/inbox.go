package mockserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/muurk/campuspass/internal/logging"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Messages kept for clients that connect late
	historySize = 50

	clientBuffer = 16
)

// InboxMessage is an email the mock backend "sent".
type InboxMessage struct {
	ID      string    `json:"id"`
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

// NewInboxMessage stamps a message with an ID and the current time.
func NewInboxMessage(to, subject, body string) InboxMessage {
	return InboxMessage{
		ID:      uuid.NewString(),
		To:      to,
		Subject: subject,
		Body:    body,
		SentAt:  time.Now().UTC(),
	}
}

// Inbox fans sent messages out to websocket subscribers.
type Inbox struct {
	mu       sync.Mutex
	clients  map[*inboxClient]struct{}
	history  []InboxMessage
	upgrader websocket.Upgrader
}

type inboxClient struct {
	send chan InboxMessage
}

// NewInbox creates an empty inbox.
func NewInbox() *Inbox {
	return &Inbox{
		clients: make(map[*inboxClient]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Publish records msg and delivers it to every connected client. Slow
// clients drop messages rather than block the sender.
func (in *Inbox) Publish(msg InboxMessage) {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.history = append(in.history, msg)
	if len(in.history) > historySize {
		in.history = in.history[len(in.history)-historySize:]
	}
	for c := range in.clients {
		select {
		case c.send <- msg:
		default:
			logging.Warn("Inbox client is not keeping up, dropping message", zap.String("id", msg.ID))
		}
	}
}

// History returns the retained messages, oldest first.
func (in *Inbox) History() []InboxMessage {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make([]InboxMessage, len(in.history))
	copy(out, in.history)
	return out
}

// Clients returns the number of connected subscribers.
func (in *Inbox) Clients() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.clients)
}

func (in *Inbox) register() (*inboxClient, []InboxMessage) {
	in.mu.Lock()
	defer in.mu.Unlock()
	c := &inboxClient{send: make(chan InboxMessage, clientBuffer)}
	in.clients[c] = struct{}{}
	backlog := make([]InboxMessage, len(in.history))
	copy(backlog, in.history)
	return c, backlog
}

func (in *Inbox) unregister(c *inboxClient) {
	in.mu.Lock()
	defer in.mu.Unlock()
	delete(in.clients, c)
}

// ServeHTTP upgrades the request and streams messages as JSON text frames.
// The backlog is replayed first.
func (in *Inbox) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := in.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("Inbox upgrade failed", zap.String("remote_addr", r.RemoteAddr), zap.Error(err))
		return
	}

	client, backlog := in.register()
	logging.LogWebSocketEvent(r.RemoteAddr, "connected", in.Clients())

	defer func() {
		in.unregister(client)
		_ = conn.Close()
		logging.LogWebSocketEvent(r.RemoteAddr, "disconnected", in.Clients())
	}()

	// The reader only exists to notice the peer going away and to process pongs.
	closed := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(msg InboxMessage) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(msg) == nil
	}

	for _, msg := range backlog {
		if !write(msg) {
			return
		}
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-client.send:
			if !write(msg) {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
