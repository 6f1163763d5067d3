package navserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wayfind-dev/wayfind/pkg/engine"
	"github.com/wayfind-dev/wayfind/pkg/notice"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 50 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 16
)

// frame is one JSON message on the live navigation channel.
type frame struct {
	Type string `json:"type"`

	// Client to server.
	URL    string `json:"url,omitempty"`
	Handle string `json:"handle,omitempty"`

	// Server to client.
	Match  *matchPayload `json:"match,omitempty"`
	Notice *frameNotice  `json:"notice,omitempty"`
	Error  *errorPayload `json:"error,omitempty"`
}

type frameNotice struct {
	Level       string   `json:"level"`
	Title       string   `json:"title,omitempty"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan frame
}

// hub tracks connected WebSocket clients.
type hub struct {
	mu      sync.Mutex
	clients map[*wsClient]struct{}
	closed  bool
}

func newHub() *hub {
	return &hub{clients: make(map[*wsClient]struct{})}
}

func (h *hub) add(c *wsClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *hub) remove(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// broadcast drops the frame for clients with a full send buffer rather
// than blocking the navigation pipeline.
func (h *hub) broadcast(f frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- f:
		default:
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// broadcastRouteChange pushes a route_change frame to every client.
// Registered as an engine route-change callback.
func (s *Server) broadcastRouteChange(match *router.MatchResult) {
	s.hub.broadcast(frame{Type: "route_change", Match: toMatchPayload(match)})
}

// Presenter returns a notice presenter that forwards engine notices to
// connected clients. Wire it into the engine alongside a logging
// presenter.
func (s *Server) Presenter() notice.Presenter {
	return notice.Func(func(n notice.Notice) {
		s.hub.broadcast(frame{Type: "notice", Notice: &frameNotice{
			Level:       string(n.Level),
			Title:       n.Title,
			Message:     n.Message,
			Suggestions: n.Suggestions,
		}})
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &wsClient{conn: conn, send: make(chan frame, sendBuffer)}
	if !s.hub.add(client) {
		conn.Close()
		return
	}
	s.logger.Debug("websocket client connected", "remote", r.RemoteAddr)

	go s.writeLoop(client)
	s.readLoop(r, client)
}

func (s *Server) readLoop(r *http.Request, c *wsClient) {
	defer func() {
		s.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var f frame
		if err := c.conn.ReadJSON(&f); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket read failed", "error", err)
			}
			return
		}

		switch f.Type {
		case "navigate":
			res := s.engine.Navigate(r.Context(), f.URL, engine.NavigateOptions{})
			if res.Err != nil {
				s.hub.broadcast(frame{Type: "navigation_failed", URL: f.URL, Error: toErrorPayload(res.Err)})
			}
		case "back":
			s.engine.Back()
		case "close_modal":
			s.engine.CloseModal(r.Context(), f.Handle)
		default:
			s.logger.Debug("unknown websocket frame", "type", f.Type)
		}
	}
}

func (s *Server) writeLoop(c *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case f, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(f); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
