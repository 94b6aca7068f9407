package file

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"godrive/internal/domain/session"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

// Outbound event types.
const (
	EventSnapshot       = "snapshot"
	EventUploadProgress = "upload_progress"
	EventInteraction    = "interaction"
)

// wsEvent is the envelope for every message pushed to clients.
type wsEvent struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// gestureEvent is what clients send: a UI gesture to fold through the
// connection's interaction state.
type gestureEvent struct {
	Type    string  `json:"type"`
	Gesture string  `json:"gesture"`
	FileID  string  `json:"file_id,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Name    string  `json:"name,omitempty"` // rename seed / draft text
}

// connection is a single websocket client. Each carries its own interaction
// state; two tabs of the same user select and preview independently.
type connection struct {
	ownerID int64
	conn    *websocket.Conn
	send    chan []byte
	state   session.State
}

// Hub delivers full-collection snapshots, upload progress and interaction
// echoes to connected clients. Every snapshot is authoritative: clients
// replace their working copy wholesale, no incremental merging.
type Hub struct {
	repo Repository

	mu          sync.RWMutex
	connections map[int64][]*connection // ownerID -> open connections
}

func NewHub(repo Repository) *Hub {
	return &Hub{
		repo:        repo,
		connections: make(map[int64][]*connection),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c.ownerID] = append(h.connections[c.ownerID], c)
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.connections[c.ownerID]
	for i, existing := range conns {
		if existing == c {
			h.connections[c.ownerID] = append(conns[:i], conns[i+1:]...)
			close(c.send)
			break
		}
	}
	if len(h.connections[c.ownerID]) == 0 {
		delete(h.connections, c.ownerID)
	}
}

// FilesChanged pushes a fresh full-collection snapshot to every connection of
// the owner. Fire-and-forget: a slow client is skipped, never waited on.
func (h *Hub) FilesChanged(ownerID int64) {
	files, err := h.repo.ListByOwner(context.Background(), ownerID)
	if err != nil {
		log.Printf("hub: snapshot load failed owner=%d err=%v", ownerID, err)
		return
	}
	h.broadcast(ownerID, wsEvent{Type: EventSnapshot, Payload: files})
}

// UploadProgress pushes the state of the owner's upload session.
func (h *Hub) UploadProgress(ownerID int64, status UploadStatus) {
	h.broadcast(ownerID, wsEvent{Type: EventUploadProgress, Payload: status})
}

func (h *Hub) broadcast(ownerID int64, event wsEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections[ownerID] {
		select {
		case c.send <- data:
		default:
			// Client too slow — skip
		}
	}
}

// ServeWS registers a connection, sends the initial snapshot and runs the
// read/write loops until disconnect.
func (h *Hub) ServeWS(conn *websocket.Conn, ownerID int64) {
	c := &connection{
		ownerID: ownerID,
		conn:    conn,
		send:    make(chan []byte, 256),
	}

	h.register(c)
	go h.writePump(c)

	h.FilesChanged(ownerID)

	h.readPump(c) // blocks until disconnect
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var event gestureEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			continue
		}
		if event.Type != "gesture" {
			continue
		}

		h.applyGesture(c, event)
	}
}

// applyGesture folds a UI gesture through the connection's interaction state
// and echoes the result. Mutations themselves travel over the REST API; the
// hub only tracks what is selected, which menu is open and which modal shows.
func (h *Hub) applyGesture(c *connection, event gestureEvent) {
	switch event.Gesture {
	case "click":
		c.state.Click(event.FileID)
	case "dblclick":
		c.state.DoubleClick(event.FileID)
	case "rightclick":
		c.state.RightClick(event.FileID, event.X, event.Y)
	case "outside_click":
		c.state.OutsideClick()
	case "escape":
		c.state.Escape()
	case "preview":
		c.state.OpenPreview(event.FileID)
	case "rename":
		c.state.OpenRename(event.FileID, event.Name)
	case "rename_draft":
		c.state.SetRenameDraft(event.Name)
	case "confirm_delete":
		c.state.OpenConfirmDelete(event.FileID)
	case "close_menu":
		c.state.CloseMenu()
	case "dismiss":
		c.state.Dismiss()
	case "reset":
		c.state.Reset()
	default:
		return
	}

	data, err := json.Marshal(wsEvent{Type: EventInteraction, Payload: c.state})
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
