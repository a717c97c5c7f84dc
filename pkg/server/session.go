package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/vango-dev/hashroute/pkg/fragment"
	"github.com/vango-dev/hashroute/pkg/location"
	"github.com/vango-dev/hashroute/pkg/mount"
)

const writeWait = 10 * time.Second

// Session is one browser connection navigating the app.
type Session struct {
	ID string

	// Location is the session's current hash. Setting it dispatches.
	Location *location.Location

	// Element is the session's mount point.
	Element *mount.Element

	server  *Server
	conn    *websocket.Conn
	logger  *slog.Logger
	created time.Time

	writeMu sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
}

func newSession(s *Server, conn *websocket.Conn, parent context.Context) *Session {
	ctx, cancel := context.WithCancel(parent)
	id := uuid.NewString()
	sess := &Session{
		ID:       id,
		Location: location.New(""),
		Element:  mount.NewElement(s.config.MountID),
		server:   s,
		conn:     conn,
		logger:   s.logger.With("session_id", id),
		created:  time.Now(),
		ctx:      ctx,
		cancel:   cancel,
	}
	sess.Location.OnChange(func(hash string) {
		sess.dispatch(hash)
	})
	return sess
}

// serve reads client frames until the connection closes.
func (sess *Session) serve() {
	sess.conn.SetReadLimit(sess.server.config.MaxMessageSize)
	if err := sess.send(ServerMessage{Type: TypeHello, Session: sess.ID}); err != nil {
		return
	}

	for {
		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sess.logger.Debug("read error", "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			sess.send(ServerMessage{Type: TypeError, Code: "protocol", Message: "malformed message"})
			continue
		}

		switch msg.Type {
		case TypeNavigate:
			sess.Navigate(msg.Hash)
		default:
			sess.send(ServerMessage{Type: TypeError, Code: "protocol", Message: "unknown message type " + msg.Type})
		}
	}
}

// Navigate moves the session to hash. The same hash is dispatched again
// so reloads re-render.
func (sess *Session) Navigate(hash string) {
	if !sess.Location.Set(hash) {
		sess.dispatch(hash)
	}
}

func (sess *Session) dispatch(hash string) {
	route, ok, err := sess.server.router.Dispatch(sess.ctx, hash, sess.Element)
	if err != nil {
		sess.send(ServerMessage{
			Type:    TypeError,
			Code:    sess.server.errorCode(err),
			Message: err.Error(),
		})
		return
	}
	if !ok {
		return
	}

	snap := sess.Element.Snapshot()
	if snap.Err != nil {
		sess.send(ServerMessage{Type: TypeError, Code: "render", Message: snap.Err.Error()})
		return
	}
	sess.send(ServerMessage{
		Type:     TypeRender,
		Route:    route.Name,
		Path:     route.Path,
		SubRoute: fragment.Parse(hash).SubRoute,
		HTML:     snap.HTML,
	})
}

// send writes one frame. Safe for concurrent use.
func (sess *Session) send(msg ServerMessage) error {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := sess.conn.WriteJSON(msg); err != nil {
		sess.logger.Debug("write failed", "error", err)
		return err
	}
	return nil
}

// Close ends the session.
func (sess *Session) Close() error {
	sess.cancel()
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	_ = sess.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	err := sess.conn.Close()
	if errors.Is(err, websocket.ErrCloseSent) {
		return nil
	}
	return err
}

// SessionManager tracks open sessions.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates an empty SessionManager.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

func (m *SessionManager) add(sess *Session) {
	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
}

func (m *SessionManager) remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Get returns the session with the given id.
func (m *SessionManager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Count returns the number of open sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// closeAll closes every session.
func (m *SessionManager) closeAll() {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.mu.RUnlock()

	for _, sess := range sessions {
		sess.Close()
	}
}
