package preview

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ai-stack/stackbuilder/internal/compat"
	"github.com/ai-stack/stackbuilder/internal/stack"
	"github.com/ai-stack/stackbuilder/internal/state"
	"github.com/ai-stack/stackbuilder/internal/vfs"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024
)

// Live message types.
const (
	MessagePreview = "preview"
	MessageError   = "error"
)

// LiveMessage is pushed to live clients. Fingerprint identifies the stack
// as the client sent it, so the client can match results to its edits.
type LiveMessage struct {
	Type        string          `json:"type"`
	Success     bool            `json:"success"`
	Error       string          `json:"error,omitempty"`
	Fingerprint string          `json:"fingerprint,omitempty"`
	Tree        *vfs.Node       `json:"tree,omitempty"`
	Stack       *stack.State    `json:"stack,omitempty"`
	Changes     []compat.Change `json:"changes,omitempty"`
}

// liveSession is one websocket client. Each received stack restarts the
// debounce window; only the newest stack is ever generated and a result
// that went stale while generating is dropped.
type liveSession struct {
	conn    *websocket.Conn
	service *Service
	tracker Tracker
	logger  *zap.Logger

	debouncer *Debouncer

	writeMu sync.Mutex
}

func (h *Handler) live(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	sess := &liveSession{
		conn:    conn,
		service: h.service,
		logger:  h.logger.With(zap.String("remote_addr", r.RemoteAddr)),
	}
	sess.debouncer = NewDebouncer(h.config.Debounce, sess.generate)
	sess.logger.Debug("live session opened")
	sess.readLoop()
}

func (ls *liveSession) readLoop() {
	defer func() {
		ls.debouncer.Stop()
		ls.conn.Close()
		ls.logger.Debug("live session closed")
	}()

	ls.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := ls.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				ls.logger.Warn("live session read failed", zap.Error(err))
			}
			return
		}

		s, err := state.DecodeJSON(data)
		if err != nil {
			ls.send(LiveMessage{Type: MessageError, Error: "invalid stack: " + err.Error()})
			continue
		}

		ls.tracker.Observe(s.Fingerprint())
		ls.debouncer.Trigger(s)
	}
}

func (ls *liveSession) generate(s stack.State) {
	tok := ls.tracker.Begin(s.Fingerprint())

	res, err := ls.service.Preview(s)
	if !ls.tracker.IsCurrent(tok) {
		ls.logger.Debug("dropping stale preview", zap.String("fingerprint", tok.Fingerprint()))
		return
	}
	if err != nil {
		ls.send(LiveMessage{Type: MessageError, Error: err.Error(), Fingerprint: tok.Fingerprint()})
		return
	}

	ls.send(LiveMessage{
		Type:        MessagePreview,
		Success:     true,
		Fingerprint: tok.Fingerprint(),
		Tree:        res.Tree,
		Stack:       &res.Stack,
		Changes:     res.Changes,
	})
}

func (ls *liveSession) send(msg LiveMessage) {
	ls.writeMu.Lock()
	defer ls.writeMu.Unlock()

	_ = ls.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := ls.conn.WriteJSON(msg); err != nil {
		ls.logger.Debug("live session write failed", zap.Error(err))
	}
}
