package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sravani-1304/weather-application/internal/logging"
	"github.com/sravani-1304/weather-application/internal/weather"
	"github.com/sravani-1304/weather-application/internal/widget"
)

// SessionIDHeader is set on the upgrade response.
const SessionIDHeader = "X-Session-ID"

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum command size allowed from peer
	maxMessageSize = 8192

	// Events buffered per session before the controller blocks
	sendBufferSize = 64
)

// session is one browser connection driving its own widget controller.
type session struct {
	id         string
	remoteAddr string
	conn       *websocket.Conn
	controller *widget.Controller
	log        *zap.Logger

	// themeMu is the server-wide lock serialising theme toggles.
	themeMu *sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc

	send      chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func newSession(id, remoteAddr string, conn *websocket.Conn) *session {
	ctx, cancel := context.WithCancel(context.Background())
	return &session{
		id:         id,
		remoteAddr: remoteAddr,
		conn:       conn,
		log:        logging.GetLogger().With(zap.String("session_id", id)),
		ctx:        ctx,
		cancel:     cancel,
		send:       make(chan Event, sendBufferSize),
		done:       make(chan struct{}),
	}
}

// emit queues ev for the writer. It gives up once the session is closed.
func (s *session) emit(ev Event) {
	select {
	case s.send <- ev:
	case <-s.done:
	}
}

func (s *session) emitError(kind, message string) {
	s.emit(Event{Type: EventError, Error: &ErrorBody{Kind: kind, Message: message}})
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		s.cancel()
		close(s.done)
	})
}

// socketRenderer turns controller output into WebSocket events.
type socketRenderer struct {
	s *session
}

func (r socketRenderer) RenderState(st widget.State) {
	r.s.emit(Event{Type: EventState, State: &st})
}

func (r socketRenderer) RenderReading(reading *weather.Reading, plan widget.Reveal) {
	r.s.emit(Event{Type: EventReading, Reading: reading, Reveal: &plan})
}

func (r socketRenderer) ShowToast(t widget.Toast) {
	r.s.emit(Event{Type: EventToast, Toast: &t})
}

func (r socketRenderer) HideToast(id uint64) {
	r.s.emit(Event{Type: EventToastDismissed, ToastID: id})
}

func (r socketRenderer) ApplyTheme(t widget.Theme) {
	r.s.emit(Event{Type: EventTheme, Theme: t})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()

	conn, err := s.upgrader.Upgrade(w, r, http.Header{SessionIDHeader: []string{id}})
	if err != nil {
		// The upgrader has already written an error response.
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err),
		)
		return
	}

	sess := newSession(id, r.RemoteAddr, conn)
	sess.themeMu = &s.themeMu
	opts := []widget.Option{
		widget.WithPreferences(s.config.Preferences),
		widget.WithLogger(sess.log),
	}
	if s.config.ToastDuration > 0 {
		opts = append(opts, widget.WithToastDuration(s.config.ToastDuration))
	}
	sess.controller = widget.NewController(s.config.Fetcher, socketRenderer{s: sess}, opts...)

	s.wg.Add(1)
	s.addSession(sess)
	logging.LogConnection(sess.remoteAddr, id, "websocket_opened")

	defer func() {
		sess.close()
		sess.controller.Close()
		s.removeSession(id)
		logging.LogConnection(sess.remoteAddr, id, "websocket_closed")
		s.wg.Done()
	}()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		sess.writePump()
	}()

	sess.controller.Start()
	sess.readPump()
	sess.close()
	<-writerDone
}

// readPump decodes commands until the peer goes away or the session closes.
func (s *session) readPump() {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Info("Connection closed unexpectedly",
					zap.String("remote_addr", s.remoteAddr),
					zap.Error(err),
				)
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			s.emitError(KindBadCommand, "Command is not valid JSON.")
			continue
		}
		s.dispatch(cmd)
	}
}

// dispatch runs cmd against the controller. Lookups run in their own
// goroutine so a slow provider never stalls the read loop.
func (s *session) dispatch(cmd Command) {
	s.log.Debug("Command received", zap.String("action", cmd.Action))

	switch cmd.Action {
	case ActionSearch:
		go func() {
			err := s.controller.Submit(s.ctx, cmd.Query)
			if err != nil && !errors.Is(err, widget.ErrSuperseded) {
				s.log.Debug("Search failed", zap.String("query", cmd.Query), zap.Error(err))
			}
		}()
	case ActionRetry:
		go func() {
			err := s.controller.Retry(s.ctx)
			if errors.Is(err, widget.ErrRetryUnavailable) || errors.Is(err, widget.ErrNoQuery) {
				s.emitError(KindRetryUnavailable, err.Error())
			}
		}()
	case ActionToggleTheme:
		s.themeMu.Lock()
		s.controller.ToggleTheme()
		s.themeMu.Unlock()
	case ActionDismissToast:
		s.controller.DismissToast()
	default:
		s.emitError(KindUnknownAction, "Unknown action \""+cmd.Action+"\".")
	}
}

// writePump is the only writer on the connection.
func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case ev := <-s.send:
			data, err := json.Marshal(ev)
			if err != nil {
				s.log.Error("Failed to encode event", zap.String("type", ev.Type), zap.Error(err))
				continue
			}
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.log.Info("Failed to write event", zap.String("type", ev.Type), zap.Error(err))
				s.close()
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.close()
				return
			}

		case <-s.done:
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
