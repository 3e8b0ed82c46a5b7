package websocket

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-widget/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-widget/internal/entity"
	"github.com/rocketscienceinc/tictactoe-widget/internal/widget"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	outboxSize     = 16
)

type gameUseCase interface {
	GetSession(ctx context.Context, sessionID string) (entity.Session, error)

	MakeTurn(ctx context.Context, sessionID string, cell int) (entity.Session, error)
	Restart(ctx context.Context, sessionID string) (entity.Session, error)
	ToggleTheme(ctx context.Context, sessionID string) (entity.Session, error)
}

type subscriber interface {
	Subscribe(sessionID string) chan entity.Session
	Unsubscribe(sessionID string, ch chan entity.Session)
	Subscribers(sessionID string) int
}

type handlerFunc func(ctx context.Context, sessionID string, message *Message) error

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	subscriber  subscriber
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gameUseCase gameUseCase, subscriber subscriber) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		subscriber:  subscriber,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionTurn] = server.handleGameTurn
	server.handlers[actionRestart] = server.handleRestart
	server.handlers[actionTheme] = server.handleThemeToggle

	return server
}

// ServeHTTP upgrades /ws?session=<id> and streams that session's views.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	sessionID := r.URL.Query().Get("session")
	session, err := that.gameUseCase.GetSession(r.Context(), sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get session", "sessionID", sessionID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	log = log.With("sessionID", session.ID)
	log.Info("WebSocket connection established")

	that.serve(r.Context(), conn, session.ID)

	log.Info("WebSocket connection closed")
}

func (that *Server) serve(parent context.Context, conn *websocket.Conn, sessionID string) {
	log := that.logger.With("method", "serve", "sessionID", sessionID)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	defer conn.Close()

	// subscribe before reading the initial state so no update falls in between
	updates := that.subscriber.Subscribe(sessionID)
	defer that.subscriber.Unsubscribe(sessionID, updates)

	log.Debug("subscribed", "viewers", that.subscriber.Subscribers(sessionID))

	session, err := that.gameUseCase.GetSession(ctx, sessionID)
	if err != nil {
		log.Error("failed to get session", "error", err)
		return
	}

	if err = that.writeState(conn, session); err != nil {
		log.Debug("failed to write initial state", "error", err)
		return
	}

	outbox := make(chan Message, outboxSize)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer conn.Close() // unblocks readLoop
		defer cancel()
		that.writeLoop(ctx, conn, updates, outbox)
	}()

	that.readLoop(ctx, conn, sessionID, outbox)
	cancel()
	<-writerDone
}

// readLoop - processes messages from the client until the connection drops.
func (that *Server) readLoop(ctx context.Context, conn *websocket.Conn, sessionID string, outbox chan<- Message) {
	log := that.logger.With("method", "readLoop", "sessionID", sessionID)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.reply(ctx, outbox, message.Action, "unknown action")
			continue
		}

		if err := handler(ctx, sessionID, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			that.reply(ctx, outbox, message.Action, errorText(err))
		}
	}
}

// writeLoop owns every write to conn.
func (that *Server) writeLoop(ctx context.Context, conn *websocket.Conn, updates <-chan entity.Session, outbox <-chan Message) {
	log := that.logger.With("method", "writeLoop")

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		var message Message

		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case session, ok := <-updates:
			if !ok {
				return
			}
			if err := that.writeState(conn, session); err != nil {
				log.Debug("failed to write state", "error", err)
				return
			}
			continue
		case message = <-outbox:
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Debug("failed to send ping", "error", err)
				return
			}
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(message); err != nil {
			log.Debug("failed to write message", "error", err)
			return
		}
	}
}

func (that *Server) writeState(conn *websocket.Conn, session entity.Session) error {
	message, err := stateMessage(widget.RenderSession(session))
	if err != nil {
		return err
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

	return conn.WriteJSON(message)
}

func (that *Server) reply(ctx context.Context, outbox chan<- Message, action, text string) {
	message, err := errorMessage(action, text)
	if err != nil {
		that.logger.Error("failed to build error message", "error", err)
		return
	}

	select {
	case outbox <- message:
	case <-ctx.Done():
	}
}

func errorText(err error) string {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return apperror.ErrSessionNotFound.Error()
	case errors.Is(err, apperror.ErrInvalidCell):
		return apperror.ErrInvalidCell.Error()
	case errors.Is(err, errInvalidPayload):
		return errInvalidPayload.Error()
	default:
		return "internal error"
	}
}
