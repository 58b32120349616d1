package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/brainspark/brainspark-backend/internal/service"
	ws "github.com/brainspark/brainspark-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams per-question countdowns over WebSocket.
type WSHandler struct {
	sessionService *service.SessionService
	log            zerolog.Logger
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(sessionService *service.SessionService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		sessionService: sessionService,
		log:            log.With().Str("component", "ws_handler").Logger(),
		upgrader:       buildUpgrader(allowedOrigins),
	}
}

// TimerStream godoc
// WS /ws/v1/quizzes/:session_id/timer
// Upgrades to WebSocket and pushes one tick per second plus countdown
// transitions (new question, extra time, timeout, finished) until the
// quiz ends or the client disconnects.
func (h *WSHandler) TimerStream(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	events, cancel, err := h.sessionService.Subscribe(sessionID.String())
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "subscribe failed"})
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("session_id", sessionID.String()).Logger()
	wsLog.Info().Msg("Timer stream connected")

	// Reader goroutine: answers pings and signals when the client hangs up.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}
			if msg.Action == ws.ActionPing {
				ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			}
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			view, err := h.sessionService.Get(sessionID.String())
			if err != nil {
				ws.WriteError(conn, "session is gone")
				return
			}
			if view.Finished {
				continue
			}
			tick := ws.TickResponse{
				Event:            ws.EventTick,
				QuestionIndex:    view.CurrentIndex,
				RemainingSeconds: view.RemainingSeconds,
			}
			if err := ws.WriteTyped(conn, tick); err != nil {
				return
			}
		case event, ok := <-events:
			if !ok {
				// Session was reset or reaped.
				ws.WriteError(conn, "session is gone")
				return
			}
			msg := ws.TimerResponse{
				Event:            timerEventName(event.Type),
				QuestionIndex:    event.QuestionIndex,
				RemainingSeconds: event.RemainingSeconds,
				Finished:         event.Finished,
			}
			if err := ws.WriteTyped(conn, msg); err != nil {
				return
			}
			if event.Type == service.EventFinished {
				wsLog.Info().Msg("Quiz finished, closing timer stream")
				conn.WriteControl(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "quiz finished"),
					time.Now().Add(time.Second),
				)
				return
			}
		}
	}
}

func timerEventName(t string) ws.Event {
	switch t {
	case service.EventQuestion:
		return ws.EventQuestion
	case service.EventExtraTime:
		return ws.EventExtraTime
	case service.EventTimeout:
		return ws.EventTimeout
	case service.EventFinished:
		return ws.EventFinished
	default:
		return ws.Event(t)
	}
}
