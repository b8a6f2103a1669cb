package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"dzone/internal/config"
)

// Server accepts websocket connections carrying JSON event frames:
//
//	{"type":"join","uid":"u1","username":"ada","role_color":"#c0392b"}
//	{"type":"presence","uid":"u1","presence":"online"}
//	{"type":"message","uid":"u1","channel":"general","text":"hi"}
//
// Valid frames are pushed onto the feed; invalid ones are answered with an
// error frame and otherwise ignored.
type Server struct {
	feed *Feed
	cfg  *config.Config
	log  *zap.Logger

	// OnEvent, when set, is called from the connection goroutine for every
	// accepted frame.
	OnEvent func(Event)

	upgrader websocket.Upgrader
}

func NewServer(feed *Feed, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		feed: feed,
		cfg:  cfg,
		log:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type errorFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.log.Debug("upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()
		conn.SetReadLimit(s.cfg.GetMaxFrameBytes())

		remote := zap.String("remote", r.RemoteAddr)
		s.log.Info("transport connected", remote)
		defer s.log.Info("transport disconnected", remote)

		for {
			_ = conn.SetReadDeadline(time.Now().Add(s.cfg.GetReadTimeout()))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.log.Debug("read failed", remote, zap.Error(err))
				}
				return
			}
			var ev Event
			if err := json.Unmarshal(msg, &ev); err != nil {
				_ = writeJSON(conn, errorFrame{Type: "error", Error: "malformed frame"})
				continue
			}
			if err := ev.Validate(); err != nil {
				_ = writeJSON(conn, errorFrame{Type: "error", Error: err.Error()})
				continue
			}
			s.feed.Push(ev)
			if s.OnEvent != nil {
				s.OnEvent(ev)
			}
		}
	}
}

// ListenAndServe serves the handler on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(s.cfg.GetTransportPath(), s.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("transport listening", zap.String("addr", addr), zap.String("path", s.cfg.GetTransportPath()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
