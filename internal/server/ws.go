package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/haldis/devcard/internal/logging"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer; clients only receive
	maxMessageSize = 512
)

// handleWS upgrades the request to a WebSocket and streams profiles to
// the client until it disconnects or the server shuts down
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error to the client
		logging.Error("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	remoteAddr := conn.RemoteAddr().String()
	s.trackClient(remoteAddr, conn)
	logging.Info("Share client connected",
		zap.String("remote_addr", remoteAddr),
	)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.pushProfiles(conn, remoteAddr)
	}()
}

// pushProfiles streams one profile immediately and then a fresh one on
// every interval tick. A reader goroutine drains the client's frames so
// close frames and pongs are processed; its exit signals disconnect.
func (s *Server) pushProfiles(conn *websocket.Conn, remoteAddr string) {
	defer func() {
		s.untrackClient(remoteAddr)
		_ = conn.Close()
		logging.Info("Share client disconnected",
			zap.String("remote_addr", remoteAddr),
		)
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(maxMessageSize)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// First push right away so the client does not wait a full interval
	if err := s.pushProfile(conn, remoteAddr); err != nil {
		return
	}

	ticker := time.NewTicker(s.interval())
	defer ticker.Stop()
	pinger := time.NewTicker(pingPeriod)
	defer pinger.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := s.pushProfile(conn, remoteAddr); err != nil {
				return
			}
		case <-pinger.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// pushProfile builds and sends a single profile frame
func (s *Server) pushProfile(conn *websocket.Conn, remoteAddr string) error {
	profile := BuildProfile(context.Background(), s.builder, s.resolver)

	data, err := json.Marshal(profile)
	if err != nil {
		logging.Error("Failed to marshal profile",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
		return err
	}

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		logging.Info("Failed to push profile, client closed",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
		return err
	}

	logging.LogProfilePush(remoteAddr, len(data))
	return nil
}
