// File: questly/services/realtime/session.go
package realtime

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/websocket"
)

const (
	maxFramePayloadBytes   = 8 * 1024
	maxFramesPerSecond     = 20
	maxDecodeErrorsPerConn = 3
	maxChannelsPerConn     = 32
)

// TokenValidator resolves a raw bearer token to a user identity. Split out
// so tests can stub authentication.
type TokenValidator func(token string) (userID, role string, err error)

type subscribePayload struct {
	Channels []string `json:"channels"`
}

type subscribedPayload struct {
	Channels   []string `json:"channels"`
	ServerTime string   `json:"server_time"`
}

type wsError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type wsErrorEnvelope struct {
	Error wsError `json:"error"`
}

// Handler upgrades GET /ws connections. Browsers cannot set headers on a
// WebSocket upgrade, so the token rides the query string.
func (s *Service) Handler(validate TokenValidator) http.Handler {
	wsHandler := websocket.Handler(func(conn *websocket.Conn) {
		s.handleConn(conn)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		token := strings.TrimSpace(r.URL.Query().Get("token"))
		if token == "" {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		userID, role, err := validate(token)
		if err != nil || userID == "" {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		q.Set("uid", userID)
		q.Set("urole", role)
		r.URL.RawQuery = q.Encode()

		wsHandler.ServeHTTP(w, r)
	})
}

func (s *Service) handleConn(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	var userID, role string
	if request := conn.Request(); request != nil {
		userID = request.URL.Query().Get("uid")
		role = request.URL.Query().Get("urole")
	}
	if userID == "" {
		return
	}

	decoder := json.NewDecoder(conn)
	peer := newWSPeer(json.NewEncoder(conn))
	subscribed := make(map[string]struct{})

	defer s.hub.drop(peer)

	windowStart := time.Now()
	framesInWindow := 0
	decodeErrors := 0

	for {
		var frame wsFrame
		if err := decoder.Decode(&frame); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			decodeErrors++
			_ = s.writeError(peer, "", "INVALID_ARGUMENT", "invalid frame payload")
			if decodeErrors >= maxDecodeErrorsPerConn {
				return
			}
			continue
		}
		decodeErrors = 0

		if len(frame.Payload) > maxFramePayloadBytes {
			_ = s.writeError(peer, frame.RequestID, "INVALID_ARGUMENT", "payload too large")
			continue
		}

		now := time.Now()
		if now.Sub(windowStart) >= time.Second {
			windowStart = now
			framesInWindow = 0
		}
		framesInWindow++
		if framesInWindow > maxFramesPerSecond {
			_ = s.writeError(peer, frame.RequestID, "RESOURCE_EXHAUSTED", "rate limit exceeded")
			return
		}

		switch frame.Type {
		case "feed.subscribe":
			s.handleSubscribe(conn, peer, userID, role, frame, subscribed)
		case "feed.unsubscribe":
			s.handleUnsubscribe(peer, frame, subscribed)
		case "ping":
			_ = peer.writeFrame(wsFrame{Type: "pong", RequestID: frame.RequestID})
		default:
			_ = s.writeError(peer, frame.RequestID, "INVALID_ARGUMENT", "unsupported frame type")
		}
	}
}

func (s *Service) handleSubscribe(conn *websocket.Conn, peer *wsPeer, userID, role string, frame wsFrame, subscribed map[string]struct{}) {
	var payload subscribePayload
	if err := json.Unmarshal(frame.Payload, &payload); err != nil {
		_ = s.writeError(peer, frame.RequestID, "INVALID_ARGUMENT", "invalid subscribe payload")
		return
	}
	if len(payload.Channels) == 0 {
		_ = s.writeError(peer, frame.RequestID, "INVALID_ARGUMENT", "channels is required")
		return
	}
	if len(subscribed)+len(payload.Channels) > maxChannelsPerConn {
		_ = s.writeError(peer, frame.RequestID, "RESOURCE_EXHAUSTED", "too many channels")
		return
	}

	ctx := conn.Request().Context()
	accepted := make([]string, 0, len(payload.Channels))
	for _, channel := range payload.Channels {
		channel = strings.TrimSpace(channel)
		if channel == "" {
			continue
		}
		allowed, err := s.authorizer.CanSubscribe(ctx, userID, role, channel)
		if err != nil {
			s.logger.Warn("Channel authorization check failed",
				zap.String("userID", userID), zap.String("channel", channel), zap.Error(err))
			_ = s.writeError(peer, frame.RequestID, "UNAVAILABLE", "channel authorization unavailable")
			return
		}
		if !allowed {
			_ = s.writeError(peer, frame.RequestID, "FORBIDDEN", "cannot subscribe to "+channel)
			return
		}
		accepted = append(accepted, channel)
	}

	for _, channel := range accepted {
		s.hub.subscribe(channel, peer)
		subscribed[channel] = struct{}{}
	}

	_ = peer.writeFrame(wsFrame{
		Type:      "feed.subscribed",
		RequestID: frame.RequestID,
		Payload: mustJSON(subscribedPayload{
			Channels:   accepted,
			ServerTime: time.Now().UTC().Format(time.RFC3339),
		}),
	})

	// Replay the channel buffers oldest first, so a client that prepends
	// each event ends up with the newest on top.
	for _, channel := range accepted {
		recent := s.hub.recentOn(channel)
		for i := len(recent) - 1; i >= 0; i-- {
			_ = peer.writeFrame(recent[i])
		}
	}
}

func (s *Service) handleUnsubscribe(peer *wsPeer, frame wsFrame, subscribed map[string]struct{}) {
	var payload subscribePayload
	if err := json.Unmarshal(frame.Payload, &payload); err != nil {
		_ = s.writeError(peer, frame.RequestID, "INVALID_ARGUMENT", "invalid unsubscribe payload")
		return
	}

	for _, channel := range payload.Channels {
		channel = strings.TrimSpace(channel)
		if _, ok := subscribed[channel]; !ok {
			continue
		}
		s.hub.unsubscribe(channel, peer)
		delete(subscribed, channel)
	}

	_ = peer.writeFrame(wsFrame{
		Type:      "feed.subscribed",
		RequestID: frame.RequestID,
		Payload: mustJSON(subscribedPayload{
			Channels:   remaining(subscribed),
			ServerTime: time.Now().UTC().Format(time.RFC3339),
		}),
	})
}

func remaining(subscribed map[string]struct{}) []string {
	channels := make([]string, 0, len(subscribed))
	for channel := range subscribed {
		channels = append(channels, channel)
	}
	return channels
}

func (s *Service) writeError(peer *wsPeer, requestID, code, message string) error {
	return peer.writeFrame(wsFrame{
		Type:      "feed.error",
		RequestID: requestID,
		Payload: mustJSON(wsErrorEnvelope{
			Error: wsError{Code: code, Message: message},
		}),
	})
}
