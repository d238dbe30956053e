package realtime

import (
	"net/http"
	"net/url"
	"strings"

	"go-gin-events/pkg/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// NewUpgrader 依 allow-list 檢查 Origin；清單含 "*" 時全部允許
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	allowed, allowAll := normalizeOrigins(allowedOrigins)

	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if allowAll {
				return true
			}
			origin, ok := normalizeOrigin(r.Header.Get("Origin"))
			if ok {
				if _, exists := allowed[origin]; exists {
					return true
				}
			}
			logger.WithComponent("ws").Warn("Blocked websocket from disallowed origin", zap.String("origin", r.Header.Get("Origin")))
			return false
		},
	}
}

func normalizeOrigins(origins []string) (map[string]struct{}, bool) {
	normalized := make(map[string]struct{}, len(origins))
	allowAll := false

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		if trimmed == "*" {
			allowAll = true
			continue
		}
		n, ok := normalizeOrigin(trimmed)
		if !ok {
			logger.WithComponent("ws").Warn("Ignoring invalid origin in configuration", zap.String("origin", origin))
			continue
		}
		normalized[n] = struct{}{}
	}
	return normalized, allowAll
}

func normalizeOrigin(origin string) (string, bool) {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}
	return strings.ToLower(parsed.Scheme) + "://" + strings.ToLower(parsed.Host), true
}
