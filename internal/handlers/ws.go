package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackut-dev/jackut/internal/logger"
	"github.com/jackut-dev/jackut/internal/types"
	"github.com/jackut-dev/jackut/internal/utils"
	"go.uber.org/zap"
)

var (
	loginClients   = make(map[string]map[*websocket.Conn]bool)
	loginClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// NotifyDelivery pings every live connection of the login that something
// landed in one of its queues. Delivery stays send-and-forget: the queues
// are the source of truth, the socket only carries a hint to go read them.
func NotifyDelivery(login string, kind string) {
	loginClientsMu.RLock()
	clients, exists := loginClients[login]
	if !exists || len(clients) == 0 {
		loginClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	loginClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			logger.L.Warn("failed to set write deadline for delivery ping", zap.Error(err))
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":  "delivery",
			"queue": kind,
		})

		if err != nil {
			logger.L.Warn("failed to ping client", zap.String("login", login), zap.Error(err))
			loginClientsMu.Lock()
			if clients, exists := loginClients[login]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(loginClients, login)
				}
			}
			loginClientsMu.Unlock()
			conn.Close()
		}
	}
}

// WebSocket upgrades an authenticated connection and registers it under the
// session's login for delivery pings.
func WebSocket(c *gin.Context) {
	login, err := utils.CurrentLogin(c)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.L.Warn("failed to set initial read deadline", zap.Error(err))
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	loginClientsMu.Lock()
	if loginClients[login] == nil {
		loginClients[login] = make(map[*websocket.Conn]bool)
	}
	loginClients[login][conn] = true
	loginClientsMu.Unlock()

	defer func() {
		loginClientsMu.Lock()

		if clients, exists := loginClients[login]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(loginClients, login)
			}
		}

		loginClientsMu.Unlock()
		conn.Close()

		logger.L.Info("websocket closed", zap.String("login", login))
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":  "connected",
		"login": login,
	})

	if err != nil {
		logger.L.Warn("failed to send welcome message", zap.Error(err))
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	// Stopping the ticker alone would park the ping goroutine forever on a
	// channel that never fires again; done lets it exit with the handler.
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.L.Warn("websocket error", zap.String("login", login), zap.Error(err))
			}
			break
		}
	}
}
