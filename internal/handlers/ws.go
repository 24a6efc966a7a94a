package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/taskhive-dev/taskhive/internal/types"
)

// Per-project subscriber sets. Connected clients get an event whenever a
// task or comment under their project changes, so the SPA can refetch.
var (
	projectSubscribers   = make(map[string]map[*websocket.Conn]bool)
	projectSubscribersMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastProjectEvent notifies every subscriber of projectID that
// something under the project changed. Failed connections are dropped.
func BroadcastProjectEvent(projectID string, event string) {
	projectSubscribersMu.RLock()
	subscribers, exists := projectSubscribers[projectID]
	if !exists || len(subscribers) == 0 {
		projectSubscribersMu.RUnlock()
		return
	}

	conns := make([]*websocket.Conn, 0, len(subscribers))
	for conn := range subscribers {
		conns = append(conns, conn)
	}
	projectSubscribersMu.RUnlock()

	for _, conn := range conns {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":       event,
			"project_id": projectID,
		})

		if err != nil {
			log.Printf("Failed to broadcast %s to client: %v", event, err)
			unsubscribe(projectID, conn)
			conn.Close()
		}
	}
}

func unsubscribe(projectID string, conn *websocket.Conn) {
	projectSubscribersMu.Lock()
	if subscribers, exists := projectSubscribers[projectID]; exists {
		delete(subscribers, conn)
		if len(subscribers) == 0 {
			delete(projectSubscribers, projectID)
		}
	}
	projectSubscribersMu.Unlock()
}

func WebSocket(c *gin.Context) {
	projectID := c.Param("project_id")

	if projectID == "" {
		c.JSON(http.StatusBadRequest, types.Response{Success: false, Message: "Project ID is required"})
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
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	projectSubscribersMu.Lock()
	if projectSubscribers[projectID] == nil {
		projectSubscribers[projectID] = make(map[*websocket.Conn]bool)
	}
	projectSubscribers[projectID][conn] = true
	projectSubscribersMu.Unlock()

	defer func() {
		unsubscribe(projectID, conn)
		conn.Close()
		log.Printf("WebSocket connection closed for project %s", projectID)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":       "connected",
		"project_id": projectID,
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for project %s: %v", projectID, err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for project %s: %v", projectID, err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline for project %s: %v", projectID, err)
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for project %s: %v", projectID, err)
			}
			break
		}
	}
}
