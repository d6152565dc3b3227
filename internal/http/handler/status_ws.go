package handler

import (
	"database/sql"
	"encoding/json"
	"log"
	"sync"
	"time"

	"backend-reservation/internal/helper"
	"backend-reservation/internal/realtime"

	"github.com/gofiber/websocket/v2"
)

/*
|--------------------------------------------------------------------------
| Live Waiting Status (WebSocket)
|--------------------------------------------------------------------------
| Push channel next to the polling summary endpoint. Clients join a
| per-branch room and receive the summary again after every mutation.
*/

type statusEvent struct {
	Type    string      `json:"type"`
	Open    bool        `json:"open"`
	Summary interface{} `json:"summary,omitempty"`
	Message string      `json:"message,omitempty"`
}

var (
	// Debounce per room so a burst of mutations stays one DB round trip.
	broadcastTimers   = make(map[string]*time.Timer)
	broadcastTimersMu sync.Mutex
	broadcastDelay    = 50 * time.Millisecond
)

func statusRoom(companyID, branchID string) string {
	return companyID + ":" + branchID
}

// StatusWebSocket - GET /ws/status/:companyId/:branchId
func StatusWebSocket(c *websocket.Conn) {
	companyID := c.Params("companyId")
	branchID := c.Params("branchId")
	room := statusRoom(companyID, branchID)

	realtime.Status.Register(room, c)
	defer realtime.Status.Unregister(room, c)

	// Initial snapshot for this client only
	summary, err := loadSummary(companyID, branchID)
	if err == sql.ErrNoRows {
		_ = c.WriteJSON(statusEvent{
			Type:    "error",
			Message: "Branch not found",
		})
		return
	}
	if err != nil {
		log.Printf("[status-ws] %s initial summary error: %v", room, err)
		_ = c.WriteJSON(statusEvent{
			Type:    "error",
			Message: "Failed to load waiting status",
		})
		return
	}

	_ = c.WriteJSON(statusEvent{
		Type:    "status",
		Open:    helper.IsOpen(summary.BusinessHours),
		Summary: summary,
	})

	// Read loop; exit on client close
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}

// BroadcastStatusUpdate is called after every reservation mutation.
// Debounced per room so a burst of events still queries the DB once.
func BroadcastStatusUpdate(companyID, branchID string) {
	room := statusRoom(companyID, branchID)

	if !realtime.Status.HasClients(room) {
		return
	}

	broadcastTimersMu.Lock()
	defer broadcastTimersMu.Unlock()

	if timer, ok := broadcastTimers[room]; ok {
		timer.Reset(broadcastDelay)
		return
	}

	broadcastTimers[room] = time.AfterFunc(broadcastDelay, func() {
		broadcastTimersMu.Lock()
		delete(broadcastTimers, room)
		broadcastTimersMu.Unlock()

		pushStatus(companyID, branchID, room)
	})
}

func pushStatus(companyID, branchID, room string) {
	summary, err := loadSummary(companyID, branchID)
	if err != nil {
		log.Printf("[status-ws] %s broadcast summary error: %v", room, err)
		return
	}

	msg, err := json.Marshal(statusEvent{
		Type:    "status",
		Open:    helper.IsOpen(summary.BusinessHours),
		Summary: summary,
	})
	if err != nil {
		return
	}

	realtime.Status.Broadcast(room, msg)
}
