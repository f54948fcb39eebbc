package analytics

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"gatherly/middleware"
	"gatherly/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now
		return true
	},
}

// LiveUpdate is pushed to an organization's dashboard whenever one of its
// events gains a registration or a check-in.
type LiveUpdate struct {
	EventID             string `json:"eventid"`
	CurrentParticipants int    `json:"currentParticipants"`
	CheckedIn           bool   `json:"checkedIn,omitempty"`
}

// LiveHub fans registration updates out to dashboard websocket subscribers,
// keyed by organization id.
type LiveHub struct {
	mu          sync.Mutex
	subscribers map[string][]*websocket.Conn
}

var Live = &LiveHub{subscribers: make(map[string][]*websocket.Conn)}

// Publish sends the update to every open dashboard of the organization.
// Dead connections are dropped on write failure.
func (h *LiveHub) Publish(orgID string, update LiveUpdate) {
	data, err := json.Marshal(update)
	if err != nil {
		log.Println("LiveHub marshal error:", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.subscribers[orgID]
	alive := conns[:0]
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err == nil {
			alive = append(alive, conn)
		} else {
			conn.Close()
		}
	}
	h.subscribers[orgID] = alive
}

// HandleWS upgrades a dashboard connection and keeps it subscribed until the
// client disconnects. Browsers cannot set an Authorization header on a
// websocket, so the token also comes in as a query param.
func (h *LiveHub) HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgID := ps.ByName("orgid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		if claims, err := middleware.ValidateJWT("Bearer " + r.URL.Query().Get("token")); err == nil {
			userID = claims.UserID
		}
	}
	if orgID == "" || userID != orgID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	h.subscribers[orgID] = append(h.subscribers[orgID], conn)
	h.mu.Unlock()

	for {
		// Keeps the connection open until the client goes away.
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	conns := h.subscribers[orgID]
	remaining := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			remaining = append(remaining, c)
		}
	}
	h.subscribers[orgID] = remaining
	h.mu.Unlock()

	conn.Close()
}
