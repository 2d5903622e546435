package booking

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// CORS policy is enforced at the HTTP layer
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

// HandleWS streams slot availability changes for one doctor to the client.
func HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	docID := ps.ByName("docId")
	if docID == "" {
		http.Error(w, "missing doctor id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	mu.Lock()
	subscribers[docID] = append(subscribers[docID], conn)
	mu.Unlock()

	for {
		// This keeps the connection alive until the client disconnects
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	// Clean up on disconnect
	mu.Lock()
	conns := subscribers[docID]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[docID] = newList
	mu.Unlock()

	conn.Close()
}

type slotEvent struct {
	DocID    string `json:"docid"`
	SlotDate string `json:"slotdate"`
	SlotTime string `json:"slottime"`
	Status   string `json:"status"` // booked, freed
}

// notifySlotChange fans a slot event out to everyone watching the doctor's
// calendar. Dead connections are dropped on write failure.
func notifySlotChange(docID, slotDate, slotTime, status string) {
	data, err := json.Marshal(slotEvent{
		DocID:    docID,
		SlotDate: slotDate,
		SlotTime: slotTime,
		Status:   status,
	})
	if err != nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[docID]
	newList := conns[:0]
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}
	subscribers[docID] = newList
}
