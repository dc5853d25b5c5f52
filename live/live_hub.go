package live

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/table-order-app/utils"
)

// Event names yang dikirim ke room. "entrada"/"salida" adalah bagian dari
// kontrak wire dengan storefront, jangan diganti.
const (
	EventJoin    = "entrada"
	EventLeave   = "salida"
	EventMessage = "message"
)

type Message struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

// Hub menampung semua peserta sesi, dikelompokkan per room (room = tmp code
// sesi). Tiap room adalah broadcast domain yang independen.
type Hub struct {
	rooms map[string]map[*websocket.Conn]string // room -> conn -> display name
	mutex sync.Mutex
}

var liveHub = Hub{
	rooms: make(map[string]map[*websocket.Conn]string),
}

// JoinRoom mendaftarkan connection ke room lalu menyiarkan event entrada
// ke semua subscriber, termasuk yang baru bergabung.
func JoinRoom(room string, conn *websocket.Conn, name string) {
	liveHub.mutex.Lock()
	if liveHub.rooms[room] == nil {
		liveHub.rooms[room] = make(map[*websocket.Conn]string)
	}
	liveHub.rooms[room][conn] = name
	liveHub.mutex.Unlock()

	BroadcastToRoom(room, Message{
		Message: name,
		Name:    EventJoin,
	})
}

// LeaveRoom melepaskan connection dari room dan menyiarkan event salida
// ke subscriber yang tersisa.
func LeaveRoom(room string, conn *websocket.Conn) {
	liveHub.mutex.Lock()
	conns, ok := liveHub.rooms[room]
	if !ok {
		liveHub.mutex.Unlock()
		return
	}
	name, member := conns[conn]
	delete(conns, conn)
	if len(conns) == 0 {
		delete(liveHub.rooms, room)
	}
	liveHub.mutex.Unlock()

	conn.Close()

	if member {
		BroadcastToRoom(room, Message{
			Message: name,
			Name:    EventLeave,
		})
	}
}

// BroadcastToRoom mengirim pesan ke seluruh subscriber satu room.
// Room lain tidak pernah menerima pesan ini.
func BroadcastToRoom(room string, msg Message) {
	liveHub.mutex.Lock()
	defer liveHub.mutex.Unlock()

	conns, ok := liveHub.rooms[room]
	if !ok {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling room message: %v", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending message to room %s: %v", room, err)
			continue
		}
	}
}

// RoomSize mengembalikan jumlah subscriber pada sebuah room.
func RoomSize(room string) int {
	liveHub.mutex.Lock()
	defer liveHub.mutex.Unlock()
	return len(liveHub.rooms[room])
}
