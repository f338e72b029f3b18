package live

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Scoreboard viewers connect from arbitrary origins, mirroring the open
	// CORS policy on the REST surface.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveRoutes registers the websocket endpoint for live scoring and viewing.
func LiveRoutes(router *gin.Engine, dispatcher *Dispatcher, hub *Hub) {
	router.GET("/ws", func(c *gin.Context) {
		ServeWS(hub, dispatcher, c.Writer, c.Request)
	})
}

// ServeWS upgrades an HTTP request to a websocket connection and starts the
// client's read/write pumps.
func ServeWS(hub *Hub, dispatcher *Dispatcher, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("live: upgrade failed: %v", err)
		return
	}

	client := newClient(hub, conn)
	log.Printf("live: client %s connected", client.ID)

	go client.writePump()
	go client.readPump(dispatcher.Handle)
}
