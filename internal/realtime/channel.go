package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// writeWait bounds how long a push may block on a slow client before the
// connection is considered dead.
const writeWait = 10 * time.Second

// WebsocketChannel adapts a websocket connection to the Channel interface.
// gorilla/websocket permits one concurrent writer, so writes are serialized
// behind a mutex.
type WebsocketChannel struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func NewWebsocketChannel(conn *websocket.Conn) *WebsocketChannel {
	return &WebsocketChannel{conn: conn}
}

func (c *WebsocketChannel) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *WebsocketChannel) Close() error {
	return c.conn.Close()
}
