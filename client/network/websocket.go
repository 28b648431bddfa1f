// Package network connects the client to the canvas gateway.
package network

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cbodonnell/worldcanvas/client/cache"
	"github.com/cbodonnell/worldcanvas/pkg/canvas/grid"
	"github.com/cbodonnell/worldcanvas/pkg/gateway"
	"github.com/cbodonnell/worldcanvas/pkg/log"
	"github.com/gorilla/websocket"
)

var _ cache.Subscriber = &WSClient{}

// WSClient is a WebSocket client for the chunk stream gateway. It
// implements the cache's Subscriber, multiplexing all chunk
// subscriptions over one connection.
type WSClient struct {
	serverAddr string
	conn       *websocket.Conn

	mu       sync.Mutex
	handlers map[grid.ChunkID]cache.ChunkEvents
}

// NewWSClient creates a new WebSocket client.
func NewWSClient(serverAddr string) *WSClient {
	return &WSClient{
		serverAddr: serverAddr,
		handlers:   make(map[grid.ChunkID]cache.ChunkEvents),
	}
}

// Connect establishes a connection to the gateway.
func (c *WSClient) Connect() error {
	log.Info("Connecting to gateway at %s", c.serverAddr)
	conn, _, err := websocket.DefaultDialer.Dial(c.serverAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %v", err)
	}
	c.conn = conn
	return nil
}

// Subscribe opens a chunk stream and routes its events to handler. The
// returned func cancels the subscription.
func (c *WSClient) Subscribe(chunkID grid.ChunkID, events cache.ChunkEvents) (func(), error) {
	c.mu.Lock()
	if _, ok := c.handlers[chunkID]; ok {
		c.mu.Unlock()
		return nil, fmt.Errorf("already subscribed to chunk %s", chunkID)
	}
	c.handlers[chunkID] = events
	c.mu.Unlock()

	if err := c.send(&gateway.ClientMessage{Op: gateway.OpSubscribe, ChunkID: chunkID.String()}); err != nil {
		c.mu.Lock()
		delete(c.handlers, chunkID)
		c.mu.Unlock()
		return nil, err
	}

	cancel := func() {
		c.mu.Lock()
		delete(c.handlers, chunkID)
		c.mu.Unlock()
		if err := c.send(&gateway.ClientMessage{Op: gateway.OpUnsubscribe, ChunkID: chunkID.String()}); err != nil {
			log.Warn("Failed to unsubscribe from chunk %s: %v", chunkID, err)
		}
	}
	return cancel, nil
}

// HandleMessages reads gateway frames until ctx is cancelled or the
// connection drops.
func (c *WSClient) HandleMessages(ctx context.Context) error {
	defer c.conn.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error("Error reading WebSocket message from %s: %v", c.conn.RemoteAddr().String(), err)
			}
			log.Trace("Connection closed for %s", c.conn.RemoteAddr().String())
			return err
		}

		if err := c.handleMessage(message); err != nil {
			log.Error("Failed to handle message: %v", err)
		}
	}
}

// handleMessage processes a received frame. Frames for chunks that were
// unsubscribed while in flight are dropped.
func (c *WSClient) handleMessage(b []byte) error {
	msg := &gateway.ServerMessage{}
	if err := json.Unmarshal(b, msg); err != nil {
		return fmt.Errorf("failed to deserialize message: %v", err)
	}

	chunkID, err := grid.ParseChunkID(msg.ChunkID)
	if err != nil {
		return fmt.Errorf("malformed chunk id %q: %v", msg.ChunkID, err)
	}

	c.mu.Lock()
	events, ok := c.handlers[chunkID]
	c.mu.Unlock()
	if !ok {
		log.Trace("Dropping event for unsubscribed chunk %s", chunkID)
		return nil
	}

	switch msg.Type {
	case gateway.TypeAdded:
		events.ObjectAdded(chunkID, msg.Key, msg.Record)
	case gateway.TypeRemoved:
		events.ObjectRemoved(chunkID, msg.Key, msg.Record, msg.Username)
	default:
		return fmt.Errorf("received unexpected message type from gateway: %s", msg.Type)
	}

	return nil
}

func (c *WSClient) send(msg *gateway.ClientMessage) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %v", err)
	}
	return nil
}

// Close closes the WebSocket connection.
func (c *WSClient) Close() error {
	if c.conn == nil {
		log.Warn("WebSocket connection is already closed")
		return nil
	}
	return c.conn.Close()
}
