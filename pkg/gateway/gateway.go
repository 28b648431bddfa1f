// Package gateway exposes chunk streams over WebSocket. A client
// subscribes to chunk ids and receives the chunk's current objects
// followed by live add/remove deltas, in commit order per chunk.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/cbodonnell/worldcanvas/pkg/canvas/grid"
	"github.com/cbodonnell/worldcanvas/pkg/log"
	"github.com/cbodonnell/worldcanvas/pkg/store"
	"github.com/gorilla/websocket"
)

type Gateway struct {
	store store.Store
	port  int
	tls   *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewGatewayOptions struct {
	Store store.Store
	Port  int
	TLS   *TLSConfig
}

func NewGateway(opts NewGatewayOptions) *Gateway {
	return &Gateway{
		store: opts.Store,
		port:  opts.Port,
		tls:   opts.TLS,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Start starts the gateway server and blocks until ctx is cancelled or
// the listener fails.
func (g *Gateway) Start(ctx context.Context) {
	mux := http.NewServeMux()
	mux.HandleFunc("/stream", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("Failed to upgrade to WebSocket: %v", err)
			return
		}
		log.Debug("New WebSocket connection from %s", conn.RemoteAddr().String())
		go g.handleConnection(ctx, conn)
	})

	addr := fmt.Sprintf(":%d", g.port)
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		server.Shutdown(ctx)
	}()

	var listenAndServe func() error
	if g.tls != nil {
		log.Info("Gateway listening on %s with TLS", addr)
		listenAndServe = func() error {
			return server.ListenAndServeTLS(g.tls.CertFile, g.tls.KeyFile)
		}
	} else {
		log.Info("Gateway listening on %s", addr)
		listenAndServe = server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("Gateway closed")
			return
		}
		log.Error("Gateway error: %v", err)
	}
}

// session is the per-connection state. The write mutex serializes frames
// from the per-chunk subscription handlers onto the single connection.
type session struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu   sync.Mutex
	subs map[string]store.Subscription
}

func (g *Gateway) handleConnection(ctx context.Context, conn *websocket.Conn) {
	sess := &session{
		conn: conn,
		subs: make(map[string]store.Subscription),
	}
	defer func() {
		sess.cancelAll()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error("Error reading WebSocket message from %s: %v", conn.RemoteAddr().String(), err)
			}
			log.Trace("Connection closed for %s", conn.RemoteAddr().String())
			return
		}

		msg := &ClientMessage{}
		if err := json.Unmarshal(data, msg); err != nil {
			log.Warn("Malformed message from %s: %v", conn.RemoteAddr().String(), err)
			continue
		}

		switch msg.Op {
		case OpSubscribe:
			g.subscribe(ctx, sess, msg.ChunkID)
		case OpUnsubscribe:
			sess.unsubscribe(msg.ChunkID)
		default:
			log.Warn("Unknown op %q from %s", msg.Op, conn.RemoteAddr().String())
		}
	}
}

func (g *Gateway) subscribe(ctx context.Context, sess *session, chunkID string) {
	if _, err := grid.ParseChunkID(chunkID); err != nil {
		log.Warn("Rejecting subscription to malformed chunk id %q: %v", chunkID, err)
		return
	}

	sess.mu.Lock()
	if _, ok := sess.subs[chunkID]; ok {
		sess.mu.Unlock()
		return
	}
	sess.mu.Unlock()

	sub, err := g.store.Subscribe(ctx, store.ChunkPath(chunkID), &chunkRelay{
		ctx:     ctx,
		store:   g.store,
		sess:    sess,
		chunkID: chunkID,
	})
	if err != nil {
		log.Error("Failed to subscribe to chunk %s: %v", chunkID, err)
		return
	}

	sess.mu.Lock()
	if _, ok := sess.subs[chunkID]; ok {
		// Lost a race with a duplicate subscribe on the same connection.
		sess.mu.Unlock()
		sub.Cancel()
		return
	}
	sess.subs[chunkID] = sub
	sess.mu.Unlock()
}

func (sess *session) unsubscribe(chunkID string) {
	sess.mu.Lock()
	sub, ok := sess.subs[chunkID]
	delete(sess.subs, chunkID)
	sess.mu.Unlock()
	if ok {
		sub.Cancel()
	}
}

func (sess *session) cancelAll() {
	sess.mu.Lock()
	subs := sess.subs
	sess.subs = make(map[string]store.Subscription)
	sess.mu.Unlock()
	for _, sub := range subs {
		sub.Cancel()
	}
}

func (sess *session) send(msg *ServerMessage) {
	b, err := json.Marshal(msg)
	if err != nil {
		log.Error("Failed to serialize message: %v", err)
		return
	}
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	if err := sess.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		log.Trace("Failed to write to %s: %v", sess.conn.RemoteAddr().String(), err)
	}
}

// chunkRelay forwards one chunk's store events onto the session.
type chunkRelay struct {
	ctx     context.Context
	store   store.Store
	sess    *session
	chunkID string
}

func (r *chunkRelay) ChildAdded(key, value string) {
	r.sess.send(&ServerMessage{
		Type:    TypeAdded,
		ChunkID: r.chunkID,
		Key:     key,
		Record:  value,
	})
}

func (r *chunkRelay) ChildRemoved(key, value string) {
	r.sess.send(&ServerMessage{
		Type:     TypeRemoved,
		ChunkID:  r.chunkID,
		Key:      key,
		Record:   value,
		Username: placedUsername(r.ctx, r.store, key),
	})
}

// placedUsername resolves the username the placed-by index holds for an
// object key. Best effort: the pipeline clears the index entry shortly
// after the delete commits, so a late relay may find nothing.
func placedUsername(ctx context.Context, s store.Store, key string) string {
	username, ok, err := s.Get(ctx, store.UserPlacedPath(key))
	if err != nil {
		log.Warn("Failed to resolve placer of %s: %v", key, err)
		return ""
	}
	if !ok {
		return ""
	}
	return username
}
