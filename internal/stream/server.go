// Package stream drives a game on a fixed tick and publishes every frame to
// websocket clients, so an external renderer can draw the scene and feed
// pointer input back.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/pong3d/internal/core"
	"github.com/vovakirdan/pong3d/internal/games/pong"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Message types accepted from clients.
const (
	TypePointer = "pointer"
	TypePause   = "pause"
	TypeRestart = "restart"
)

// Message is a client to server event.
type Message struct {
	Type string  `json:"type"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"` // Normalized -1 (top) to 1 (bottom)
}

// Simulation is the game the server drives. Only the frame loop calls it.
type Simulation interface {
	Step(in core.InputFrame) core.StepResult
	Snapshot() pong.Snapshot
}

// Options configures a Server.
type Options struct {
	Address     string        // host:port for Run
	Path        string        // Websocket endpoint, "/ws" when empty
	TickRate    int           // Frames per second
	MaxDelta    float64       // Largest delta one frame may advance
	InputBuffer int           // Queued client messages before new ones are dropped
	SendBuffer  int           // Queued frames per client before frames are dropped
	Logger      *log.Logger   // nil uses log.Default
	ShutdownTTL time.Duration // Grace period for open connections on shutdown
}

// DefaultOptions returns options for a local server at 60 frames per second.
func DefaultOptions() Options {
	return Options{
		Address:     ":8080",
		Path:        "/ws",
		TickRate:    60,
		MaxDelta:    0.1,
		InputBuffer: 256,
		SendBuffer:  8,
		ShutdownTTL: 5 * time.Second,
	}
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Server owns the simulation and its clients.
type Server struct {
	sim    Simulation
	opts   Options
	logger *log.Logger
	clock  *core.Clock
	input  chan Message
	frame  core.InputFrame

	mu      sync.Mutex
	clients map[string]*client
}

// NewServer creates a server for sim. Zero option fields take their defaults.
func NewServer(sim Simulation, opts Options) *Server {
	def := DefaultOptions()
	if opts.Path == "" {
		opts.Path = def.Path
	}
	if opts.TickRate <= 0 {
		opts.TickRate = def.TickRate
	}
	if opts.InputBuffer <= 0 {
		opts.InputBuffer = def.InputBuffer
	}
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = def.SendBuffer
	}
	if opts.ShutdownTTL <= 0 {
		opts.ShutdownTTL = def.ShutdownTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Server{
		sim:     sim,
		opts:    opts,
		logger:  logger.WithPrefix("stream"),
		clock:   core.NewClock(opts.MaxDelta),
		input:   make(chan Message, opts.InputBuffer),
		frame:   core.NewInputFrame(),
		clients: make(map[string]*client),
	}
}

// Handler returns the HTTP handler serving the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.opts.Path, s.handleWebSocket)
	return mux
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Run serves clients and steps the simulation until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", "address", s.opts.Address, "path", s.opts.Path)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("stream: serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.loop(ctx)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTTL)
		defer cancel()
		s.closeClients()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("stream: shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// loop runs Frame on every tick.
func (s *Server) loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(s.opts.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Frame(now)
		}
	}
}

// Frame drains queued client input, steps the simulation and publishes the
// resulting snapshot. It must only be called from one goroutine.
func (s *Server) Frame(now time.Time) pong.Snapshot {
	s.drainInput()
	s.frame.Delta = s.clock.Delta(now)

	s.sim.Step(s.frame)
	s.frame.Clear()

	snap := s.sim.Snapshot()
	s.broadcast(snap)
	return snap
}

// drainInput moves everything clients sent since the last frame into the input frame.
func (s *Server) drainInput() {
	for {
		select {
		case msg := <-s.input:
			switch msg.Type {
			case TypePointer:
				s.frame.PushPointer(core.PointerEvent{
					X: core.ClampF(msg.X, -1, 1),
					Y: core.ClampF(msg.Y, -1, 1),
				})
			case TypePause:
				s.frame.Set(core.ActionPause)
			case TypeRestart:
				s.frame.Set(core.ActionRestart)
			}
		default:
			return
		}
	}
}

// broadcast encodes snap once and queues it for every client.
// A client whose queue is full misses this frame.
func (s *Server) broadcast(snap pong.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error("cannot encode snapshot", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		select {
		case c.send <- data:
		default:
			s.logger.Debug("client lagging, frame dropped", "client", c.id, "tick", snap.Tick)
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, s.opts.SendBuffer),
	}
	s.register(c)
	defer s.unregister(c)

	go s.writePump(c)
	s.readPump(c)
}

func (s *Server) register(c *client) {
	s.mu.Lock()
	s.clients[c.id] = c
	s.mu.Unlock()
	s.logger.Info("client connected", "client", c.id, "remote", c.conn.RemoteAddr().String())
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c.id]; ok {
		delete(s.clients, c.id)
		close(c.send)
	}
	s.mu.Unlock()
	_ = c.conn.Close()
	s.logger.Info("client disconnected", "client", c.id)
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		_ = c.conn.Close()
	}
}

// readPump queues client messages until the connection fails.
func (s *Server) readPump(c *client) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("read failed", "client", c.id, "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn("malformed message", "client", c.id, "error", err)
			continue
		}
		switch msg.Type {
		case TypePointer, TypePause, TypeRestart:
		default:
			s.logger.Warn("unknown message type", "client", c.id, "type", msg.Type)
			continue
		}

		select {
		case s.input <- msg:
		default:
			s.logger.Debug("input queue full, message dropped", "client", c.id, "type", msg.Type)
		}
	}
}

// writePump sends queued frames until the queue is closed or a write fails.
func (s *Server) writePump(c *client) {
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.Debug("write failed", "client", c.id, "error", err)
			_ = c.conn.Close()
			return
		}
	}
}
