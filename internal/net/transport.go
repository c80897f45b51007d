package net

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"LetsGetSketchy/internal/board"
	"LetsGetSketchy/internal/state"

	"github.com/gorilla/websocket"
)

// PadPath is where the remote pad endpoint is mounted.
const PadPath = "/pad"

// ErrBusy is returned to a second client while another one holds the pad.
var ErrBusy = errors.New("remote pad already in use")

// Message is one command from the remote client.
type Message struct {
	Type    string  `json:"type"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Pressed bool    `json:"pressed,omitempty"`
	Brush   string  `json:"brush,omitempty"`
	Color   string  `json:"color,omitempty"`
	Glyph   string  `json:"glyph,omitempty"`
	Degrees float64 `json:"degrees,omitempty"`
}

func (m Message) point() state.Point { return state.Point{X: m.X, Y: m.Y} }

// Reply is the text answer every command gets. When the command repainted
// the board, a binary PNG frame is sent just before it.
type Reply struct {
	Type  string `json:"type"`
	Error string `json:"error,omitempty"`
	ID    string `json:"id,omitempty"`   // mark started by "down"
	Kind  string `json:"kind,omitempty"` // its kind, "stroke" or "stamp"
	PNG   []byte `json:"png,omitempty"`
}

// Server drives one board from a single websocket client at a time.
type Server struct {
	board    *board.Board
	upgrader websocket.Upgrader

	mu    sync.Mutex
	busy  bool
	dirty bool
}

// NewServer attaches to b. A redraw of b while a command runs sends a frame
// ahead of that command's reply.
func NewServer(b *board.Board) *Server {
	s := &Server{
		board: b,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	markDirty := func() { s.dirty = true }
	b.Subscribe(state.EventDrawingChanged, markDirty)
	b.Subscribe(state.EventToolMoved, markDirty)
	return s
}

// Inspect runs fn with exclusive access to the board.
func (s *Server) Inspect(fn func(*board.Board)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.board)
}

func (s *Server) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

func (s *Server) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.acquire() {
		log.Printf("[REMOTE] rejecting %s: %v", r.RemoteAddr, ErrBusy)
		http.Error(w, ErrBusy.Error(), http.StatusConflict)
		return
	}
	defer s.release()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[REMOTE] upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()
	log.Printf("[REMOTE] client %s connected", r.RemoteAddr)

	s.mu.Lock()
	frame, err := s.frame()
	s.mu.Unlock()
	if err == nil {
		err = conn.WriteMessage(websocket.BinaryMessage, frame)
	}
	if err != nil {
		log.Printf("[REMOTE] failed to send first frame: %v", err)
		return
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("[REMOTE] client %s disconnected: %v", r.RemoteAddr, err)
			return
		}
		if err := s.answer(conn, msg); err != nil {
			log.Printf("[REMOTE] failed to answer %q: %v", msg.Type, err)
			return
		}
	}
}

// answer applies msg and writes a frame if the board repainted, then the
// reply.
func (s *Server) answer(conn *websocket.Conn, msg Message) error {
	s.mu.Lock()
	s.dirty = false
	reply, applyErr := s.apply(msg)
	if applyErr != nil {
		log.Printf("[REMOTE] rejected %q: %v", msg.Type, applyErr)
		reply = &Reply{Type: "error", Error: applyErr.Error()}
	}
	var (
		frame []byte
		err   error
	)
	if s.dirty {
		frame, err = s.frame()
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if frame != nil {
		if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			return err
		}
	}
	return conn.WriteJSON(reply)
}

// apply runs one command against the board.
func (s *Server) apply(msg Message) (*Reply, error) {
	b := s.board
	switch msg.Type {
	case "down":
		b.PointerDown(msg.point())
		d := b.History().Last()
		return &Reply{Type: "ok", ID: d.ID(), Kind: d.Kind().String()}, nil
	case "move":
		b.PointerMove(msg.point(), msg.Pressed)
	case "up":
		b.PointerUp()
	case "enter":
		b.PointerEnter(msg.point())
	case "leave":
		b.PointerLeave()
	case "brush":
		w, err := state.ParseBrush(msg.Brush)
		if err != nil {
			return nil, err
		}
		b.SelectBrush(w)
	case "color":
		c, err := state.ParseColor(msg.Color)
		if err != nil {
			return nil, err
		}
		b.SelectColor(c)
	case "sticker":
		if msg.Glyph == "" {
			return nil, state.ErrNoSticker
		}
		b.SelectSticker(msg.Glyph)
	case "rotation":
		b.SetRotation(msg.Degrees)
	case "undo":
		b.Undo()
	case "redo":
		b.Redo()
	case "clear":
		b.Clear()
	case "export":
		var buf bytes.Buffer
		if err := b.ExportPNG(&buf); err != nil {
			return nil, fmt.Errorf("export failed: %w", err)
		}
		return &Reply{Type: "export", PNG: buf.Bytes()}, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", msg.Type)
	}
	return &Reply{Type: "ok"}, nil
}

// frame encodes the visible surface. Callers hold s.mu.
func (s *Server) frame() ([]byte, error) {
	img := s.board.Frame()
	if img == nil {
		return nil, errors.New("board has no image surface")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

// Handler mounts the pad at PadPath.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(PadPath, s)
	return mux
}

// ListenAndServe serves the pad on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	log.Printf("[REMOTE] listening on %s%s", ln.Addr(), PadPath)
	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
