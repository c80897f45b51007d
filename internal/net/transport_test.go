package net

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"LetsGetSketchy/internal/board"
	"LetsGetSketchy/internal/config"
	"LetsGetSketchy/internal/state"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startPad(t *testing.T) (*Server, string) {
	t.Helper()
	b, _, err := board.FromConfig(config.Default())
	require.NoError(t, err)
	srv := NewServer(b)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, "ws" + strings.TrimPrefix(ts.URL, "http") + PadPath
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	kind, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.BinaryMessage, kind, "first message is the current frame")
	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return conn
}

// send writes msg and reads its answer: the repainted frame, if any, and the
// text reply.
func send(t *testing.T, conn *websocket.Conn, msg Message) (frame []byte, reply Reply) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
	kind, data, err := conn.ReadMessage()
	require.NoError(t, err)
	if kind == websocket.BinaryMessage {
		frame = data
		kind, data, err = conn.ReadMessage()
		require.NoError(t, err)
	}
	require.Equal(t, websocket.TextMessage, kind)
	require.NoError(t, json.Unmarshal(data, &reply))
	return frame, reply
}

func TestRemoteStroke(t *testing.T) {
	srv, url := startPad(t)
	conn := dial(t, url)

	tests := []struct {
		msg   Message
		frame bool
	}{
		{Message{Type: "color", Color: "#ff0000"}, true},
		{Message{Type: "brush", Brush: "thick"}, true},
		{Message{Type: "down", X: 10, Y: 10}, true},
		{Message{Type: "move", X: 40, Y: 10, Pressed: true}, true},
		{Message{Type: "up"}, false},
		{Message{Type: "undo"}, true},
		{Message{Type: "undo"}, false},
		{Message{Type: "redo"}, true},
	}
	for _, tt := range tests {
		frame, reply := send(t, conn, tt.msg)
		assert.Equal(t, tt.frame, frame != nil, tt.msg.Type)
		assert.Equal(t, "ok", reply.Type, tt.msg.Type)
	}

	srv.Inspect(func(b *board.Board) {
		require.Equal(t, 1, b.History().Len())
		s := b.History().Last().(*state.Stroke)
		assert.Equal(t, 4.0, s.Width())
		assert.Equal(t, "#ff0000", state.FormatColor(s.Color()))
		assert.Equal(t, []state.Point{{X: 10, Y: 10}, {X: 40, Y: 10}}, s.Points())
	})
}

func TestRemoteDownReportsMarkID(t *testing.T) {
	srv, url := startPad(t)
	conn := dial(t, url)

	frame, stroke := send(t, conn, Message{Type: "down", X: 5, Y: 5})
	require.NotNil(t, frame)
	send(t, conn, Message{Type: "up"})
	send(t, conn, Message{Type: "sticker", Glyph: "💜"})
	_, stamp := send(t, conn, Message{Type: "down", X: 9, Y: 9})

	assert.Equal(t, "stroke", stroke.Kind)
	assert.Equal(t, "stamp", stamp.Kind)
	_, err := uuid.Parse(stroke.ID)
	require.NoError(t, err)
	assert.NotEqual(t, stroke.ID, stamp.ID)

	srv.Inspect(func(b *board.Board) {
		marks := b.History().Snapshot()
		require.Len(t, marks, 2)
		assert.Equal(t, stroke.ID, marks[0].ID())
		assert.Equal(t, stamp.ID, marks[1].ID())
	})

	_, up := send(t, conn, Message{Type: "up"})
	assert.Empty(t, up.ID)
}

func TestRemoteRejectsBadCommands(t *testing.T) {
	_, url := startPad(t)
	conn := dial(t, url)

	for _, msg := range []Message{
		{Type: "brush", Brush: "huge"},
		{Type: "color", Color: "red"},
		{Type: "sticker"},
		{Type: "paint"},
	} {
		frame, reply := send(t, conn, msg)
		assert.Nil(t, frame, msg.Type)
		assert.Equal(t, "error", reply.Type, msg.Type)
		assert.NotEmpty(t, reply.Error)
	}
}

func TestRemoteExport(t *testing.T) {
	_, url := startPad(t)
	conn := dial(t, url)
	send(t, conn, Message{Type: "sticker", Glyph: "⭐"})
	send(t, conn, Message{Type: "down", X: 20, Y: 20})

	frame, reply := send(t, conn, Message{Type: "export"})
	assert.Nil(t, frame, "exporting does not repaint")
	assert.Equal(t, "export", reply.Type)
	cfg, err := png.DecodeConfig(bytes.NewReader(reply.PNG))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultExportSize, cfg.Width)
}

func TestSecondClientIsRejected(t *testing.T) {
	_, url := startPad(t)
	dial(t, url)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPadIsFreedOnDisconnect(t *testing.T) {
	srv, url := startPad(t)
	first := dial(t, url)
	send(t, first, Message{Type: "down", X: 1, Y: 1})
	first.Close()

	// The server notices the close asynchronously.
	require.Eventually(t, func() bool {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 2*time.Second, 20*time.Millisecond)

	srv.Inspect(func(b *board.Board) {
		assert.Equal(t, 1, b.History().Len(), "marks outlive the client")
	})
}

func TestPadHelpers(t *testing.T) {
	port, err := Port(":8899")
	require.NoError(t, err)
	assert.Equal(t, 8899, port)

	_, err = Port("nope")
	assert.Error(t, err)

	assert.Equal(t, "ws://10.0.0.2:8899/pad", PadURL("10.0.0.2", 8899))
}
