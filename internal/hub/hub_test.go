package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nguyentantai21042004/live-summary/internal/logger"
	"github.com/nguyentantai21042004/live-summary/internal/orchestrator"
	"github.com/nguyentantai21042004/live-summary/internal/transcript"
)

type event struct {
	Event      string                 `json:"event"`
	Transcript []transcript.Utterance `json:"transcript"`
	NewEntry   *transcript.Utterance  `json:"new_entry"`
	Summary    string                 `json:"summary"`
	State      string                 `json:"state"`
	Revision   uint64                 `json:"revision"`
}

func staticState(v orchestrator.View) StateFunc {
	return func() orchestrator.View { return v }
}

func dial(t *testing.T, h Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	return ev
}

func waitClients(t *testing.T, h Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Clients() = %d, want %d", h.Clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestConnectReceivesState(t *testing.T) {
	view := orchestrator.View{
		Transcript: transcript.Snapshot{
			Revision:   1,
			Utterances: []transcript.Utterance{{ID: 1, Speaker: "Alice", Text: "hello"}},
		},
		Summary: orchestrator.Summary{Text: "Not enough content to summarize yet.", State: orchestrator.StateInsufficient, Revision: 1},
	}
	h := New(staticState(view), 4, logger.New("error"))
	conn := dial(t, h)

	ev := readEvent(t, conn)
	if ev.Event != EventTranscriptUpdate || len(ev.Transcript) != 1 || ev.Transcript[0].Speaker != "Alice" {
		t.Errorf("first event = %+v", ev)
	}
	ev = readEvent(t, conn)
	if ev.Event != EventSummaryUpdate || ev.State != "insufficient" || ev.Revision != 1 {
		t.Errorf("second event = %+v", ev)
	}
}

func TestBroadcast(t *testing.T) {
	h := New(staticState(orchestrator.View{}), 4, logger.New("error"))
	conn := dial(t, h)
	readEvent(t, conn)
	readEvent(t, conn)

	ctx := context.Background()
	u := transcript.Utterance{ID: 1, Speaker: "Bob", Text: "We should finalize the report by Friday."}
	h.TranscriptChanged(ctx, transcript.Snapshot{Revision: 1, Utterances: []transcript.Utterance{u}}, &u)
	h.SummaryChanged(ctx, orchestrator.Summary{Text: "Brief discussion", State: orchestrator.StateComputed, Revision: 1})

	ev := readEvent(t, conn)
	if ev.Event != EventTranscriptUpdate || ev.NewEntry == nil || ev.NewEntry.Speaker != "Bob" {
		t.Errorf("transcript event = %+v", ev)
	}
	ev = readEvent(t, conn)
	if ev.Event != EventSummaryUpdate || ev.Summary != "Brief discussion" || ev.State != "computed" {
		t.Errorf("summary event = %+v", ev)
	}
}

func TestRequestUpdate(t *testing.T) {
	h := New(staticState(orchestrator.View{Summary: orchestrator.Summary{Text: "x", State: orchestrator.StateEmpty}}), 4, logger.New("error"))
	conn := dial(t, h)
	readEvent(t, conn)
	readEvent(t, conn)

	if err := conn.WriteJSON(clientMessage{Event: EventRequestUpdate}); err != nil {
		t.Fatal(err)
	}

	ev := readEvent(t, conn)
	if ev.Event != EventTranscriptUpdate || ev.Transcript == nil {
		t.Errorf("event = %+v, want transcript_update with empty list", ev)
	}
	if ev = readEvent(t, conn); ev.Event != EventSummaryUpdate {
		t.Errorf("event = %+v, want summary_update", ev)
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	h := New(staticState(orchestrator.View{}), 4, logger.New("error"))
	conn := dial(t, h)
	waitClients(t, h, 1)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	waitClients(t, h, 0)
}

func TestBroadcastDoesNotBlockOnSlowClient(t *testing.T) {
	h := New(staticState(orchestrator.View{}), 4, logger.New("error")).(*implHub)
	slow := &client{id: "slow", hub: h, send: make(chan []byte, 1)}
	h.clients[slow.id] = slow

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			h.SummaryChanged(context.Background(), orchestrator.Summary{Revision: uint64(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full client buffer")
	}

	var ev event
	if err := json.Unmarshal(<-slow.send, &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Revision != 0 {
		t.Errorf("kept event revision %d, want the first one", ev.Revision)
	}
}

func TestEncodeTranscriptEmptyList(t *testing.T) {
	msg, err := encodeTranscript(transcript.Snapshot{Revision: 3}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(msg), `"transcript":[]`) || strings.Contains(string(msg), "new_entry") {
		t.Errorf("encodeTranscript() = %s", msg)
	}
}

func TestSendBufferFitsConnectState(t *testing.T) {
	h := New(staticState(orchestrator.View{}), 1, logger.New("error")).(*implHub)
	if h.sendBuffer != minSendBuffer {
		t.Fatalf("sendBuffer = %d, want %d", h.sendBuffer, minSendBuffer)
	}

	c := &client{id: "c", hub: h, send: make(chan []byte, h.sendBuffer)}
	h.clients[c.id] = c
	c.pushState(context.Background())

	if got := len(c.send); got != 2 {
		t.Fatalf("queued %d events on connect, want transcript and summary", got)
	}
	var ev event
	<-c.send
	if err := json.Unmarshal(<-c.send, &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Event != "summary_update" {
		t.Errorf("second event = %q, want summary_update", ev.Event)
	}
}

func TestTranscriptDropsOlderRevision(t *testing.T) {
	h := New(staticState(orchestrator.View{}), 4, logger.New("error")).(*implHub)
	c := &client{id: "c", hub: h, send: make(chan []byte, 4)}
	h.clients[c.id] = c
	ctx := context.Background()

	h.TranscriptChanged(ctx, transcript.Snapshot{Revision: 2}, nil)
	h.TranscriptChanged(ctx, transcript.Snapshot{Revision: 1, Utterances: []transcript.Utterance{{ID: 1, Speaker: "Alice", Text: "hi"}}}, nil)

	if got := len(c.send); got != 1 {
		t.Fatalf("queued %d transcript events, want 1", got)
	}
	var ev event
	if err := json.Unmarshal(<-c.send, &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Revision != 2 || len(ev.Transcript) != 0 {
		t.Errorf("sent revision %d with %d utterances, want the cleared revision 2", ev.Revision, len(ev.Transcript))
	}
}
