package monitor

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.assertions/pkg/checks"
)

func newTestServer(t *testing.T) (*Server, *Collector, *httptest.Server) {
	t.Helper()
	c := NewCollector()
	s := NewServer("", c, NewDashboard())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, c, ts
}

// readSSE returns the event name and data of the next server-sent
// event.
func readSSE(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()
	var event, data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if event != "" || data != "" {
				return event, data
			}
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestServer_Health(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Dashboard(t *testing.T) {
	_, c, ts := newTestServer(t)
	c.Observe(checks.Event{Type: checks.EventRunStarted, RunID: "run-1", File: "smoke"})
	c.Observe(finished("smoke", "status", checks.OutcomePassed))
	c.Observe(checks.Event{Type: checks.EventRunFinished, RunID: "run-1", File: "smoke"})

	resp, err := http.Get(ts.URL + "/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var snap Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, StatusPassed, snap.Status)
	assert.Equal(t, "run-1", snap.LastRunID)
	assert.Equal(t, 1, snap.Summary.Passed)
}

func TestServer_Stats(t *testing.T) {
	_, c, ts := newTestServer(t)
	c.Observe(finished("smoke", "a", checks.OutcomePassed))
	c.Observe(finished("smoke", "b", checks.OutcomeFailed))

	resp, err := http.Get(ts.URL + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	var stats Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 2, stats.Checks)
	assert.Equal(t, 1, stats.Failed)
}

func TestServer_Routes(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/health", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_SSE(t *testing.T) {
	_, c, ts := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	r := bufio.NewReader(resp.Body)
	name, data := readSSE(t, r)
	assert.Equal(t, "dashboard", name)
	var snap Snapshot
	require.NoError(t, json.Unmarshal([]byte(data), &snap))
	assert.Equal(t, StatusIdle, snap.Status)

	c.Observe(finished("smoke", "status", checks.OutcomeFailed))

	name, data = readSSE(t, r)
	assert.Equal(t, "check", name)
	var ev checks.Event
	require.NoError(t, json.Unmarshal([]byte(data), &ev))
	assert.Equal(t, "status", ev.CheckID)
	assert.Equal(t, checks.OutcomeFailed, ev.Outcome)
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readWS(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestServer_WebSocket(t *testing.T) {
	_, c, ts := newTestServer(t)
	conn := dialWS(t, ts)

	msg := readWS(t, conn)
	assert.Equal(t, "dashboard", msg.Type)

	c.Observe(checks.Event{Type: checks.EventRunStarted, RunID: "run-2", File: "smoke"})

	msg = readWS(t, conn)
	assert.Equal(t, "event", msg.Type)
	var ev checks.Event
	require.NoError(t, json.Unmarshal(msg.Data, &ev))
	assert.Equal(t, checks.EventRunStarted, ev.Type)
	assert.Equal(t, "run-2", ev.RunID)
}

func TestServer_WebSocket_ClosedOnStop(t *testing.T) {
	s, _, ts := newTestServer(t)
	conn := dialWS(t, ts)
	readWS(t, conn)

	require.NoError(t, s.Stop(context.Background()))

	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}

func TestServer_WebSocket_RejectsPlainHTTP(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_StartStop(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	s := NewServer(addr, NewCollector(), NewDashboard())
	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://%s/health", addr))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
}

func TestServer_StartContextCancel(t *testing.T) {
	s := NewServer("127.0.0.1:0", NewCollector(), NewDashboard())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestServer_StartBadAddress(t *testing.T) {
	s := NewServer("256.0.0.1:bad", NewCollector(), NewDashboard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := s.Start(ctx)
	assert.ErrorContains(t, err, "monitor server")
}

func TestServer_BroadcastDropsSlowClients(t *testing.T) {
	s := NewServer("", NewCollector(), NewDashboard())
	ch := s.subscribe()
	defer s.unsubscribe(ch)

	for i := 0; i < clientBuffer+5; i++ {
		s.broadcast([]byte("x"))
	}
	assert.Len(t, ch, clientBuffer)
}
