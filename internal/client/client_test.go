package client

import (
	"fmt"
	"net"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"mini-rss/internal/common"
	"mini-rss/internal/rpc"
	"mini-rss/internal/worker"
)

const (
	testAppID     = "app-test"
	testShuffleID = 1001601
)

// startShuffleServer levanta un shuffle server en memoria y devuelve su direccion.
func startShuffleServer(t *testing.T) (*worker.ShuffleServer, common.ServerInfo, *httptest.Server) {
	t.Helper()
	s := worker.NewShuffleServer("", "127.0.0.1", 0)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, serverInfoOf(t, ts), ts
}

func serverInfoOf(t *testing.T, ts *httptest.Server) common.ServerInfo {
	t.Helper()
	host, port, err := net.SplitHostPort(strings.TrimPrefix(ts.URL, "http://"))
	if err != nil {
		t.Fatalf("URL invalida %s: %v", ts.URL, err)
	}
	p, _ := strconv.Atoi(port)
	return common.NewServerInfo(host, p)
}

func testOptions() Options {
	return Options{
		RetryMax:         1,
		RetryIntervalMax: 10 * time.Millisecond,
		ReplicaWrite:     1,
		ReplicaRead:      1,
		DataTransferPool: 2,
	}
}

func testRPC() *rpc.Client {
	return rpc.NewClient(2 * time.Second)
}

// recordingLogger guarda las lineas para verificarlas.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) count(substr string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}
