package worker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/RoaringBitmap/roaring/roaring64"

	"mini-rss/internal/common"
	"mini-rss/internal/rpc"
)

func setupShuffleServer(t *testing.T) (*ShuffleServer, *httptest.Server) {
	t.Helper()
	s := NewShuffleServer("", "127.0.0.1", 0)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func TestShuffleServer_ReportAndGet(t *testing.T) {
	s, ts := setupShuffleServer(t)
	client := rpc.NewClient(2 * time.Second)
	ctx := context.Background()

	if s.ID == "" {
		t.Fatal("El servidor no genero un ID")
	}

	report := common.ReportShuffleResultRequest{
		AppID:         "app-1",
		ShuffleID:     1001601,
		TaskAttemptID: 7,
		PartitionToBlockIDs: map[int][]int64{
			0: {100, 101},
			1: {200},
		},
	}

	t.Run("Report", func(t *testing.T) {
		var resp common.ReportShuffleResultResponse
		err := client.Call(ctx, ts.URL, rpc.NewRequest(common.MethodReportShuffleResult, report), &resp)
		if err != nil {
			t.Fatalf("Error inesperado: %v", err)
		}
		if resp.Accepted != 3 {
			t.Errorf("Esperaba 3 aceptados, obtuvo %d", resp.Accepted)
		}
	})

	t.Run("Report_Repetido_Idempotente", func(t *testing.T) {
		var resp common.ReportShuffleResultResponse
		if err := client.Call(ctx, ts.URL, rpc.NewRequest(common.MethodReportShuffleResult, report), &resp); err != nil {
			t.Fatalf("Error inesperado: %v", err)
		}
		if resp.Accepted != 0 {
			t.Errorf("Un reporte repetido no debe agregar ids, obtuvo %d", resp.Accepted)
		}
	})

	t.Run("Report_BlockID_Negativo", func(t *testing.T) {
		bad := common.ReportShuffleResultRequest{AppID: "app-1", ShuffleID: 1, PartitionToBlockIDs: map[int][]int64{0: {-1}}}
		err := client.Call(ctx, ts.URL, rpc.NewRequest(common.MethodReportShuffleResult, bad), nil)
		var statusErr *rpc.StatusError
		if !errors.As(err, &statusErr) || statusErr.Code != http.StatusBadRequest {
			t.Errorf("Esperaba 400, obtuvo: %v", err)
		}
	})

	t.Run("Get", func(t *testing.T) {
		var resp common.GetShuffleResultResponse
		req := common.GetShuffleResultRequest{AppID: "app-1", ShuffleID: 1001601, PartitionID: 0}
		if err := client.Call(ctx, ts.URL, rpc.NewRequest(common.MethodGetShuffleResult, req), &resp); err != nil {
			t.Fatalf("Error inesperado: %v", err)
		}
		bm := roaring64.New()
		if err := bm.UnmarshalBinary(resp.Bitmap); err != nil {
			t.Fatalf("Bitmap invalido: %v", err)
		}
		if bm.GetCardinality() != 2 || !bm.Contains(100) || !bm.Contains(101) {
			t.Errorf("Bitmap incorrecto: %v", bm.ToArray())
		}
	})
}

func TestShuffleServer_UnregisterApp(t *testing.T) {
	s, ts := setupShuffleServer(t)
	client := rpc.NewClient(2 * time.Second)
	ctx := context.Background()

	s.Store.AddBlockIDs("app-fin", 1, 0, []int64{1, 2})
	s.Store.AddBlockIDs("app-viva", 1, 0, []int64{3})

	if err := client.Call(ctx, ts.URL, rpc.NewRequest(common.MethodUnregisterApp, common.UnregisterAppRequest{AppID: "app-fin"}), nil); err != nil {
		t.Fatalf("Error inesperado: %v", err)
	}
	if s.Store.GetBlockIDs("app-fin", 1, 0).GetCardinality() != 0 {
		t.Error("Los ids de la app dada de baja siguen indexados")
	}
	if s.Store.BlockCount() != 1 {
		t.Errorf("Las otras apps no deben tocarse, quedan %d ids", s.Store.BlockCount())
	}

	err := client.Call(ctx, ts.URL, rpc.NewRequest(common.MethodUnregisterApp, common.UnregisterAppRequest{}), nil)
	var statusErr *rpc.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusBadRequest {
		t.Errorf("Sin app id: esperaba 400, obtuvo: %v", err)
	}
}

func TestShuffleServer_HeartbeatLoop(t *testing.T) {
	s := NewShuffleServer("server-hb", "10.0.0.9", 19999)
	s.Store.AddBlockIDs("app", 1, 0, []int64{1, 2})

	var mu sync.Mutex
	var received []common.Heartbeat
	original := SendHeartbeat
	SendHeartbeat = func(ctx context.Context, client *rpc.Client, addr string, hb common.Heartbeat) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, hb)
		return nil
	}
	defer func() { SendHeartbeat = original }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.HeartbeatLoop(ctx, nil, "coordinator:1", 5*time.Millisecond)
		close(done)
	}()
	time.Sleep(30 * time.Millisecond)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(received) < 2 {
		t.Fatalf("Esperaba varios heartbeats, obtuvo %d", len(received))
	}
	hb := received[0]
	if hb.ServerID != "server-hb" || hb.Host != "10.0.0.9" || hb.Port != 19999 || hb.BlockCount != 2 {
		t.Errorf("Heartbeat incorrecto: %+v", hb)
	}
}
