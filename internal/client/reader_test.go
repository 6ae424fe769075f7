package client

import (
	"context"
	"errors"
	"testing"

	"github.com/RoaringBitmap/roaring/roaring64"

	"mini-rss/internal/assignment"
	"mini-rss/internal/blockid"
	"mini-rss/internal/common"
)

func mustFlat(t *testing.T, taskID, attempt int64) int64 {
	t.Helper()
	id, err := blockid.ToFlatID(taskID, attempt, 1)
	if err != nil {
		t.Fatalf("ToFlatID(%d, %d): %v", taskID, attempt, err)
	}
	return id
}

func TestFilterBlocks(t *testing.T) {
	kept, dropped := int64(7), int64(1<<45+7) // mismo task, intentos 0 y 1
	blocks := roaring64.New()
	var expected []uint64
	for seq := 0; seq < 3; seq++ {
		a, _ := blockid.Encode(0, kept, seq)
		b, _ := blockid.Encode(0, dropped, seq+3)
		blocks.Add(uint64(a))
		blocks.Add(uint64(b))
		expected = append(expected, uint64(a))
	}

	got := FilterBlocks(blocks, roaring64.BitmapOf(uint64(kept)))
	if !got.Equals(roaring64.BitmapOf(expected...)) {
		t.Errorf("Esperado %v, Obtenido %v", expected, got.ToArray())
	}
	if FilterBlocks(blocks, roaring64.New()).GetCardinality() != 0 {
		t.Error("Sin intentos aceptados no deberia quedar ningun bloque")
	}
}

func TestReader_Read(t *testing.T) {
	_, info, _ := startShuffleServer(t)
	table := assignment.Table{0: common.ServerSet{info: {}}}
	ctx := context.Background()

	// Tarea 0: el intento 0 escribio y luego fallo, el 1 y el 2 terminaron. Tarea 1: un intento.
	written := make(map[int64][]int64)
	for _, a := range []struct{ task, attempt int64 }{{0, 0}, {0, 1}, {0, 2}, {1, 0}} {
		flatID := mustFlat(t, a.task, a.attempt)
		w := NewWriter(testRPC(), testOptions(), testAppID, testShuffleID, table, flatID, nil)
		for i := 0; i < 2; i++ {
			id, err := w.AddBlock(0)
			if err != nil {
				t.Fatalf("AddBlock: %v", err)
			}
			written[flatID] = append(written[flatID], id)
		}
		if err := w.Flush(ctx); err != nil {
			t.Fatalf("Flush: %v", err)
		}
	}

	attempts := []common.AttemptSuccessRecord{
		{PathComponent: "attempt_1681717153064_3770270_1_00_000000_1_10003"},
		{PathComponent: "attempt_1681717153064_3770270_1_00_000001_0_10003"},
		{PathComponent: "attempt_1681717153064_3770270_1_00_000000_2_10003"}, // redundante
	}

	logger := &recordingLogger{}
	r := NewReader(testRPC(), testOptions(), testAppID, testShuffleID, table, logger)
	got, err := r.Read(ctx, 0, attempts, 2, 1)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	expected := roaring64.New()
	for _, flatID := range []int64{mustFlat(t, 0, 1), mustFlat(t, 1, 0)} {
		for _, id := range written[flatID] {
			expected.Add(uint64(id))
		}
	}
	if !got.Equals(expected) {
		t.Errorf("Esperado %v, Obtenido %v", expected.ToArray(), got.ToArray())
	}
	// Intentos 0 y 2 de la tarea 0: dos bloques cada uno.
	if n := logger.count("] descartado "); n != 4 {
		t.Errorf("Esperaba 4 bloques descartados en el log, obtuvo %d", n)
	}
	if logger.count("particion=0 task=0") != 4 {
		t.Errorf("Los descartes deben mostrar particion y task decodificados: %v", logger.lines)
	}

	t.Run("Path_Component_Invalido", func(t *testing.T) {
		bad := []common.AttemptSuccessRecord{{PathComponent: "no-es-un-intento"}}
		if _, err := r.Read(ctx, 0, bad, 1, 1); !errors.Is(err, common.ErrInvalidArgument) {
			t.Errorf("Se esperaba ErrInvalidArgument, obtenido %v", err)
		}
	})

	t.Run("Particion_Sin_Asignar", func(t *testing.T) {
		if _, err := r.Read(ctx, 9, attempts, 2, 1); !errors.Is(err, common.ErrInvalidArgument) {
			t.Errorf("Se esperaba ErrInvalidArgument, obtenido %v", err)
		}
	})
}

func TestReader_ReplicaRead(t *testing.T) {
	s, alive, _ := startShuffleServer(t)
	_, dead, deadTS := startShuffleServer(t)
	deadTS.Close()
	if _, err := s.Store.AddBlockIDs(testAppID, testShuffleID, 0, []int64{10, 11}); err != nil {
		t.Fatalf("AddBlockIDs: %v", err)
	}
	table := assignment.Table{0: common.ServerSet{alive: {}, dead: {}}}

	r := NewReader(testRPC(), testOptions(), testAppID, testShuffleID, table, nil)
	got, err := r.FetchBlockIDs(context.Background(), 0)
	if err != nil {
		t.Fatalf("Con ReplicaRead=1 basta un servidor: %v", err)
	}
	if !got.Equals(roaring64.BitmapOf(10, 11)) {
		t.Errorf("Bitmap incorrecto: %v", got.ToArray())
	}

	opts := testOptions()
	opts.ReplicaRead = 2
	r = NewReader(testRPC(), opts, testAppID, testShuffleID, table, nil)
	if _, err := r.FetchBlockIDs(context.Background(), 0); err == nil {
		t.Error("Se esperaba error: solo responde un servidor de dos")
	}
}
