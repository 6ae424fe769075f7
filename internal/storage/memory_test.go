package storage

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"mini-rss/internal/common"
)

func TestBlockStore(t *testing.T) {
	store := NewBlockStore()
	appID := "app-" + uuid.New().String()

	t.Run("AddBlockIDs_Nuevos", func(t *testing.T) {
		added, err := store.AddBlockIDs(appID, 1, 0, []int64{1, 2, 3})
		if err != nil || added != 3 {
			t.Fatalf("Esperaba 3 nuevos, obtuvo %d (err=%v)", added, err)
		}
	})

	t.Run("AddBlockIDs_Duplicados", func(t *testing.T) {
		added, err := store.AddBlockIDs(appID, 1, 0, []int64{3, 4})
		if err != nil || added != 1 {
			t.Errorf("Esperaba 1 nuevo, obtuvo %d (err=%v)", added, err)
		}
	})

	t.Run("AddBlockIDs_Negativo", func(t *testing.T) {
		_, err := store.AddBlockIDs(appID, 1, 0, []int64{-5})
		if !errors.Is(err, common.ErrRange) {
			t.Errorf("Se esperaba ErrRange, obtenido: %v", err)
		}
	})

	t.Run("GetBlockIDs_Copia", func(t *testing.T) {
		bm := store.GetBlockIDs(appID, 1, 0)
		if bm.GetCardinality() != 4 {
			t.Fatalf("Esperaba 4 ids, obtuvo %d", bm.GetCardinality())
		}
		bm.Add(99)
		if store.GetBlockIDs(appID, 1, 0).Contains(99) {
			t.Error("GetBlockIDs no devolvio una copia")
		}
		if store.GetBlockIDs(appID, 1, 7).GetCardinality() != 0 {
			t.Error("Particion sin datos deberia estar vacia")
		}
	})

	t.Run("RemoveApp", func(t *testing.T) {
		store.AddBlockIDs("otra-app", 1, 0, []int64{10})
		store.RemoveApp(appID)
		if store.BlockCount() != 1 {
			t.Errorf("Esperaba 1 id restante, obtuvo %d", store.BlockCount())
		}
	})
}
