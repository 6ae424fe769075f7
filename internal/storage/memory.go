package storage

import (
	"fmt"
	"sync"

	"github.com/RoaringBitmap/roaring/roaring64"

	"mini-rss/internal/common"
)

type partitionKey struct {
	AppID       string
	ShuffleID   int
	PartitionID int
}

// BlockStore indexa en memoria los block ids reportados por particion. Solo ids, no datos.
type BlockStore struct {
	mu     sync.RWMutex
	blocks map[partitionKey]*roaring64.Bitmap
}

func NewBlockStore() *BlockStore {
	return &BlockStore{
		blocks: make(map[partitionKey]*roaring64.Bitmap),
	}
}

// AddBlockIDs agrega los ids de una particion y devuelve cuantos eran nuevos.
func (s *BlockStore) AddBlockIDs(appID string, shuffleID, partitionID int, blockIDs []int64) (int, error) {
	key := partitionKey{AppID: appID, ShuffleID: shuffleID, PartitionID: partitionID}

	s.mu.Lock()
	defer s.mu.Unlock()
	bm, ok := s.blocks[key]
	if !ok {
		bm = roaring64.New()
		s.blocks[key] = bm
	}
	added := 0
	for _, id := range blockIDs {
		if id < 0 {
			return added, fmt.Errorf("block id %d negativo: %w", id, common.ErrRange)
		}
		if bm.CheckedAdd(uint64(id)) {
			added++
		}
	}
	return added, nil
}

// GetBlockIDs devuelve una copia de los ids de la particion (vacia si no hay).
func (s *BlockStore) GetBlockIDs(appID string, shuffleID, partitionID int) *roaring64.Bitmap {
	key := partitionKey{AppID: appID, ShuffleID: shuffleID, PartitionID: partitionID}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if bm, ok := s.blocks[key]; ok {
		return bm.Clone()
	}
	return roaring64.New()
}

// BlockCount es el total de ids indexados; se reporta en el heartbeat.
func (s *BlockStore) BlockCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total uint64
	for _, bm := range s.blocks {
		total += bm.GetCardinality()
	}
	return total
}

// RemoveApp libera todo lo de una aplicacion.
func (s *BlockStore) RemoveApp(appID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.blocks {
		if key.AppID == appID {
			delete(s.blocks, key)
		}
	}
}
