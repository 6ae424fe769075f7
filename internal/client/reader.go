package client

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/roaring64"

	"mini-rss/internal/assignment"
	"mini-rss/internal/blockid"
	"mini-rss/internal/common"
	"mini-rss/internal/reconcile"
	"mini-rss/internal/rpc"
)

// Reader decide que bloques de una particion son autoritativos y los lista.
type Reader struct {
	rpc       *rpc.Client
	opts      Options
	appID     string
	shuffleID int
	table     assignment.Table
	logger    common.Logger
}

func NewReader(c *rpc.Client, opts Options, appID string, shuffleID int, table assignment.Table, logger common.Logger) *Reader {
	if logger == nil {
		logger = common.NopLogger{}
	}
	return &Reader{rpc: c, opts: opts, appID: appID, shuffleID: shuffleID, table: table, logger: logger}
}

// FetchBlockIDs une los ids reportados en los servidores de la particion.
// Basta con ReplicaRead respuestas.
func (r *Reader) FetchBlockIDs(ctx context.Context, partitionID int) (*roaring64.Bitmap, error) {
	servers := r.table.Servers(partitionID)
	if len(servers) == 0 {
		return nil, fmt.Errorf("particion %d sin servidores asignados en el shuffle %d: %w",
			partitionID, r.shuffleID, common.ErrInvalidArgument)
	}
	need := min(max(r.opts.ReplicaRead, 1), len(servers))

	result := roaring64.New()
	ok := 0
	var lastErr error
	for _, server := range servers {
		var resp common.GetShuffleResultResponse
		req := common.GetShuffleResultRequest{AppID: r.appID, ShuffleID: r.shuffleID, PartitionID: partitionID}
		if err := r.rpc.Call(ctx, server.Address(), rpc.NewRequest(common.MethodGetShuffleResult, req), &resp); err != nil {
			r.logger.Printf("[Reader] %s no respondio para la particion %d: %v", server, partitionID, err)
			lastErr = err
			continue
		}
		bm := roaring64.New()
		if err := bm.UnmarshalBinary(resp.Bitmap); err != nil {
			lastErr = fmt.Errorf("bitmap invalido de %s: %w", server, err)
			continue
		}
		result.Or(bm)
		if ok++; ok >= need {
			return result, nil
		}
	}
	return nil, fmt.Errorf("particion %d: %d de %d servidores respondieron: %w", partitionID, ok, need, lastErr)
}

// Read reconcilia los intentos exitosos y devuelve solo los bloques de los intentos aceptados.
func (r *Reader) Read(ctx context.Context, partitionID int, attempts []common.AttemptSuccessRecord, totalMapsCount, appAttemptNumber int) (*roaring64.Bitmap, error) {
	res, err := reconcile.Reconcile(attempts, totalMapsCount, appAttemptNumber, reconcile.WithLogger(r.logger))
	if err != nil {
		return nil, fmt.Errorf("shuffle %d: %w", r.shuffleID, err)
	}
	blocks, err := r.FetchBlockIDs(ctx, partitionID)
	if err != nil {
		return nil, err
	}
	kept := FilterBlocks(blocks, res.TaskAttemptIDs)
	r.logDiscarded(partitionID, roaring64.AndNot(blocks, kept))
	return kept, nil
}

// logDiscarded deja constancia de los bloques de intentos no aceptados.
func (r *Reader) logDiscarded(partitionID int, discarded *roaring64.Bitmap) {
	if discarded.IsEmpty() {
		return
	}
	r.logger.Printf("[Reader] Particion %d: %d bloques descartados", partitionID, discarded.GetCardinality())
	it := discarded.Iterator()
	for it.HasNext() {
		id := int64(it.Next())
		seqNo, attemptID, partition, taskID := blockid.Fields(id)
		r.logger.Printf("[Reader] descartado %d (seq=%d intento=%d particion=%d task=%d)",
			id, seqNo, attemptID, partition, taskID)
	}
}

// FilterBlocks conserva los bloques cuyo escritor esta en accepted.
func FilterBlocks(blockIDs, accepted *roaring64.Bitmap) *roaring64.Bitmap {
	out := roaring64.New()
	it := blockIDs.Iterator()
	for it.HasNext() {
		id := it.Next()
		if accepted.Contains(uint64(blockid.TaskAttemptID(int64(id)))) {
			out.Add(id)
		}
	}
	return out
}
