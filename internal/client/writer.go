package client

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"mini-rss/internal/assignment"
	"mini-rss/internal/blockid"
	"mini-rss/internal/common"
	"mini-rss/internal/rpc"
)

// Writer emite y reporta los block ids de un unico task attempt.
type Writer struct {
	rpc       *rpc.Client
	opts      Options
	appID     string
	shuffleID int
	table     assignment.Table
	gen       *blockid.Generator
	logger    common.Logger

	mu      sync.Mutex
	pending map[int][]int64 // particion -> block ids aun no confirmados

	semaphore chan struct{} // limita los reportes en vuelo
}

func NewWriter(c *rpc.Client, opts Options, appID string, shuffleID int, table assignment.Table, taskAttemptID int64, logger common.Logger) *Writer {
	if logger == nil {
		logger = common.NopLogger{}
	}
	return &Writer{
		rpc:       c,
		opts:      opts,
		appID:     appID,
		shuffleID: shuffleID,
		table:     table,
		gen:       blockid.NewGenerator(taskAttemptID),
		logger:    logger,
		pending:   make(map[int][]int64),
		semaphore: make(chan struct{}, max(opts.DataTransferPool, 1)),
	}
}

// AddBlock emite el block id de un nuevo bloque de la particion.
func (w *Writer) AddBlock(partitionID int) (int64, error) {
	if len(w.table[partitionID]) == 0 {
		return 0, fmt.Errorf("particion %d sin servidores asignados en el shuffle %d: %w",
			partitionID, w.shuffleID, common.ErrInvalidArgument)
	}
	id, err := w.gen.Next(partitionID)
	if err != nil {
		return 0, err
	}
	w.mu.Lock()
	w.pending[partitionID] = append(w.pending[partitionID], id)
	w.mu.Unlock()
	return id, nil
}

// Flush reporta los ids pendientes a sus servidores. Una particion queda confirmada
// cuando al menos ReplicaWrite servidores aceptan el reporte; lo no confirmado sigue pendiente.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	pending := w.pending
	w.pending = make(map[int][]int64)
	w.mu.Unlock()
	if len(pending) == 0 {
		return nil
	}

	byServer := make(map[common.ServerInfo]map[int][]int64)
	for partitionID, ids := range pending {
		for server := range w.table[partitionID] {
			if byServer[server] == nil {
				byServer[server] = make(map[int][]int64)
			}
			byServer[server][partitionID] = ids
		}
	}

	var (
		mu     sync.Mutex
		failed = make(common.ServerSet)
		wg     sync.WaitGroup
	)
	for server, partitions := range byServer {
		w.semaphore <- struct{}{} // Adquirir token (bloquea si está lleno)
		wg.Add(1)

		req := common.ReportShuffleResultRequest{
			AppID:               w.appID,
			ShuffleID:           w.shuffleID,
			TaskAttemptID:       w.gen.TaskAttemptID(),
			PartitionToBlockIDs: partitions,
		}
		w.rpc.Send(ctx, server.Address(), rpc.NewRequest(common.MethodReportShuffleResult, req), rpc.CallbackFuncs{
			Success: func(*rpc.Response) {
				<-w.semaphore
				wg.Done()
			},
			Failure: func(err error) {
				w.logger.Printf("[Writer] Reporte a %s fallo: %v", server, err)
				mu.Lock()
				failed.Add(server)
				mu.Unlock()
				<-w.semaphore
				wg.Done()
			},
		})
	}
	wg.Wait()

	var unconfirmed []int
	for partitionID, ids := range pending {
		servers := w.table[partitionID]
		ok := 0
		for server := range servers {
			if !failed.Contains(server) {
				ok++
			}
		}
		if ok < min(max(w.opts.ReplicaWrite, 1), len(servers)) {
			unconfirmed = append(unconfirmed, partitionID)
			w.mu.Lock()
			w.pending[partitionID] = append(ids, w.pending[partitionID]...)
			w.mu.Unlock()
		}
	}
	if len(unconfirmed) > 0 {
		sort.Ints(unconfirmed)
		return fmt.Errorf("shuffle %d: particiones sin confirmar %v", w.shuffleID, unconfirmed)
	}
	w.logger.Printf("[Writer] Intento %d: %d particiones confirmadas en %d servidores (%d block ids emitidos)",
		w.gen.TaskAttemptID(), len(pending), len(byServer), w.gen.Issued())
	return nil
}

// Issued devuelve cuantos numeros de secuencia consumio el intento, fallidos incluidos.
func (w *Writer) Issued() int64 { return w.gen.Issued() }

// Pending devuelve cuantos block ids faltan por confirmar.
func (w *Writer) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, ids := range w.pending {
		n += len(ids)
	}
	return n
}
