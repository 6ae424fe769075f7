package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"mini-rss/internal/common"
	"mini-rss/internal/rpc"
	"mini-rss/internal/storage"
)

// ShuffleServer guarda los block ids reportados por los writers y los sirve a los readers.
type ShuffleServer struct {
	ID    string
	Host  string
	Port  int
	Store *storage.BlockStore
}

// NewShuffleServer crea el servidor; si id esta vacio se genera uno.
func NewShuffleServer(id, host string, port int) *ShuffleServer {
	if id == "" {
		id = uuid.New().String()
	}
	return &ShuffleServer{
		ID:    id,
		Host:  host,
		Port:  port,
		Store: storage.NewBlockStore(),
	}
}

// Handler expone los metodos RPC del servidor.
func (s *ShuffleServer) Handler() *rpc.Mux {
	mux := rpc.NewMux("ShuffleServer " + s.ID)
	mux.Handle(common.MethodReportShuffleResult, s.handleReportShuffleResult)
	mux.Handle(common.MethodGetShuffleResult, s.handleGetShuffleResult)
	mux.Handle(common.MethodUnregisterApp, s.handleUnregisterApp)
	return mux
}

func (s *ShuffleServer) handleReportShuffleResult(ctx context.Context, payload json.RawMessage) (any, error) {
	var req common.ReportShuffleResultRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("reporte invalido: %w", common.ErrInvalidArgument)
	}

	accepted := 0
	for partitionID, blockIDs := range req.PartitionToBlockIDs {
		n, err := s.Store.AddBlockIDs(req.AppID, req.ShuffleID, partitionID, blockIDs)
		accepted += n
		if err != nil {
			return nil, fmt.Errorf("shuffle %d particion %d: %w", req.ShuffleID, partitionID, err)
		}
	}
	log.Printf("[ShuffleServer %s] Shuffle %d: intento %d reporto %d block ids nuevos",
		s.ID, req.ShuffleID, req.TaskAttemptID, accepted)
	return common.ReportShuffleResultResponse{Accepted: accepted}, nil
}

func (s *ShuffleServer) handleGetShuffleResult(ctx context.Context, payload json.RawMessage) (any, error) {
	var req common.GetShuffleResultRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("peticion invalida: %w", common.ErrInvalidArgument)
	}

	bm := s.Store.GetBlockIDs(req.AppID, req.ShuffleID, req.PartitionID)
	data, err := bm.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("no se pudo serializar el bitmap: %w", err)
	}
	return common.GetShuffleResultResponse{Bitmap: data}, nil
}

// handleUnregisterApp libera los block ids de una aplicacion terminada.
func (s *ShuffleServer) handleUnregisterApp(ctx context.Context, payload json.RawMessage) (any, error) {
	var req common.UnregisterAppRequest
	if err := json.Unmarshal(payload, &req); err != nil || req.AppID == "" {
		return nil, fmt.Errorf("peticion de baja invalida: %w", common.ErrInvalidArgument)
	}
	s.Store.RemoveApp(req.AppID)
	log.Printf("[ShuffleServer %s] App %s dada de baja", s.ID, req.AppID)
	return struct{}{}, nil
}
