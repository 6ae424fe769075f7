package master

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"mini-rss/internal/common"
	"mini-rss/internal/rpc"
)

type Coordinator struct {
	Registry *ServerRegistry
	Assigner *Assigner
}

func NewCoordinator(heartbeatTimeout time.Duration) *Coordinator {
	registry := NewServerRegistry(heartbeatTimeout)
	return &Coordinator{
		Registry: registry,
		Assigner: NewAssigner(registry),
	}
}

func (c *Coordinator) Handler() *rpc.Mux {
	mux := rpc.NewMux("Coordinator")
	mux.Handle(common.MethodHeartbeat, c.handleHeartbeat)
	mux.Handle(common.MethodGetShuffleAssignment, c.handleGetShuffleAssignment)
	mux.Handle(common.MethodGetAssignmentInfo, c.handleGetAssignmentInfo)
	return mux
}

// ControlLoop purga periodicamente los servidores muertos.
func (c *Coordinator) ControlLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Registry.DetectDeadServers()
		}
	}
}

func (c *Coordinator) handleHeartbeat(ctx context.Context, payload json.RawMessage) (any, error) {
	var hb common.Heartbeat
	if err := json.Unmarshal(payload, &hb); err != nil || hb.ServerID == "" {
		return nil, fmt.Errorf("heartbeat invalido: %w", common.ErrInvalidArgument)
	}
	c.Registry.UpdateHeartbeat(hb)
	return struct{}{}, nil
}

func (c *Coordinator) handleGetShuffleAssignment(ctx context.Context, payload json.RawMessage) (any, error) {
	var req common.AssignmentRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("peticion de asignacion invalida: %w", common.ErrInvalidArgument)
	}
	rec, err := c.Assigner.Assign(req)
	if err != nil {
		return nil, err
	}
	log.Printf("[Coordinator] App %s pidio el shuffle %d", req.AppID, req.ShuffleID)
	return common.AssignmentResponse{ShuffleID: req.ShuffleID, Assignment: rec}, nil
}

func (c *Coordinator) handleGetAssignmentInfo(ctx context.Context, payload json.RawMessage) (any, error) {
	return common.AssignmentInfoResponse{Assignments: c.Assigner.AssignmentInfo()}, nil
}
