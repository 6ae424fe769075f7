package client

import (
	"context"
	"fmt"
	"log"
	"time"

	"mini-rss/internal/assignment"
	"mini-rss/internal/common"
	"mini-rss/internal/rpc"
)

// callWithRetry reintenta con espera creciente, acotada por RetryIntervalMax.
func callWithRetry(ctx context.Context, c *rpc.Client, opts Options, method string, payload, out any) error {
	attempts := max(opts.RetryMax, 1)
	wait := 100 * time.Millisecond
	var err error
	for i := 0; i < attempts; i++ {
		if err = c.Call(ctx, opts.CoordinatorAddress, rpc.NewRequest(method, payload), out); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		log.Printf("[Client] %s fallo (intento %d/%d): %v", method, i+1, attempts, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait = min(wait*2, max(opts.RetryIntervalMax, time.Millisecond))
	}
	return fmt.Errorf("%s fallo tras %d intentos: %w", method, attempts, err)
}

// RequestAssignment pide (o recupera) la asignacion de un shuffle y la parsea.
func RequestAssignment(ctx context.Context, c *rpc.Client, opts Options, req common.AssignmentRequest) (assignment.Table, error) {
	var resp common.AssignmentResponse
	if err := callWithRetry(ctx, c, opts, common.MethodGetShuffleAssignment, req, &resp); err != nil {
		return nil, err
	}
	return assignment.Parse(resp.Assignment, req.ShuffleID)
}

// FetchAssignment descarga todas las asignaciones y se queda con las del shuffle pedido.
func FetchAssignment(ctx context.Context, c *rpc.Client, opts Options, shuffleID int) (assignment.Table, error) {
	var resp common.AssignmentInfoResponse
	if err := callWithRetry(ctx, c, opts, common.MethodGetAssignmentInfo, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return assignment.Parse(resp.Assignments, shuffleID)
}
