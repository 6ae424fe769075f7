package worker

import (
	"context"
	"log"
	"time"

	"mini-rss/internal/common"
	"mini-rss/internal/rpc"
)

// SendHeartbeat envia el heartbeat al coordinador.
// Es una VARIABLE de función para poder ser sobrescrita en tests.
var SendHeartbeat = func(ctx context.Context, client *rpc.Client, coordinatorAddr string, hb common.Heartbeat) error {
	return client.Call(ctx, coordinatorAddr, rpc.NewRequest(common.MethodHeartbeat, hb), nil)
}

func (s *ShuffleServer) heartbeat() common.Heartbeat {
	return common.Heartbeat{
		ServerID:   s.ID,
		Host:       s.Host,
		Port:       s.Port,
		Status:     common.ServerStatusHealthy,
		BlockCount: s.Store.BlockCount(),
	}
}

// HeartbeatLoop reporta al coordinador cada interval hasta que ctx se cancele.
func (s *ShuffleServer) HeartbeatLoop(ctx context.Context, client *rpc.Client, coordinatorAddr string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := SendHeartbeat(ctx, client, coordinatorAddr, s.heartbeat()); err != nil && ctx.Err() == nil {
			// Loguear el error; el siguiente tick reintenta.
			log.Printf("[ShuffleServer %s] ERROR enviando heartbeat a %s: %v", s.ID, coordinatorAddr, err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
