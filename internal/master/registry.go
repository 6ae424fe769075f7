package master

import (
	"log"
	"sync"
	"time"

	"mini-rss/internal/common"
)

// ServerRegistry almacena el estado de los shuffle servers en orden determinista.
type ServerRegistry struct {
	mu      sync.RWMutex
	timeout time.Duration
	servers map[string]common.Heartbeat
	order   []string // orden de registro; el mapa itera aleatorio
	now     func() time.Time
}

func NewServerRegistry(timeout time.Duration) *ServerRegistry {
	return &ServerRegistry{
		timeout: timeout,
		servers: make(map[string]common.Heartbeat),
		now:     time.Now,
	}
}

// UpdateHeartbeat registra o actualiza un servidor.
func (r *ServerRegistry) UpdateHeartbeat(hb common.Heartbeat) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hb.LastHeartbeat = r.now().UnixMilli()

	old, exists := r.servers[hb.ServerID]
	if !exists {
		r.order = append(r.order, hb.ServerID)
	}
	// Si el servidor no existia o estaba expirado, loguear reingreso
	if !exists || r.isDead(old) {
		log.Printf("[Registry] Servidor %s registrado/recuperado (Address: %s)", hb.ServerID, hb.ServerInfo())
	}
	r.servers[hb.ServerID] = hb
}

// GetAliveServers devuelve, en orden de registro, los servidores sanos con heartbeat reciente.
func (r *ServerRegistry) GetAliveServers() []common.Heartbeat {
	r.mu.RLock()
	defer r.mu.RUnlock()

	alive := make([]common.Heartbeat, 0, len(r.order))
	for _, id := range r.order {
		hb := r.servers[id]
		if !r.isDead(hb) && hb.Status == common.ServerStatusHealthy {
			alive = append(alive, hb)
		}
	}
	return alive
}

// DetectDeadServers elimina los servidores expirados y devuelve sus IDs.
func (r *ServerRegistry) DetectDeadServers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deadIDs []string
	kept := r.order[:0]
	for _, id := range r.order {
		if r.isDead(r.servers[id]) {
			deadIDs = append(deadIDs, id)
			delete(r.servers, id)
			log.Printf("[Registry] ALERTA: Servidor %s declarado MUERTO (Timeout)", id)
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return deadIDs
}

func (r *ServerRegistry) isDead(hb common.Heartbeat) bool {
	return r.now().UnixMilli()-hb.LastHeartbeat >= r.timeout.Milliseconds()
}
