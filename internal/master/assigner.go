package master

import (
	"fmt"
	"sort"
	"sync"

	"mini-rss/internal/assignment"
	"mini-rss/internal/common"
)

// Assigner reparte las particiones de cada shuffle id entre los servidores vivos, en round robin.
// Una vez asignado, un shuffle id conserva su asignacion: productor y consumidor ven la misma.
type Assigner struct {
	mu          sync.Mutex
	registry    *ServerRegistry
	assignments map[int]string // shuffleID -> registro codificado
	nextIdx     int
}

func NewAssigner(registry *ServerRegistry) *Assigner {
	return &Assigner{
		registry:    registry,
		assignments: make(map[int]string),
	}
}

// Assign devuelve el registro "<shuffleId>=..." del shuffle, creandolo si hace falta.
func (a *Assigner) Assign(req common.AssignmentRequest) (string, error) {
	if req.PartitionNum <= 0 {
		return "", fmt.Errorf("el numero de particiones debe ser mayor a cero: %w", common.ErrInvalidArgument)
	}
	if int64(req.PartitionNum-1) > common.MaxPartitionID {
		return "", fmt.Errorf("%d particiones exceden el maximo %d: %w", req.PartitionNum, common.MaxPartitionID+1, common.ErrRange)
	}
	replica := req.ReplicaNum
	if replica <= 0 {
		replica = 1
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if rec, ok := a.assignments[req.ShuffleID]; ok {
		return rec, nil
	}

	servers := a.pickServers(req.ServerNum)
	if len(servers) < replica {
		return "", fmt.Errorf("hay %d servidores vivos, se necesitan %d replicas", len(servers), replica)
	}

	table := make(assignment.Table)
	for p := 0; p < req.PartitionNum; p++ {
		set := make(common.ServerSet)
		for r := 0; r < replica; r++ {
			set.Add(servers[(p+r)%len(servers)])
		}
		table[p] = set
	}

	rec := assignment.Encode(req.ShuffleID, table)
	a.assignments[req.ShuffleID] = rec
	fmt.Printf("[Coordinator] Shuffle %d asignado a %d servidores (%d particiones, replica %d)\n",
		req.ShuffleID, len(servers), req.PartitionNum, replica)
	return rec, nil
}

// pickServers toma n servidores vivos empezando donde termino la asignacion anterior.
func (a *Assigner) pickServers(n int) []common.ServerInfo {
	alive := a.registry.GetAliveServers()
	if len(alive) == 0 {
		return nil
	}
	if n <= 0 || n > len(alive) {
		n = len(alive)
	}
	picked := make([]common.ServerInfo, 0, n)
	for i := 0; i < n; i++ {
		picked = append(picked, alive[(a.nextIdx+i)%len(alive)].ServerInfo())
	}
	a.nextIdx += n
	return picked
}

// AssignmentInfo devuelve todas las asignaciones, unidas con ';' y ordenadas por shuffle id.
func (a *Assigner) AssignmentInfo() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	ids := make([]int, 0, len(a.assignments))
	for id := range a.assignments {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	records := make([]string, len(ids))
	for i, id := range ids {
		records[i] = a.assignments[id]
	}
	return assignment.Merge(records...)
}
