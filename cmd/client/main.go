package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"mini-rss/internal/blockid"
	"mini-rss/internal/client"
	"mini-rss/internal/common"
	"mini-rss/internal/config"
	"mini-rss/internal/dag"
	"mini-rss/internal/rpc"
	"mini-rss/internal/shuffle"
)

// Simula un shuffle Map -> Reducer: cada map task escribe block ids, la tarea 0
// se reintenta, y el lado reducer lee solo los bloques del intento aceptado.
func main() {
	confPath := flag.String("conf", "", "Archivo JSON de configuracion (opcional)")
	coordinator := flag.String("coordinator", "", "host:port del coordinador (por defecto rss.coordinator.address)")
	dagID := flag.Int("dag", 1, "Identificador del DAG")
	upstream := flag.String("up", "Map 1", "Vertice productor")
	downstream := flag.String("down", "Reducer 2", "Vertice consumidor")
	partitions := flag.Int("partitions", 4, "Numero de particiones")
	maps := flag.Int("maps", 3, "Numero de map tasks")
	blocks := flag.Int("blocks", 5, "Bloques por particion y por intento")
	taskMemoryMB := flag.Int64("task-memory", 1024, "Memoria disponible por tarea (MB)")
	flag.Parse()

	conf := config.New()
	if *confPath != "" {
		var err error
		if conf, err = config.Load(*confPath); err != nil {
			log.Fatal(err)
		}
	}
	if *coordinator != "" {
		conf.Set(config.CoordinatorAddress, *coordinator)
	}
	opts := client.NewOptions(conf)

	if _, err := client.InitialMemoryRequirement(conf, *taskMemoryMB<<20); err != nil {
		log.Fatal(err)
	}

	clusterTS := time.Now().UnixMilli()
	// Contexto de entrada de la primera tarea reducer.
	reducerCtx := inputContext{
		dagID:    *dagID,
		source:   *upstream,
		vertex:   *downstream,
		uniqueID: dag.TaskAttemptID{ClusterTimestamp: clusterTS, AppID: 1, DagID: *dagID, VertexID: 1}.String() + "_10003",
	}
	shuffleID, err := shuffle.ComputeShuffleID(reducerCtx)
	if err != nil {
		log.Fatal(err)
	}
	appID := uuid.NewString()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	rpcClient := rpc.NewClient(10 * time.Second)

	req := common.AssignmentRequest{
		AppID:        appID,
		ShuffleID:    shuffleID,
		PartitionNum: *partitions,
		ServerNum:    client.RequiredShuffleServerNumber(conf, *maps, *partitions),
		ReplicaNum:   opts.Replica,
	}
	table, err := client.RequestAssignment(ctx, rpcClient, opts, req)
	if err != nil {
		log.Fatalf("[Client] No se obtuvo asignacion: %v", err)
	}
	log.Printf("[Client] App %s, shuffle %d (%s -> %s): %d particiones asignadas",
		appID, shuffleID, *upstream, *downstream, len(table.Partitions()))

	// Lado map: un Writer por intento.
	var succeeded []common.AttemptSuccessRecord
	for task := 0; task < *maps; task++ {
		lastAttempt := int64(0)
		if task == 0 {
			lastAttempt = 1
		}
		for attempt := int64(0); attempt <= lastAttempt; attempt++ {
			id := dag.TaskAttemptID{ClusterTimestamp: clusterTS, AppID: 1, DagID: *dagID, TaskID: task, AttemptID: attempt}
			flatID, err := blockid.FromTezAttempt(id, 1)
			if err != nil {
				log.Fatal(err)
			}
			w := client.NewWriter(rpcClient, opts, appID, shuffleID, table, flatID, log.Default())
			for _, p := range table.Partitions() {
				for i := 0; i < *blocks; i++ {
					if _, err := w.AddBlock(p); err != nil {
						log.Fatal(err)
					}
				}
			}
			if err := w.Flush(ctx); err != nil {
				log.Fatalf("[Client] %s: %v", id, err)
			}
			if attempt == lastAttempt {
				succeeded = append(succeeded, common.AttemptSuccessRecord{PathComponent: fmt.Sprintf("%s_10003", id)})
			}
		}
	}

	// Lado reducer: vuelve a pedir la asignacion y lee cada particion.
	readTable, err := client.FetchAssignment(ctx, rpcClient, opts, shuffleID)
	if err != nil {
		log.Fatalf("[Client] No se obtuvo la asignacion para leer: %v", err)
	}
	reducerAttempt, err := dag.AttemptIDFromUniqueIdentifier(reducerCtx.UniqueIdentifier())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[Client] Reducer %s leyendo el shuffle %d", reducerAttempt, shuffleID)
	reader := client.NewReader(rpcClient, opts, appID, shuffleID, readTable, log.Default())
	for _, p := range readTable.Partitions() {
		ids, err := reader.Read(ctx, p, succeeded, *maps, 1)
		if err != nil {
			log.Fatalf("[Client] Particion %d: %v", p, err)
		}
		fmt.Printf("Particion %d: %d bloques a leer\n", p, ids.GetCardinality())
	}

	if err := client.UnregisterApp(ctx, rpcClient, readTable, appID); err != nil {
		log.Printf("[Client] Baja incompleta de la app %s: %v", appID, err)
	}
}

// inputContext es el contexto de entrada que el motor DAG entrega a una tarea consumidora.
type inputContext struct {
	dagID    int
	source   string
	vertex   string
	uniqueID string
}

func (c inputContext) DagIdentifier() int       { return c.dagID }
func (c inputContext) SourceVertexName() string { return c.source }
func (c inputContext) TaskVertexName() string   { return c.vertex }
func (c inputContext) UniqueIdentifier() string { return c.uniqueID }
