package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mini-rss/internal/assignment"
	"mini-rss/internal/common"
	"mini-rss/internal/dag"
)

// Genera datos de prueba: una cadena de asignacion y una lista de intentos exitosos con reintentos.
func main() {
	outDir := flag.String("out", "data/inputs", "Directorio de salida")
	shuffleID := flag.Int("shuffle", 1000602, "Shuffle id")
	partitions := flag.Int("partitions", 8, "Numero de particiones")
	servers := flag.String("servers", "localhost:19999,localhost:20000", "Shuffle servers host:port separados por coma")
	replica := flag.Int("replica", 1, "Replicas por particion")
	maps := flag.Int("maps", 10, "Numero de map tasks")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Println("Error creando directorio:", err)
		os.Exit(1)
	}

	// 1. ASIGNACION
	var infos []common.ServerInfo
	for _, hp := range strings.Split(*servers, ",") {
		host, port, err := net.SplitHostPort(strings.TrimSpace(hp))
		if err != nil {
			fmt.Printf("Servidor invalido %q: %v\n", hp, err)
			os.Exit(1)
		}
		p, _ := strconv.Atoi(port)
		infos = append(infos, common.NewServerInfo(host, p))
	}
	table := make(assignment.Table)
	for p := 0; p < *partitions; p++ {
		set := make(common.ServerSet)
		for r := 0; r < *replica; r++ {
			set.Add(infos[(p+r)%len(infos)])
		}
		table[p] = set
	}
	assignPath := filepath.Join(*outDir, "assignment.txt")
	fmt.Println("Generando", assignPath, "...")
	os.WriteFile(assignPath, []byte(assignment.Encode(*shuffleID, table)+"\n"), 0644)

	// 2. INTENTOS EXITOSOS
	// Cada tercera tarea tiene dos intentos reportados (el segundo es redundante).
	var records []common.AttemptSuccessRecord
	for task := 0; task < *maps; task++ {
		id := dag.TaskAttemptID{ClusterTimestamp: 1681717153064, AppID: 3770270, DagID: 1, TaskID: task}
		records = append(records, common.AttemptSuccessRecord{PathComponent: id.String() + "_10003"})
		if task%3 == 0 {
			id.AttemptID = 1
			records = append(records, common.AttemptSuccessRecord{PathComponent: id.String() + "_10003"})
		}
	}
	tasks := make(map[int]bool)
	for _, r := range records {
		if id, err := dag.TaskIDFromString(r.PathComponent); err == nil {
			tasks[id] = true
		}
	}
	fmt.Printf("%d intentos exitosos para %d tareas\n", len(records), len(tasks))

	attemptsPath := filepath.Join(*outDir, "attempts.json")
	fmt.Println("Generando", attemptsPath, "...")
	data, _ := json.MarshalIndent(records, "", "  ")
	os.WriteFile(attemptsPath, data, 0644)

	fmt.Println(" Todos los datos generados exitosamente.")
}
