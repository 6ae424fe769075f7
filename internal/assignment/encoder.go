package assignment

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"mini-rss/internal/common"
)

// Encode genera el registro "<shuffleId>=..." de la tabla. La salida es determinista:
// servidores por host y puerto, particiones ascendentes.
func Encode(shuffleID int, table Table) string {
	byServer := make(map[common.ServerInfo][]int)
	servers := make(common.ServerSet)
	for partitionID, set := range table {
		for server := range set {
			byServer[server] = append(byServer[server], partitionID)
			servers.Add(server)
		}
	}

	entries := make([]string, 0, len(byServer))
	for _, server := range servers.Sorted() {
		partitions := byServer[server]
		sort.Ints(partitions)
		ids := make([]string, len(partitions))
		for i, p := range partitions {
			ids[i] = strconv.Itoa(p)
		}
		entries = append(entries, fmt.Sprintf("%s:%d%s%s",
			server.Host, server.Port, partitionsMarker, strings.Join(ids, partitionDelimiter)))
	}
	return strconv.Itoa(shuffleID) + shuffleDelimiter + strings.Join(entries, hostDelimiter)
}

// Merge une registros de varios shuffle ids en una sola cadena.
func Merge(records ...string) string {
	nonEmpty := make([]string, 0, len(records))
	for _, r := range records {
		if r != "" {
			nonEmpty = append(nonEmpty, r)
		}
	}
	return strings.Join(nonEmpty, recordDelimiter)
}
