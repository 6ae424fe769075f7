// Package assignment parsea y genera el formato textual de asignacion de shuffle servers.
//
// Un registro por shuffle id, separados por ';':
//
//	1001602=172.19.193.247:19999+1_4_7,172.19.193.55:19999+2_5,172.19.193.152:19999+0_3_6
//
// Cada entrada "<host>:<port>+<p1>_<p2>_..." indica que ese servidor atiende
// esas particiones para el shuffle id del registro.
package assignment

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"mini-rss/internal/common"
)

const (
	recordDelimiter    = ";"
	shuffleDelimiter   = "="
	hostDelimiter      = ","
	partitionsMarker   = "+"
	partitionDelimiter = "_"
	portDelimiter      = ":"
)

// Table mapea particion -> servidores que la atienden, para un shuffle id.
type Table map[int]common.ServerSet

func (t Table) add(partitionID int, server common.ServerInfo) {
	set, ok := t[partitionID]
	if !ok {
		set = make(common.ServerSet)
		t[partitionID] = set
	}
	set.Add(server)
}

// Servers devuelve los servidores de la particion, ordenados. Vacio si no hay asignacion.
func (t Table) Servers(partitionID int) []common.ServerInfo {
	return t[partitionID].Sorted()
}

// Partitions devuelve las particiones asignadas en orden ascendente.
func (t Table) Partitions() []int {
	out := make([]int, 0, len(t))
	for p := range t {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Parse construye la tabla del shuffle id pedido. Los registros de otros shuffle ids
// se ignoran; un registro que coincide y esta mal formado es un error.
func Parse(raw string, shuffleID int) (Table, error) {
	table := make(Table)
	target := strconv.Itoa(shuffleID)

	for _, rec := range strings.Split(raw, recordDelimiter) {
		rec = strings.TrimSpace(rec)
		if rec == "" {
			continue
		}
		splits := strings.Split(rec, shuffleDelimiter)
		if splits[0] != target {
			continue
		}
		if len(splits) != 2 {
			return nil, fmt.Errorf("registro %q: se esperaban 2 campos separados por %q: %w",
				rec, shuffleDelimiter, common.ErrMalformedAssignment)
		}
		if err := parseHostInfo(table, splits[1]); err != nil {
			return nil, fmt.Errorf("shuffle %d: %w", shuffleID, err)
		}
	}
	return table, nil
}

// parseHostInfo procesa "h1:p1+1_4_7,h2:p2+2_5".
func parseHostInfo(table Table, multiHostInfo string) error {
	for _, hostInfo := range strings.Split(multiHostInfo, hostDelimiter) {
		hostInfo = strings.TrimSpace(hostInfo)
		if hostInfo == "" {
			continue
		}
		info := strings.Split(hostInfo, partitionsMarker)
		if len(info) != 2 {
			return fmt.Errorf("entrada %q sin %q: %w", hostInfo, partitionsMarker, common.ErrMalformedAssignment)
		}
		server, err := parseServer(info[0])
		if err != nil {
			return err
		}

		partitions := strings.Split(info[1], partitionDelimiter)
		for _, p := range partitions {
			partitionID, err := strconv.Atoi(p)
			if err != nil || partitionID < 0 {
				return fmt.Errorf("particion %q no numerica en %q: %w", p, hostInfo, common.ErrMalformedAssignment)
			}
			table.add(partitionID, server)
		}
	}
	return nil
}

func parseServer(hostPort string) (common.ServerInfo, error) {
	parts := strings.Split(hostPort, portDelimiter)
	if len(parts) != 2 || parts[0] == "" {
		return common.ServerInfo{}, fmt.Errorf("servidor %q no es host:port: %w", hostPort, common.ErrMalformedAssignment)
	}
	port, err := strconv.Atoi(parts[1])
	if err != nil || port <= 0 || port > 65535 {
		return common.ServerInfo{}, fmt.Errorf("puerto invalido en %q: %w", hostPort, common.ErrMalformedAssignment)
	}
	return common.NewServerInfo(parts[0], port), nil
}
