package common

import (
	"fmt"
	"net"
	"sort"
	"strconv"
)

// ServerInfo identifica un shuffle server por (host, port).
type ServerInfo struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

func NewServerInfo(host string, port int) ServerInfo {
	return ServerInfo{Host: host, Port: port}
}

// Address devuelve "host:port".
func (s ServerInfo) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ID sigue la convencion host-port de los servidores.
func (s ServerInfo) ID() string {
	return fmt.Sprintf("%s-%d", s.Host, s.Port)
}

func (s ServerInfo) String() string { return s.Address() }

// ServerSet es un conjunto de servidores.
type ServerSet map[ServerInfo]struct{}

func (s ServerSet) Add(info ServerInfo) { s[info] = struct{}{} }

func (s ServerSet) Contains(info ServerInfo) bool {
	_, ok := s[info]
	return ok
}

// Sorted devuelve los servidores ordenados por host y puerto.
func (s ServerSet) Sorted() []ServerInfo {
	out := make([]ServerInfo, 0, len(s))
	for info := range s {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Host != out[j].Host {
			return out[i].Host < out[j].Host
		}
		return out[i].Port < out[j].Port
	})
	return out
}
