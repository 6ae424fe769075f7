package common

// Heartbeat lo envia cada shuffle server al coordinador.
type Heartbeat struct {
	ServerID      string `json:"server_id"`
	Host          string `json:"host"`
	Port          int    `json:"port"`
	Status        string `json:"status"`
	BlockCount    uint64 `json:"block_count"`    // block ids indexados en memoria
	LastHeartbeat int64  `json:"last_heartbeat"` // Timestamp del último heartbeat, lo fija el coordinador
}

func (h Heartbeat) ServerInfo() ServerInfo {
	return NewServerInfo(h.Host, h.Port)
}
