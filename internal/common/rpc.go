package common

// Payloads de los metodos RPC (JSON).

type AssignmentRequest struct {
	AppID        string `json:"app_id"`
	ShuffleID    int    `json:"shuffle_id"`
	PartitionNum int    `json:"partition_num"`
	ServerNum    int    `json:"server_num"` // <= 0: todos los servidores vivos
	ReplicaNum   int    `json:"replica_num"`
}

type AssignmentResponse struct {
	ShuffleID  int    `json:"shuffle_id"`
	Assignment string `json:"assignment"` // "<shuffleId>=<host>:<port>+<p1>_<p2>,..."
}

type AssignmentInfoResponse struct {
	Assignments string `json:"assignments"` // registros separados por ';'
}

type ReportShuffleResultRequest struct {
	AppID               string          `json:"app_id"`
	ShuffleID           int             `json:"shuffle_id"`
	TaskAttemptID       int64           `json:"task_attempt_id"`
	PartitionToBlockIDs map[int][]int64 `json:"partition_to_block_ids"`
}

type ReportShuffleResultResponse struct {
	Accepted int `json:"accepted"`
}

type GetShuffleResultRequest struct {
	AppID       string `json:"app_id"`
	ShuffleID   int    `json:"shuffle_id"`
	PartitionID int    `json:"partition_id"`
}

type GetShuffleResultResponse struct {
	Bitmap []byte `json:"bitmap"` // roaring64 serializado
}

type UnregisterAppRequest struct {
	AppID string `json:"app_id"`
}
