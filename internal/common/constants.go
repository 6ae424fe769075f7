package common

// --- 1. Anchos de campo del protocolo de Block ID ---
// Writer y reader se compilan por separado: estos valores son la unica fuente.

// Layout (alto -> bajo): secuencia | intento (6 bits) | particion | task id
const (
	AttemptIDMaxLength     = 6
	AtomicIntMaxLength     = 18 // secuencia + intento comparten este campo
	PartitionIDMaxLength   = 24
	TaskAttemptIDMaxLength = 21

	MaxAttemptID     int64 = (1 << AttemptIDMaxLength) - 1
	MaxSequenceNo    int64 = (1 << AtomicIntMaxLength) - 1
	MaxPartitionID   int64 = (1 << PartitionIDMaxLength) - 1
	MaxTaskAttemptID int64 = (1 << TaskAttemptIDMaxLength) - 1
)

// --- 2. Derivacion de Shuffle ID ---
const (
	VertexKindMap     = "Map"
	VertexKindReducer = "Reducer"

	VertexIDMappingMaxID = 500 // ordinal maximo aceptado en "Map 1" / "Reducer 2"
	VertexIDMappingMagic = 600 // offset de los Reducer
	ShuffleIDMagic       = 1000

	// El contador global de intentos de Tez avanza de 1000 en 1000 por cada intento de aplicacion.
	AppAttemptIDStride = 1000
)

// --- 3. Estados y metodos RPC del plano de servicio ---
const (
	ServerStatusHealthy   = "HEALTHY"
	ServerStatusUnhealthy = "UNHEALTHY"

	MethodHeartbeat            = "heartbeat"
	MethodGetShuffleAssignment = "getShuffleAssignment"
	MethodGetAssignmentInfo    = "getAssignmentInfo"
	MethodReportShuffleResult  = "reportShuffleResult"
	MethodGetShuffleResult     = "getShuffleResult"
	MethodUnregisterApp        = "unregisterApp"
)
