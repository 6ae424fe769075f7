package common

// AttemptSuccessRecord es un intento upstream reportado como exitoso.
// PathComponent tiene la forma "attempt_<ts>_<app>_<dag>_<vertex>_<task>_<attempt>[_<spill>]".
type AttemptSuccessRecord struct {
	PathComponent string `json:"path_component"`
}

// InputContext son los campos del contexto de entrada del motor DAG que se leen aqui.
type InputContext interface {
	DagIdentifier() int
	SourceVertexName() string
	TaskVertexName() string
	UniqueIdentifier() string
}
