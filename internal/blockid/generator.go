package blockid

import (
	"sync/atomic"
)

// Generator emite block ids para un unico task attempt. Es el dueño exclusivo
// del contador de secuencia: nunca se comparte entre intentos y un numero
// consumido no se reutiliza, aunque el encode falle.
type Generator struct {
	taskAttemptID int64
	nextSeqNo     atomic.Int64
}

func NewGenerator(taskAttemptID int64) *Generator {
	return &Generator{taskAttemptID: taskAttemptID}
}

func (g *Generator) TaskAttemptID() int64 { return g.taskAttemptID }

// Next emite el siguiente block id para la particion.
func (g *Generator) Next(partitionID int) (int64, error) {
	seq := g.nextSeqNo.Add(1) - 1
	return Encode(partitionID, g.taskAttemptID, int(seq))
}

// Issued devuelve cuantos numeros de secuencia se consumieron.
func (g *Generator) Issued() int64 { return g.nextSeqNo.Load() }
