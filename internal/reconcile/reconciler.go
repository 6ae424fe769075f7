// Package reconcile decide que intentos upstream son autoritativos para una lectura.
package reconcile

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/roaring64"

	"mini-rss/internal/blockid"
	"mini-rss/internal/common"
	"mini-rss/internal/dag"
)

// Result son los dos bitmaps alineados de una reconciliacion exitosa.
type Result struct {
	// TaskAttemptIDs es el conjunto autoritativo de task attempt ids planos cuyos bloques se leen.
	TaskAttemptIDs *roaring64.Bitmap
	MapTaskIDs     *roaring64.Bitmap

	Redundant  int // intentos descartados por repetir map task
	Overflowed int // map task ids >= totalMapsCount (aceptados igualmente)
}

// Reconcile se queda con exactamente un intento exitoso por map task, en el orden de entrada.
// El slice no debe mutarse durante la llamada; el resultado no retiene referencias a el.
func Reconcile(attempts []common.AttemptSuccessRecord, totalMapsCount, appAttemptNumber int, opts ...Option) (*Result, error) {
	o := defaultOption()
	for _, opt := range opts {
		opt(o)
	}

	res := &Result{
		TaskAttemptIDs: roaring64.New(),
		MapTaskIDs:     roaring64.New(),
	}
	o.logger.Printf("[Reconciler] %d intentos exitosos, totalMapsCount=%d, appAttemptId=%d",
		len(attempts), totalMapsCount, appAttemptNumber)

	for _, rec := range attempts {
		attemptID, err := dag.AttemptIDFromPathComponent(rec.PathComponent)
		if err != nil {
			return nil, fmt.Errorf("path component %q: %w", rec.PathComponent, err)
		}
		flatID, err := blockid.FromTezAttempt(attemptID, appAttemptNumber)
		if err != nil {
			return nil, err
		}
		mapTaskID := uint64(attemptID.TaskID)

		if res.MapTaskIDs.Contains(mapTaskID) {
			res.Redundant++
			o.logger.Printf("[Reconciler] %s redundante en el indice %d", rec.PathComponent, mapTaskID)
			continue
		}
		res.TaskAttemptIDs.Add(uint64(flatID))
		res.MapTaskIDs.Add(mapTaskID)

		// El indice upstream deberia ser < total de tareas (incluidas las fallidas).
		if attemptID.TaskID >= totalMapsCount {
			res.Overflowed++
			o.logger.Printf("[Reconciler] WARN: %s tiene mapIndex desbordado %d, totalMapsCount: %d",
				rec.PathComponent, mapTaskID, totalMapsCount)
		}
	}

	if err := checkConsistency(res.MapTaskIDs, res.TaskAttemptIDs); err != nil {
		return nil, err
	}
	return res, nil
}

// Cada map task aporta exactamente un task attempt id.
func checkConsistency(mapTaskIDs, taskAttemptIDs *roaring64.Bitmap) error {
	if mapTaskIDs.GetCardinality() != taskAttemptIDs.GetCardinality() {
		return fmt.Errorf("los task attempt ids (%d) no coinciden con los map tasks (%d): %w",
			taskAttemptIDs.GetCardinality(), mapTaskIDs.GetCardinality(), common.ErrInconsistentState)
	}
	return nil
}
