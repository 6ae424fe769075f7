package blockid

import (
	"fmt"

	"mini-rss/internal/common"
	"mini-rss/internal/dag"
)

// ToFlatID codifica (task id, intento global) en el task attempt id plano.
// El contador global de Tez avanza 1000 por cada intento de aplicacion; aqui
// se normaliza al intento de aplicacion actual.
func ToFlatID(taskID, globalAttemptNumber int64, appAttemptNumber int) (int64, error) {
	if taskID < 0 || taskID > common.MaxTaskAttemptID {
		return 0, fmt.Errorf("task id %d excede el maximo %d: %w", taskID, common.MaxTaskAttemptID, common.ErrRange)
	}
	if appAttemptNumber < 1 {
		return 0, fmt.Errorf("appAttemptId %d incorrecto, empieza en 1: %w", appAttemptNumber, common.ErrInvalidArgument)
	}

	localAttempt := globalAttemptNumber - int64(appAttemptNumber-1)*common.AppAttemptIDStride
	if localAttempt < 0 || localAttempt > common.MaxAttemptID {
		return 0, fmt.Errorf("intento local %d fuera de [0, %d] (global %d, appAttemptId %d): %w",
			localAttempt, common.MaxAttemptID, globalAttemptNumber, appAttemptNumber, common.ErrRange)
	}

	return (localAttempt << attemptShift) + taskID, nil
}

// FromTezAttempt aplica ToFlatID a un intento de Tez.
func FromTezAttempt(id dag.TaskAttemptID, appAttemptNumber int) (int64, error) {
	flat, err := ToFlatID(int64(id.TaskID), id.AttemptID, appAttemptNumber)
	if err != nil {
		return 0, fmt.Errorf("intento %s: %w", id, err)
	}
	return flat, nil
}
