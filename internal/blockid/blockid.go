// Package blockid codifica los block ids de 64 bits y los task attempt ids planos.
//
// Un block id empaqueta, de alto a bajo:
//
//	secuencia | intento (6 bits) | particion (24 bits) | task id (21 bits)
//
// donde secuencia e intento comparten el campo de 18 bits. Todas las funciones
// son puras y se pueden llamar concurrentemente.
package blockid

import (
	"fmt"

	"mini-rss/internal/common"
)

const attemptShift = common.PartitionIDMaxLength + common.TaskAttemptIDMaxLength

// Encode construye el block id de (particion, task attempt id plano, secuencia).
// Intento y task id se re-derivan del id plano, asi cada block id emitido pasa
// por los cuatro chequeos de rango.
func Encode(partitionID int, taskAttemptID int64, seqNo int) (int64, error) {
	attemptID := taskAttemptID >> attemptShift
	if attemptID < 0 || attemptID > common.MaxAttemptID {
		return 0, fmt.Errorf("attemptId [%d] no soportado, el maximo es %d: %w",
			attemptID, common.MaxAttemptID, common.ErrRange)
	}

	// Se valida antes de desplazar: un seqNo enorme daria la vuelta y colisionaria.
	if seqNo < 0 || int64(seqNo) > common.MaxSequenceNo>>common.AttemptIDMaxLength {
		return 0, fmt.Errorf("secuencia [%d] no soportada, el maximo es %d: %w",
			seqNo, common.MaxSequenceNo>>common.AttemptIDMaxLength, common.ErrRange)
	}
	atomicInt := (int64(seqNo) << common.AttemptIDMaxLength) + attemptID
	if atomicInt > common.MaxSequenceNo {
		return 0, fmt.Errorf("secuencia [%d] no soportada, el maximo es %d: %w",
			atomicInt, common.MaxSequenceNo, common.ErrRange)
	}

	if partitionID < 0 || int64(partitionID) > common.MaxPartitionID {
		return 0, fmt.Errorf("partitionId [%d] no soportado, el maximo es %d: %w",
			partitionID, common.MaxPartitionID, common.ErrRange)
	}

	taskID := taskAttemptID - (attemptID << attemptShift)
	if taskID < 0 || taskID > common.MaxTaskAttemptID {
		return 0, fmt.Errorf("taskId [%d] no soportado, el maximo es %d: %w",
			taskID, common.MaxTaskAttemptID, common.ErrRange)
	}

	return (atomicInt << attemptShift) + (int64(partitionID) << common.TaskAttemptIDMaxLength) + taskID, nil
}

// TaskAttemptID recupera el task attempt id plano del escritor del bloque.
// Particion y secuencia se descartan.
func TaskAttemptID(blockID int64) int64 {
	taskID := blockID & common.MaxTaskAttemptID
	attemptID := (blockID >> attemptShift) & common.MaxAttemptID
	return (attemptID << attemptShift) + taskID
}

// Fields desempaqueta todos los campos; solo para logs y depuracion.
func Fields(blockID int64) (seqNo int, attemptID int64, partitionID int, taskID int64) {
	atomicInt := blockID >> attemptShift
	seqNo = int(atomicInt >> common.AttemptIDMaxLength)
	attemptID = atomicInt & common.MaxAttemptID
	partitionID = int((blockID >> common.TaskAttemptIDMaxLength) & common.MaxPartitionID)
	taskID = blockID & common.MaxTaskAttemptID
	return seqNo, attemptID, partitionID, taskID
}
