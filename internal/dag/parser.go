package dag

import (
	"fmt"
	"strconv"
	"strings"

	"mini-rss/internal/common"
)

const (
	attemptPrefix    = "attempt"
	attemptIDFields  = 7 // attempt_<ts>_<app>_<dag>_<vertex>_<task>_<attempt>
	spillSuffixChars = 6 // "_10006" al final del unique identifier
	taskIndexField   = 5
)

// TaskAttemptID es la identidad de un intento de tarea de Tez.
type TaskAttemptID struct {
	ClusterTimestamp int64
	AppID            int
	DagID            int
	VertexID         int
	TaskID           int   // indice de la tarea dentro del vertice
	AttemptID        int64 // contador global de intentos (incluye el salto de 1000 por app attempt)
}

// String reconstruye la forma canonica de Tez.
func (t TaskAttemptID) String() string {
	return fmt.Sprintf("%s_%d_%04d_%d_%02d_%06d_%d",
		attemptPrefix, t.ClusterTimestamp, t.AppID, t.DagID, t.VertexID, t.TaskID, t.AttemptID)
}

// ParseTaskAttemptID parsea "attempt_1685094627632_0157_1_01_000000_0".
// Exige el prefijo "attempt"; TaskIDFromString no.
func ParseTaskAttemptID(s string) (TaskAttemptID, error) {
	parts := strings.Split(s, "_")
	if len(parts) != attemptIDFields || parts[0] != attemptPrefix {
		return TaskAttemptID{}, fmt.Errorf("task attempt id %q mal formado: %w", s, common.ErrInvalidArgument)
	}

	nums := make([]int64, attemptIDFields-1)
	for i, p := range parts[1:] {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return TaskAttemptID{}, fmt.Errorf("campo %d de %q no numerico: %w", i+1, s, common.ErrInvalidArgument)
		}
		nums[i] = n
	}

	return TaskAttemptID{
		ClusterTimestamp: nums[0],
		AppID:            int(nums[1]),
		DagID:            int(nums[2]),
		VertexID:         int(nums[3]),
		TaskID:           int(nums[4]),
		AttemptID:        nums[5],
	}, nil
}

// UniqueIdentifierToAttemptID se queda con los 7 primeros campos separados por '_'.
func UniqueIdentifierToAttemptID(uniqueIdentifier string) (string, error) {
	if uniqueIdentifier == "" {
		return "", fmt.Errorf("uniqueIdentifier vacio: %w", common.ErrInvalidArgument)
	}
	ids := strings.Split(uniqueIdentifier, "_")
	if len(ids) < attemptIDFields {
		return "", fmt.Errorf("uniqueIdentifier %q con menos de %d campos: %w",
			uniqueIdentifier, attemptIDFields, common.ErrInvalidArgument)
	}
	return strings.Join(ids[:attemptIDFields], "_"), nil
}

// AttemptIDFromUniqueIdentifier quita el sufijo de spill del identificador del contexto de entrada.
func AttemptIDFromUniqueIdentifier(uniqueIdentifier string) (TaskAttemptID, error) {
	if len(uniqueIdentifier) <= spillSuffixChars {
		return TaskAttemptID{}, fmt.Errorf("uniqueIdentifier %q demasiado corto: %w", uniqueIdentifier, common.ErrInvalidArgument)
	}
	return ParseTaskAttemptID(uniqueIdentifier[:len(uniqueIdentifier)-spillSuffixChars])
}

// AttemptIDFromPathComponent extrae el intento del path component de un input exitoso.
func AttemptIDFromPathComponent(pathComponent string) (TaskAttemptID, error) {
	s, err := UniqueIdentifierToAttemptID(pathComponent)
	if err != nil {
		return TaskAttemptID{}, err
	}
	return ParseTaskAttemptID(s)
}

// TaskIDFromString devuelve el indice de tarea (sexto campo) de un id de Tez.
// No mira el prefijo: sirve para "attempt_..." y para "task_...".
func TaskIDFromString(taskIDStr string) (int, error) {
	parts := strings.Split(taskIDStr, "_")
	if len(parts) < taskIndexField+1 {
		return 0, fmt.Errorf("no se pudo obtener el task id de %q: %w", taskIDStr, common.ErrInvalidArgument)
	}
	id, err := strconv.Atoi(parts[taskIndexField])
	if err != nil || id < 0 {
		return 0, fmt.Errorf("task id %q no numerico en %q: %w", parts[taskIndexField], taskIDStr, common.ErrInvalidArgument)
	}
	return id, nil
}
