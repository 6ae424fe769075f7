package dag_test

import (
	"errors"
	"testing"

	"mini-rss/internal/common"
	"mini-rss/internal/dag"
)

func TestParseTaskAttemptID(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    dag.TaskAttemptID
	}{
		{
			name:  "Intento normal",
			input: "attempt_1685094627632_0157_1_01_000000_0",
			expected: dag.TaskAttemptID{
				ClusterTimestamp: 1685094627632, AppID: 157, DagID: 1, VertexID: 1, TaskID: 0, AttemptID: 0,
			},
		},
		{
			name:  "Segundo app attempt",
			input: "attempt_1685094627632_0157_2_03_000042_1001",
			expected: dag.TaskAttemptID{
				ClusterTimestamp: 1685094627632, AppID: 157, DagID: 2, VertexID: 3, TaskID: 42, AttemptID: 1001,
			},
		},
		{name: "Prefijo incorrecto (Error)", input: "task_1685094627632_0157_1_01_000000_0", expectError: true},
		{name: "Campos faltantes (Error)", input: "attempt_1685094627632_0157_1_01_000000", expectError: true},
		{name: "Campo no numerico (Error)", input: "attempt_1685094627632_0157_1_01_abc_0", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dag.ParseTaskAttemptID(tt.input)
			if (err != nil) != tt.expectError {
				t.Fatalf("Se esperaba error=%t, pero se obtuvo error: %v", tt.expectError, err)
			}
			if tt.expectError {
				if !errors.Is(err, common.ErrInvalidArgument) {
					t.Errorf("Se esperaba ErrInvalidArgument, obtenido: %v", err)
				}
				return
			}
			if got != tt.expected {
				t.Errorf("Esperado %+v, Obtenido %+v", tt.expected, got)
			}
			if got.String() != tt.input {
				t.Errorf("String() no reconstruye la entrada. Esperado %s, Obtenido %s", tt.input, got.String())
			}
		})
	}
}

func TestAttemptIDFromUniqueIdentifier(t *testing.T) {
	got, err := dag.AttemptIDFromUniqueIdentifier("attempt_1685094627632_0157_1_01_000000_0_10006")
	if err != nil {
		t.Fatalf("Error inesperado: %v", err)
	}
	if got.String() != "attempt_1685094627632_0157_1_01_000000_0" {
		t.Errorf("Intento incorrecto: %s", got)
	}

	if _, err := dag.AttemptIDFromUniqueIdentifier("_1006"); err == nil {
		t.Error("Se esperaba error para un identificador demasiado corto")
	}
}

func TestUniqueIdentifierToAttemptID(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		expectError bool
	}{
		{name: "Con sufijo de spill", input: "attempt_1_0001_1_00_000003_0_10006", expected: "attempt_1_0001_1_00_000003_0"},
		{name: "Sin sufijo", input: "attempt_1_0001_1_00_000003_0", expected: "attempt_1_0001_1_00_000003_0"},
		{name: "Vacio (Error)", input: "", expectError: true},
		{name: "Muy corto (Error)", input: "attempt_1_2", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dag.UniqueIdentifierToAttemptID(tt.input)
			if (err != nil) != tt.expectError {
				t.Fatalf("Se esperaba error=%t, obtenido: %v", tt.expectError, err)
			}
			if got != tt.expected {
				t.Errorf("Esperado %q, Obtenido %q", tt.expected, got)
			}
		})
	}
}

func TestTaskIDFromString(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  int
		expectErr bool
	}{
		{name: "Attempt con spill", input: "attempt_1685094627632_0157_1_01_000017_0_10003", expected: 17},
		{name: "Task id", input: "task_1685094627632_0157_1_01_000042", expected: 42},
		{name: "Prefijo arbitrario", input: "x_1_2_3_4_000005", expected: 5},
		{name: "Pocos campos", input: "task_1685094627632_0157_1_01", expectErr: true},
		{name: "Indice no numerico", input: "task_1_2_3_4_abc", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := dag.TaskIDFromString(tt.input)
			if tt.expectErr {
				if !errors.Is(err, common.ErrInvalidArgument) {
					t.Errorf("Se esperaba ErrInvalidArgument, obtenido: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Error inesperado: %v", err)
			}
			if id != tt.expected {
				t.Errorf("Esperado %d, Obtenido %d", tt.expected, id)
			}
		})
	}
}
