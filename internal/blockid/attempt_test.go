package blockid

import (
	"errors"
	"testing"

	"mini-rss/internal/common"
	"mini-rss/internal/dag"
)

func TestToFlatID(t *testing.T) {
	tests := []struct {
		name          string
		taskID        int64
		globalAttempt int64
		appAttempt    int
		expected      int64
		expectErr     error
	}{
		{name: "Primer intento", taskID: 3, globalAttempt: 0, appAttempt: 1, expected: 3},
		{name: "Reintento", taskID: 3, globalAttempt: 2, appAttempt: 1, expected: flat(2, 3)},
		{name: "Segundo app attempt", taskID: 10, globalAttempt: 1001, appAttempt: 2, expected: flat(1, 10)},
		{name: "Intento local 63", taskID: 0, globalAttempt: 63, appAttempt: 1, expected: flat(63, 0)},
		{name: "Intento local 64", taskID: 0, globalAttempt: 64, appAttempt: 1, expectErr: common.ErrRange},
		{name: "appAttempt cero", taskID: 1, globalAttempt: 0, appAttempt: 0, expectErr: common.ErrInvalidArgument},
		{name: "Intento local negativo", taskID: 1, globalAttempt: 999, appAttempt: 2, expectErr: common.ErrRange},
		{name: "Task id desbordado", taskID: common.MaxTaskAttemptID + 1, globalAttempt: 0, appAttempt: 1, expectErr: common.ErrRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToFlatID(tt.taskID, tt.globalAttempt, tt.appAttempt)
			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Fatalf("Se esperaba %v, obtenido: %v", tt.expectErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Error inesperado: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Esperado %d, Obtenido %d", tt.expected, got)
			}
		})
	}
}

func TestFromTezAttemptFeedsEncode(t *testing.T) {
	id, err := dag.ParseTaskAttemptID("attempt_1685094627632_0157_1_01_000012_1002")
	if err != nil {
		t.Fatalf("Error inesperado: %v", err)
	}
	flatID, err := FromTezAttempt(id, 2)
	if err != nil {
		t.Fatalf("Error inesperado: %v", err)
	}
	blockID, err := Encode(9, flatID, 0)
	if err != nil {
		t.Fatalf("Error inesperado: %v", err)
	}
	if TaskAttemptID(blockID) != flat(2, 12) {
		t.Errorf("Decode incorrecto: %d", TaskAttemptID(blockID))
	}
}
