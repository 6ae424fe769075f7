package blockid

import (
	"sync"
	"testing"
)

func TestGeneratorConcurrentUnique(t *testing.T) {
	gen := NewGenerator(flat(1, 77))

	const goroutines, perGoroutine = 8, 200
	var mu sync.Mutex
	seen := make(map[int64]bool)
	var wg sync.WaitGroup

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(partition int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				id, err := gen.Next(partition)
				if err != nil {
					t.Errorf("Error inesperado: %v", err)
					return
				}
				mu.Lock()
				if seen[id] {
					t.Errorf("Block id duplicado: %d", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}(g % 3)
	}
	wg.Wait()

	if gen.Issued() != goroutines*perGoroutine {
		t.Errorf("Esperaba %d secuencias consumidas, obtuvo %d", goroutines*perGoroutine, gen.Issued())
	}
}

func TestGeneratorDoesNotReuseAfterError(t *testing.T) {
	gen := NewGenerator(flat(0, 1))

	if _, err := gen.Next(-1); err == nil {
		t.Fatal("Se esperaba error por particion negativa")
	}
	id, err := gen.Next(0)
	if err != nil {
		t.Fatalf("Error inesperado: %v", err)
	}
	if seq, _, _, _ := Fields(id); seq != 1 {
		t.Errorf("La secuencia consumida por el fallo se reutilizo: seq=%d", seq)
	}
}
