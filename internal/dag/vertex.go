package dag

import (
	"fmt"
	"strconv"
	"strings"

	"mini-rss/internal/common"
)

// VertexKind es el tipo de vertice en la convencion de nombres de Tez ("Map 1", "Reducer 2").
type VertexKind int

const (
	KindMap VertexKind = iota
	KindReducer
)

func (k VertexKind) String() string {
	switch k {
	case KindMap:
		return common.VertexKindMap
	case KindReducer:
		return common.VertexKindReducer
	default:
		return fmt.Sprintf("VertexKind(%d)", int(k))
	}
}

// Vertex es la etiqueta ya parseada: Map(ordinal) o Reducer(ordinal).
type Vertex struct {
	Kind    VertexKind
	Ordinal int
}

// ID mapea el vertice a su entero: Map -> ordinal, Reducer -> 600 + ordinal.
func (v Vertex) ID() int {
	if v.Kind == KindReducer {
		return common.VertexIDMappingMagic + v.Ordinal
	}
	return v.Ordinal
}

func (v Vertex) String() string {
	return fmt.Sprintf("%s %d", v.Kind, v.Ordinal)
}

// ParseVertex parsea "<Kind> <ordinal>".
func ParseVertex(label string) (Vertex, error) {
	fields := strings.Fields(label)
	if len(fields) != 2 {
		return Vertex{}, fmt.Errorf("nombre de vertice %q mal formado: %w", label, common.ErrInvalidArgument)
	}
	ordinal, err := strconv.Atoi(fields[1])
	if err != nil || ordinal < 0 {
		return Vertex{}, fmt.Errorf("ordinal de vertice %q no numerico: %w", label, common.ErrInvalidArgument)
	}
	// El tope deja libre el rango de los Reducer (600+).
	if ordinal > common.VertexIDMappingMaxID {
		return Vertex{}, fmt.Errorf("ordinal demasiado grande para el vertice %q (max %d): %w",
			label, common.VertexIDMappingMaxID, common.ErrInvalidArgument)
	}

	switch fields[0] {
	case common.VertexKindMap:
		return Vertex{Kind: KindMap, Ordinal: ordinal}, nil
	case common.VertexKindReducer:
		return Vertex{Kind: KindReducer, Ordinal: ordinal}, nil
	default:
		return Vertex{}, fmt.Errorf("tipo de vertice desconocido en %q: %w", label, common.ErrInvalidArgument)
	}
}
