// Package shuffle deriva el shuffle id de una arista del DAG.
//
// Productor y consumidor lo calculan por separado a partir de la misma
// convencion de nombres de vertice, sin coordinarse.
package shuffle

import (
	"fmt"

	"mini-rss/internal/common"
	"mini-rss/internal/dag"
)

// DeriveVertexID mapea "Map N" -> N y "Reducer N" -> 600 + N.
func DeriveVertexID(label string) (int, error) {
	v, err := dag.ParseVertex(label)
	if err != nil {
		return 0, err
	}
	return v.ID(), nil
}

// DeriveShuffleID empaqueta en digitos decimales: dagId*1_000_000 + up*1000 + down.
// Queda legible a simple vista (1001601 = dag 1, Map 1 -> Reducer 1).
func DeriveShuffleID(dagID int, upstreamLabel, downstreamLabel string) (int, error) {
	if dagID < 0 {
		return 0, fmt.Errorf("dag id %d negativo: %w", dagID, common.ErrInvalidArgument)
	}
	upID, err := DeriveVertexID(upstreamLabel)
	if err != nil {
		return 0, fmt.Errorf("vertice upstream: %w", err)
	}
	downID, err := DeriveVertexID(downstreamLabel)
	if err != nil {
		return 0, fmt.Errorf("vertice downstream: %w", err)
	}
	return dagID*common.ShuffleIDMagic*common.ShuffleIDMagic + upID*common.ShuffleIDMagic + downID, nil
}

// ComputeShuffleID usa el dag id y los nombres de vertice del contexto de entrada.
func ComputeShuffleID(ctx common.InputContext) (int, error) {
	return DeriveShuffleID(ctx.DagIdentifier(), ctx.SourceVertexName(), ctx.TaskVertexName())
}
