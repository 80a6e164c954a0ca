// SPDX-License-Identifier: MIT
package digraph

import "errors"

var (
	// ErrVertexOutOfRange is returned when an edge references a vertex
	// index outside [0, NumVertices()).
	ErrVertexOutOfRange = errors.New("digraph: vertex index out of range")

	// ErrDepthOutOfRange is returned by (*Stack).AtDepth for a depth that
	// was never recorded (negative, or beyond the current history).
	ErrDepthOutOfRange = errors.New("digraph: depth out of range")
)
