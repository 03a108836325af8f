// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sprite

import (
	"encoding/binary"
	"math"
)

// VertexStride is the byte stride of a serialized Vertex:
//
//	position (vec3<f32>) = 12 bytes  (location 0)
//	uv       (vec2<f32>) =  8 bytes  (location 1)
const VertexStride = 20

// QuadIndexCount is the number of indices in a sprite quad.
const QuadIndexCount = 6

// Vertex is a single quad corner.
type Vertex struct {
	Position [3]float32
	UV       [2]float32
}

// BuildQuad returns the four corners and six indices of a width×height
// quad. The quad's top-left corner sits at the origin and it extends
// toward +X and -Y, so texel row 0 lands at the top:
//
//	3 (0,0)   uv(0,0) ── 2 (w,0)  uv(1,0)
//	│                            │
//	0 (0,-h)  uv(0,1) ── 1 (w,-h) uv(1,1)
//
// Indices form two counter-clockwise triangles: 0,1,2 and 0,2,3.
// Zero or negative sizes are not rejected.
func BuildQuad(width, height float32) ([4]Vertex, [QuadIndexCount]uint16) {
	vertices := [4]Vertex{
		{Position: [3]float32{0, -height, 0}, UV: [2]float32{0, 1}},
		{Position: [3]float32{width, -height, 0}, UV: [2]float32{1, 1}},
		{Position: [3]float32{width, 0, 0}, UV: [2]float32{1, 0}},
		{Position: [3]float32{0, 0, 0}, UV: [2]float32{0, 0}},
	}
	indices := [QuadIndexCount]uint16{0, 1, 2, 0, 2, 3}
	return vertices, indices
}

// VertexBytes serializes vertices in little-endian order.
func VertexBytes(vertices []Vertex) []byte {
	buf := make([]byte, 0, len(vertices)*VertexStride)
	for _, v := range vertices {
		for _, f := range v.Position {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
		for _, f := range v.UV {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	return buf
}

// IndexBytes serializes u16 indices in little-endian order, zero-padded
// to a multiple of 4 bytes as buffer writes require.
func IndexBytes(indices []uint16) []byte {
	n := len(indices) * 2
	buf := make([]byte, (n+3)&^3)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}
