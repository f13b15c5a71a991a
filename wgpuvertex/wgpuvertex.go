// Package wgpuvertex turns vertex descriptors into WebGPU vertex buffer layouts.
package wgpuvertex

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/alexhholmes/vertex"
)

var ErrUnsupportedFormat = errors.New("no webgpu vertex format")

type formatKey struct {
	typ   vertex.ElementType
	count int32
}

// WebGPU has no 3-component 8 or 16 bit formats and no single-component
// ones for those sizes
var formatMap = map[formatKey]wgpu.VertexFormat{
	{vertex.Float, 1}:         wgpu.VertexFormatFloat32,
	{vertex.Float, 2}:         wgpu.VertexFormatFloat32x2,
	{vertex.Float, 3}:         wgpu.VertexFormatFloat32x3,
	{vertex.Float, 4}:         wgpu.VertexFormatFloat32x4,
	{vertex.UnsignedByte, 2}:  wgpu.VertexFormatUint8x2,
	{vertex.UnsignedByte, 4}:  wgpu.VertexFormatUint8x4,
	{vertex.Byte, 2}:          wgpu.VertexFormatSint8x2,
	{vertex.Byte, 4}:          wgpu.VertexFormatSint8x4,
	{vertex.UnsignedShort, 2}: wgpu.VertexFormatUint16x2,
	{vertex.UnsignedShort, 4}: wgpu.VertexFormatUint16x4,
	{vertex.Short, 2}:         wgpu.VertexFormatSint16x2,
	{vertex.Short, 4}:         wgpu.VertexFormatSint16x4,
}

// Format returns the vertex format of count components of type t
func Format(t vertex.ElementType, count int32) (wgpu.VertexFormat, error) {
	format, ok := formatMap[formatKey{t, count}]
	if !ok {
		return 0, fmt.Errorf("%w for %d x %v", ErrUnsupportedFormat, count, t)
	}
	return format, nil
}

// BufferLayout builds the per-vertex buffer layout of l. Attribute i is
// bound to shader location firstLocation+i.
func BufferLayout(l vertex.Layout, firstLocation uint32) (wgpu.VertexBufferLayout, error) {
	attrs := make([]wgpu.VertexAttribute, 0, l.ElementCount())

	for i := 0; i < l.ElementCount(); i++ {
		format, err := Format(l.ElementType(i), l.ElementSize(i))
		if err != nil {
			return wgpu.VertexBufferLayout{}, fmt.Errorf("attribute %d: %w", i, err)
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         format,
			Offset:         uint64(l.ElementPointer(i)),
			ShaderLocation: firstLocation + uint32(i),
		})
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(l.ElementStride()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, nil
}
