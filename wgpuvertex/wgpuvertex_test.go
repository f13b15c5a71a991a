package wgpuvertex

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/alexhholmes/vertex"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		typ     vertex.ElementType
		count   int32
		want    wgpu.VertexFormat
		wantErr bool
	}{
		{typ: vertex.Float, count: 1, want: wgpu.VertexFormatFloat32},
		{typ: vertex.Float, count: 3, want: wgpu.VertexFormatFloat32x3},
		{typ: vertex.UnsignedByte, count: 4, want: wgpu.VertexFormatUint8x4},
		{typ: vertex.Byte, count: 2, want: wgpu.VertexFormatSint8x2},
		{typ: vertex.UnsignedShort, count: 2, want: wgpu.VertexFormatUint16x2},
		{typ: vertex.Short, count: 4, want: wgpu.VertexFormatSint16x4},
		{typ: vertex.UnsignedByte, count: 3, wantErr: true},
		{typ: vertex.Short, count: 1, wantErr: true},
		{typ: vertex.Float, count: 5, wantErr: true},
		{typ: vertex.Float, count: 0, wantErr: true},
	}

	for _, tt := range tests {
		got, err := Format(tt.typ, tt.count)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("Format(%v, %d) error = %v, want ErrUnsupportedFormat", tt.typ, tt.count, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Format(%v, %d) error: %v", tt.typ, tt.count, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Format(%v, %d) = %v, want %v", tt.typ, tt.count, got, tt.want)
		}
	}
}

func TestBufferLayout(t *testing.T) {
	table, err := vertex.NewTable("Vertex", []vertex.Attribute{
		{Name: "position", Size: 3, Type: vertex.Float, Offset: 0},
		{Name: "texture", Size: 2, Type: vertex.Float, Offset: 12},
		{Name: "normal", Size: 3, Type: vertex.Float, Offset: 20},
	}, 32)
	if err != nil {
		t.Fatal(err)
	}

	layout, err := BufferLayout(table, 2)
	if err != nil {
		t.Fatalf("BufferLayout() error: %v", err)
	}

	if layout.ArrayStride != 32 {
		t.Errorf("ArrayStride = %d, want 32", layout.ArrayStride)
	}
	if layout.StepMode != wgpu.VertexStepModeVertex {
		t.Errorf("StepMode = %v, want vertex", layout.StepMode)
	}

	want := []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 2},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 3},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 20, ShaderLocation: 4},
	}
	if len(layout.Attributes) != len(want) {
		t.Fatalf("got %d attributes, want %d", len(layout.Attributes), len(want))
	}
	for i := range want {
		if layout.Attributes[i] != want[i] {
			t.Errorf("Attributes[%d] = %+v, want %+v", i, layout.Attributes[i], want[i])
		}
	}
}

func TestBufferLayoutUnsupported(t *testing.T) {
	table, err := vertex.NewTable("Packed", []vertex.Attribute{
		{Name: "color", Size: 3, Type: vertex.UnsignedByte, Offset: 0},
	}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := BufferLayout(table, 0); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("BufferLayout() error = %v, want ErrUnsupportedFormat", err)
	}
}
