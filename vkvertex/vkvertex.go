// Package vkvertex turns vertex descriptors into Vulkan vertex input state.
package vkvertex

import (
	"errors"
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/alexhholmes/vertex"
)

var ErrUnsupportedFormat = errors.New("no vulkan format")

var formats = map[vertex.ElementType][4]vk.Format{
	vertex.UnsignedByte:  {vk.FormatR8Uint, vk.FormatR8g8Uint, vk.FormatR8g8b8Uint, vk.FormatR8g8b8a8Uint},
	vertex.Byte:          {vk.FormatR8Sint, vk.FormatR8g8Sint, vk.FormatR8g8b8Sint, vk.FormatR8g8b8a8Sint},
	vertex.UnsignedShort: {vk.FormatR16Uint, vk.FormatR16g16Uint, vk.FormatR16g16b16Uint, vk.FormatR16g16b16a16Uint},
	vertex.Short:         {vk.FormatR16Sint, vk.FormatR16g16Sint, vk.FormatR16g16b16Sint, vk.FormatR16g16b16a16Sint},
	vertex.Float:         {vk.FormatR32Sfloat, vk.FormatR32g32Sfloat, vk.FormatR32g32b32Sfloat, vk.FormatR32g32b32a32Sfloat},
}

// Format returns the format of an attribute with count components of type t.
// Vulkan attributes hold 1 to 4 components.
func Format(t vertex.ElementType, count int32) (vk.Format, error) {
	row, ok := formats[t]
	if !ok || count < 1 || count > 4 {
		return vk.FormatUndefined, fmt.Errorf("%w for %d x %v", ErrUnsupportedFormat, count, t)
	}
	return row[count-1], nil
}

// BindingDescription describes one per-vertex buffer binding of d
func BindingDescription(d vertex.Descriptor, binding uint32) vk.VertexInputBindingDescription {
	return vk.VertexInputBindingDescription{
		Binding:   binding,
		Stride:    uint32(d.ElementStride()),
		InputRate: vk.VertexInputRateVertex,
	}
}

// AttributeDescriptions describes every attribute of l. Attribute i is
// bound to shader location i.
func AttributeDescriptions(l vertex.Layout, binding uint32) ([]vk.VertexInputAttributeDescription, error) {
	descs := make([]vk.VertexInputAttributeDescription, l.ElementCount())
	for i := range descs {
		format, err := Format(l.ElementType(i), l.ElementSize(i))
		if err != nil {
			return nil, fmt.Errorf("attribute %d: %w", i, err)
		}
		descs[i] = vk.VertexInputAttributeDescription{
			Location: uint32(i),
			Binding:  binding,
			Format:   format,
			Offset:   uint32(l.ElementPointer(i)),
		}
	}
	return descs, nil
}

// InputState bundles the binding and attribute descriptions of l into the
// pipeline vertex input create info
func InputState(l vertex.Layout, binding uint32) (vk.PipelineVertexInputStateCreateInfo, error) {
	attrs, err := AttributeDescriptions(l, binding)
	if err != nil {
		return vk.PipelineVertexInputStateCreateInfo{}, err
	}
	return vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   1,
		PVertexBindingDescriptions:      []vk.VertexInputBindingDescription{BindingDescription(l, binding)},
		VertexAttributeDescriptionCount: uint32(len(attrs)),
		PVertexAttributeDescriptions:    attrs,
	}, nil
}
