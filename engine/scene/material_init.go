package scene

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/engine/renderer"
	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
	"github.com/prismatik/showroom/engine/renderer/material"
	"github.com/prismatik/showroom/engine/renderer/shader"
)

// initMaterialGPU creates a material's bind group from the surface fragment
// shader's layout and uploads its surface parameters once. Texture and sampler
// bindings in the layout are staged from the material's diffuse texture before
// the bind group is built; the surface params uniform is written after.
func initMaterialGPU(r renderer.Renderer, mat material.Material, fragShader shader.Shader) error {
	group := findShaderGroup(fragShader, "surface", 2)
	desc := fragShader.BindGroupLayoutDescriptor(group)
	bgp := bind_group_provider.NewBindGroupProvider(mat.Name() + " Material")

	uniformBinding := -1
	for _, entry := range desc.Entries {
		binding := int(entry.Binding)
		switch {
		case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			tex := mat.DiffuseTexture()
			if tex == nil {
				return fmt.Errorf("surface shader declares a texture binding but material %q has no diffuse texture", mat.Name())
			}
			pixels, width, height, err := tex.Decode()
			if err != nil {
				return fmt.Errorf("failed to decode diffuse texture for material %q: %w", mat.Name(), err)
			}
			if err := r.InitTextureView(bgp, binding, common.TextureStagingData{
				Pixels: pixels,
				Width:  width,
				Height: height,
			}); err != nil {
				return fmt.Errorf("failed to init diffuse texture view for material %q: %w", mat.Name(), err)
			}
		case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			if err := r.InitSampler(bgp, binding, common.SamplerStagingData{}); err != nil {
				return fmt.Errorf("failed to init sampler for material %q: %w", mat.Name(), err)
			}
		default:
			if uniformBinding < 0 {
				uniformBinding = binding
			}
		}
	}

	if err := r.InitBindGroup(bgp, desc, nil, nil); err != nil {
		return fmt.Errorf("failed to init bind group for material %q: %w", mat.Name(), err)
	}

	if uniformBinding >= 0 {
		params := material.GPUSurfaceParams{
			BaseColor: mat.BaseColor(),
			Surface:   [4]float32{mat.Metallic(), mat.Roughness(), 0, 0},
		}
		r.WriteBuffers([]bind_group_provider.BufferWrite{
			{
				Provider: bgp,
				Binding:  uniformBinding,
				Offset:   0,
				Data:     params.Marshal(),
			},
		})
	}

	mat.SetBindGroupProvider(bgp)
	return nil
}
