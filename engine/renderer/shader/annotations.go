// annotations.go defines the annotation types, argument constants, and parser for the
// showroom WGSL shader pre-processor. Annotations are single-line WGSL comments prefixed
// with @sr: that drive automatic struct injection, bind group declaration, and resource
// provider registration. The parsed results are stored as Annotation values and consumed
// by the PreProcessor and the pass setup code to wire GPU resources without manual
// low-level plumbing.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies a showroom annotation within a WGSL
// comment line. Every annotation must appear on a line beginning with "//" followed
// by this prefix.
const annotationPrefix = "@sr:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
// Each type corresponds to a distinct pre-processor action and produces different
// fields on the resulting Annotation struct.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered struct definition
	// into the shader at the annotation site. The struct source is embedded from the
	// corresponding Go GPU type's .wgsl asset file. This annotation does not produce
	// a declaration and is consumed entirely during pre-processing.
	//
	// Syntax: //@sr:include <struct_type>
	//
	// Example: //@sr:include camera
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a WGSL @group/@binding variable declaration
	// and appends an Annotation to the PreProcessor's declarations list. The declaration
	// carries the group index, binding index, and the resolved struct type, enabling the
	// pass setup code to semantically match bindings to resource providers without
	// string lookups.
	//
	// Syntax: //@sr:group <group> <binding> <address_space> <var_name> <type>
	//
	// Example: //@sr:group 0 0 storage_uniform camera camera
	AnnotationTypeBindingGroup AnnotationType = "group"

	// AnnotationTypeProvider registers a resource provider identity for a group and binding
	// without generating any WGSL output. The WGSL binding declaration remains hand-written
	// in the shader source directly below the annotation. This is used for bindings that
	// contain raw WGSL types (textures, samplers) which have no corresponding registered
	// struct in the pre-processor's struct registry.
	//
	// An optional binding role can be appended after the provider identity to declare the
	// semantic purpose of an individual binding within a multi-binding provider group.
	//
	// Syntax:
	//   //@sr:provider <group> <binding> <provider_identity>
	//   //@sr:provider <group> <binding> <provider_identity> <binding_role>
	//
	// Examples:
	//   //@sr:provider 0 0 outline mask_texture
	//   //@sr:provider 1 0 channel_hover pattern_texture
	AnnotationTypeProvider AnnotationType = "provider"
)

// Annotation represents a single parsed @sr: annotation from a WGSL shader source line.
// It carries the annotation type, its arguments, the source line number, and optional
// group/binding indices. Annotations of type AnnotationTypeBindingGroup and
// AnnotationTypeProvider are appended to the PreProcessor's declarations list for
// consumption by the pass setup code during resource wiring.
type Annotation struct {
	// Type identifies which annotation was parsed (include, group, or provider).
	Type AnnotationType

	// Args holds the annotation's arguments. The contents depend on Type:
	//   - include:  [0] = struct type key (e.g. "camera")
	//   - group:    [0] = address space, [1] = var name, [2] = WGSL type key
	//   - provider: [0] = provider identity (e.g. "outline"), [1] = binding role (optional)
	Args []AnnotationArg

	// Line is the 1-based line number in the original WGSL source where this annotation
	// was found. Used for error reporting.
	Line int

	// Group is the @group index for group and provider annotations. Nil for include annotations.
	Group *int

	// Binding is the @binding index for group and provider annotations. Nil for include annotations.
	Binding *int
}

// AnnotationArg is a typed string constant used as an argument in annotations.
// Arguments fall into three categories: struct type keys (used with include and group),
// address space identifiers (used with group), and provider identity keys (used with provider).
type AnnotationArg string

// ── Struct type arguments ──────────────────────────────────────────────────────
// These identify registered WGSL struct types. They can appear in @sr:include annotations
// (to inject the struct source) and in @sr:group annotations (as the type field, optionally
// wrapped in array<>). Each maps to a Go GPU type with an embedded .wgsl asset file.

const (
	// AnnotationArgCamera identifies the CameraUniform struct.
	// Source: engine/camera/assets/camera_uniform.wgsl
	AnnotationArgCamera AnnotationArg = "camera"

	// annotationArgVertex identifies the VertexInput struct for product meshes.
	// Source: engine/mesh/assets/vertex.wgsl
	annotationArgVertex AnnotationArg = "vertex"

	// AnnotationArgModel identifies the ModelUniform struct holding a part's model matrix.
	// Source: engine/mesh/assets/model_uniform.wgsl
	AnnotationArgModel AnnotationArg = "model"

	// AnnotationArgSurfaceParams identifies the SurfaceParams struct for product surface shading.
	// Source: engine/renderer/material/assets/surface_params.wgsl
	AnnotationArgSurfaceParams AnnotationArg = "surface_params"

	// AnnotationArgMaskParams identifies the MaskParams struct for the silhouette mask pass.
	// Source: engine/renderer/material/assets/mask_params.wgsl
	AnnotationArgMaskParams AnnotationArg = "mask_params"

	// AnnotationArgBlurParams identifies the BlurParams struct for the separable blur pass.
	// Source: engine/renderer/material/assets/blur_params.wgsl
	AnnotationArgBlurParams AnnotationArg = "blur_params"

	// AnnotationArgOutlineParams identifies the OutlineParams struct for the outline composite pass.
	// Source: engine/renderer/material/assets/outline_params.wgsl
	AnnotationArgOutlineParams AnnotationArg = "outline_params"
)

// ── Address space arguments ────────────────────────────────────────────────────
// These specify the WGSL variable address space in @sr:group annotations.
// They map to WGSL var<> declarations.

const (
	// annotationArgStorageTypeUniform maps to var<uniform> in WGSL.
	annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"

	// annotationArgStorageTypeRead maps to var<storage, read> in WGSL.
	annotationArgStorageTypeRead AnnotationArg = "storage_read"

	// annotationArgStorageTypeReadWrite maps to var<storage, read_write> in WGSL.
	annotationArgStorageTypeReadWrite AnnotationArg = "storage_read_write"
)

// ── Provider identity arguments ────────────────────────────────────────────────
// These identify which resource provider owns a bind group. Used in @sr:provider
// annotations and matched by pass setup logic to wire the correct BindGroupProvider
// for each group.

const (
	// AnnotationArgPart identifies the per-part provider (model matrix uniform).
	AnnotationArgPart AnnotationArg = "part"

	// AnnotationArgMaterial identifies the material provider (surface uniforms, textures, samplers).
	AnnotationArgMaterial AnnotationArg = "material"

	// AnnotationArgMask identifies the mask-pass provider (mask color uniform).
	AnnotationArgMask AnnotationArg = "mask"

	// AnnotationArgBlur identifies the blur-pass provider (blur uniform, source texture, sampler).
	AnnotationArgBlur AnnotationArg = "blur"

	// AnnotationArgOutline identifies the outline composite provider (mask/edge/glow textures, outline uniform).
	AnnotationArgOutline AnnotationArg = "outline"

	// AnnotationArgChannelHover identifies the hover channel's pattern texture provider.
	AnnotationArgChannelHover AnnotationArg = "channel_hover"

	// AnnotationArgChannelSelected identifies the selected channel's pattern texture provider.
	AnnotationArgChannelSelected AnnotationArg = "channel_selected"

	// AnnotationArgSource identifies a generic full-screen pass input (previous pass's color buffer).
	AnnotationArgSource AnnotationArg = "source"
)

// ── Binding role arguments ─────────────────────────────────────────────────────
// These qualify individual bindings within a provider group. They appear as the
// optional fourth argument of an @sr:provider annotation, telling the pass setup
// code which texture or sampler role each binding fulfils without relying on
// variable-name string matching.

const (
	// AnnotationArgSourceTexture identifies a full-screen pass's input color texture binding.
	AnnotationArgSourceTexture AnnotationArg = "source_texture"

	// AnnotationArgSourceSampler identifies the sampler paired with the source texture.
	AnnotationArgSourceSampler AnnotationArg = "source_sampler"

	// AnnotationArgMaskTexture identifies the silhouette mask texture binding.
	AnnotationArgMaskTexture AnnotationArg = "mask_texture"

	// AnnotationArgEdgeTexture identifies the sharp (full-resolution) blurred mask binding.
	AnnotationArgEdgeTexture AnnotationArg = "edge_texture"

	// AnnotationArgGlowTexture identifies the soft (half-resolution) blurred mask binding.
	AnnotationArgGlowTexture AnnotationArg = "glow_texture"

	// AnnotationArgPatternTexture identifies a channel's tileable pattern texture binding.
	AnnotationArgPatternTexture AnnotationArg = "pattern_texture"

	// AnnotationArgPatternSampler identifies the sampler paired with a pattern texture.
	AnnotationArgPatternSampler AnnotationArg = "pattern_sampler"
)

// validStructTypes lists all AnnotationArg values that are accepted as struct type
// arguments in @sr:include and @sr:group annotations. Each entry must have a
// corresponding registryEntry in the PreProcessor's structRegistry.
var validStructTypes = []AnnotationArg{
	AnnotationArgCamera,
	annotationArgVertex,
	AnnotationArgModel,
	AnnotationArgSurfaceParams,
	AnnotationArgMaskParams,
	AnnotationArgBlurParams,
	AnnotationArgOutlineParams,
}

// validAddressSpaces lists all AnnotationArg values that are accepted as address
// space arguments in @sr:group annotations. Each maps to a WGSL var<> declaration.
var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
	annotationArgStorageTypeReadWrite,
}

// validProviderIdentities lists all AnnotationArg values that are accepted as
// provider identity arguments in @sr:provider annotations.
var validProviderIdentities = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgPart,
	AnnotationArgMaterial,
	AnnotationArgMask,
	AnnotationArgBlur,
	AnnotationArgOutline,
	AnnotationArgChannelHover,
	AnnotationArgChannelSelected,
	AnnotationArgSource,
}

// validBindingRoles lists all AnnotationArg values that are accepted as binding
// role qualifiers in @sr:provider annotations.
var validBindingRoles = []AnnotationArg{
	AnnotationArgSourceTexture,
	AnnotationArgSourceSampler,
	AnnotationArgMaskTexture,
	AnnotationArgEdgeTexture,
	AnnotationArgGlowTexture,
	AnnotationArgPatternTexture,
	AnnotationArgPatternSampler,
}

// parseAnnotation attempts to parse a single line of WGSL source as an @sr: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix. Returns
// a populated Annotation for valid annotations, or an error describing the problem for
// malformed annotations with correct prefix but invalid syntax or unknown arguments.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @sr annotation", lineNum)
	}

	switch args[0] {
	case string(annotationTypeInclude):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @sr include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @sr include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case string(AnnotationTypeBindingGroup):
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @sr group annotation requires exactly five arguments (group number, binding number, address space, var name, struct type)", lineNum)
		}
		groupInt, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q in @sr group annotation: %v", lineNum, args[1], err)
		}
		bindingInt, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q in @sr group annotation: %v", lineNum, args[2], err)
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @sr group annotation", lineNum, args[3])
		}
		typeArg := args[5]
		if inner, ok := strings.CutPrefix(typeArg, "array<"); ok {
			inner = strings.TrimSuffix(inner, ">")
			if !slices.Contains(validStructTypes, AnnotationArg(inner)) {
				return nil, fmt.Errorf("line %d: unknown array element type %q in @sr group annotation", lineNum, inner)
			}
		} else {
			if !slices.Contains(validStructTypes, AnnotationArg(typeArg)) {
				return nil, fmt.Errorf("line %d: unknown struct type %q in @sr group annotation", lineNum, typeArg)
			}
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	case string(AnnotationTypeProvider):
		if len(args) < 4 || len(args) > 5 {
			return nil, fmt.Errorf("line %d: @sr provider annotation requires three or four arguments (group, binding, provider identity[, binding role])", lineNum)
		}
		groupInt, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q: %v", lineNum, args[1], err)
		}
		bindingInt, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q in @sr provider annotation: %v", lineNum, args[2], err)
		}
		if !slices.Contains(validProviderIdentities, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown provider identity %q in @sr provider annotation", lineNum, args[3])
		}
		providerArgs := []AnnotationArg{AnnotationArg(args[3])}
		if len(args) == 5 {
			if !slices.Contains(validBindingRoles, AnnotationArg(args[4])) {
				return nil, fmt.Errorf("line %d: unknown binding role %q in @sr provider annotation", lineNum, args[4])
			}
			providerArgs = append(providerArgs, AnnotationArg(args[4]))
		}
		return &Annotation{
			Type:    AnnotationTypeProvider,
			Args:    providerArgs,
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @sr annotation type %q", lineNum, args[0])
	}
}
