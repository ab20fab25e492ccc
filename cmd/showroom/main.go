package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/prismatik/showroom/assets"
	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/config"
	"github.com/prismatik/showroom/engine"
	"github.com/prismatik/showroom/engine/camera"
	"github.com/prismatik/showroom/engine/composer"
	"github.com/prismatik/showroom/engine/highlight"
	"github.com/prismatik/showroom/engine/mesh"
	"github.com/prismatik/showroom/engine/renderer"
	"github.com/prismatik/showroom/engine/renderer/material"
	"github.com/prismatik/showroom/engine/renderer/pipeline"
	"github.com/prismatik/showroom/engine/renderer/shader"
	"github.com/prismatik/showroom/engine/scene"
	"github.com/prismatik/showroom/engine/window"
)

// surfacePipelineKey is the render pipeline every product part material draws
// with inside the scene pass's color buffer.
const surfacePipelineKey = "surface"

// floorPartName marks the one demo part the pointer cannot hover or select.
const floorPartName = "floor"

func main() {
	configPath := flag.String("config", "", "path to a showroom YAML config (optional)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("showroom: %v", err)
	}
	if cfg.Product.Name == "" {
		cfg.Product.Name = "Roadster"
	}

	// ── Engine + Window ─────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithTickRate(60),
		engine.WithWindow(window.NewWindow(
			window.WithTitle("Showroom"),
			window.WithWidth(1600),
			window.WithHeight(900),
		)),
	)

	// ── Renderer ────────────────────────────────────────────────────────
	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		eng.Window(),
		renderer.WithPresentMode(renderer.PresentModeVSync),
	)
	r.SetClearColor(wgpu.Color{R: 0.09, G: 0.09, B: 0.11, A: 1})

	// ── Camera ──────────────────────────────────────────────────────────
	cam := camera.NewCamera(
		camera.WithFov(float32(45.0*math.Pi/180.0)),
		camera.WithAspect(float32(eng.Window().Width())/float32(eng.Window().Height())),
		camera.WithNear(0.01),
		camera.WithFar(1000),
		camera.WithController(camera.NewOrbitController(
			camera.WithRadius(8),
			camera.WithTarget(0, 0.8, 0),
			camera.WithElevation(0.35),
			camera.WithAzimuth(0.6),
			camera.WithRadiusBounds(2, 40),
			camera.WithZoomSpeed(0.5),
			camera.WithMouseSensitivity(0.004),
		)),
	)

	// ── Shaders + surface pipeline ──────────────────────────────────────
	surfaceVert := shader.NewShaderFromSource("surface_vert", shader.ShaderTypeVertex, assets.SurfaceVertSource)
	surfaceFrag := shader.NewShaderFromSource("surface_frag", shader.ShaderTypeFragment, assets.SurfaceFragSource)

	// The scene pass draws parts into an RGBA8 color target, so the surface
	// pipeline is a target pipeline with depth enabled (the pipeline default).
	if err := r.RegisterPipelines(pipeline.NewPipeline(surfacePipelineKey,
		pipeline.WithVertexShader(surfaceVert),
		pipeline.WithFragmentShader(surfaceFrag),
		pipeline.WithColorFormat(wgpu.TextureFormatRGBA8Unorm),
	)); err != nil {
		log.Fatalf("showroom: failed to register surface pipeline: %v", err)
	}

	// ── Scene + product ─────────────────────────────────────────────────
	scn := scene.NewScene(cfg.Product.Name, cam, r, surfaceVert,
		scene.WithSurfaceFragmentShader(surfaceFrag),
		scene.WithActive(true),
	)

	parts, err := buildProduct(cfg.Product)
	if err != nil {
		log.Fatalf("showroom: %v", err)
	}
	if err := scn.SetProduct(parts); err != nil {
		log.Fatalf("showroom: failed to set product: %v", err)
	}
	eng.AddScene(0, scn)

	tracker := highlight.NewTracker(scn)

	// ── Composer chain ──────────────────────────────────────────────────
	w, h := eng.Window().Width(), eng.Window().Height()
	comp := composer.NewComposer(r, w, h)
	comp.AddPass(composer.NewScenePass(r, scn, w, h))
	comp.AddPass(composer.NewColorCorrectionPass(r))

	outline := composer.NewOutlinePass(r, scn, tracker, w, h, outlineOptions(cfg.Outline))
	outline.SetOutputMode(outputMode(cfg.Outline.OutputMode))
	hover, selected, err := channelStyles(cfg.Outline)
	if err != nil {
		log.Fatalf("showroom: %v", err)
	}
	if err := outline.SetColors(hover, selected); err != nil {
		log.Printf("showroom: outline pattern not applied, using flat colors: %v", err)
	}
	comp.AddPass(outline)

	comp.AddPass(composer.NewCopyPass(r))
	eng.SetComposer(comp)

	// ── Input ───────────────────────────────────────────────────────────
	setupInput(eng, cam, scn, tracker, outline)

	fmt.Println("Showroom -", cfg.Product.Name)
	fmt.Println("  hover: highlight part   left-click: select   esc: deselect")
	fmt.Println("  WASD/middle-drag: orbit   scroll: zoom   1/2/3: outline mode   space: animation")

	log.Printf("starting showroom with %d parts", len(parts))
	eng.Run()
}

// loadConfig reads the YAML config at path, or the built-in defaults (outline
// styling only, product supplied by demoParts) when path is empty.
func loadConfig(path string) (*config.ShowroomConfig, error) {
	if path == "" {
		return config.Parse(nil)
	}
	return config.Load(path)
}

// buildProduct maps the parsed product onto scene parts. An empty part list
// falls back to the built-in demo roadster.
func buildProduct(product config.ProductConfig) ([]scene.Part, error) {
	if len(product.Parts) == 0 {
		return demoParts(), nil
	}

	parts := make([]scene.Part, 0, len(product.Parts))
	for _, pc := range product.Parts {
		msh, err := primitiveMesh(pc.Name, pc.Mesh)
		if err != nil {
			return nil, err
		}

		options := []scene.PartBuilderOption{
			scene.WithMesh(msh),
			scene.WithMaterial(partMaterial(pc.Material, pc.Name)),
		}
		if pc.Group != "" {
			options = append(options, scene.WithGroup(pc.Group))
		}
		if len(pc.Transform) == 16 {
			var m [16]float32
			copy(m[:], pc.Transform)
			options = append(options, scene.WithTransform(m))
		}
		parts = append(parts, scene.NewPart(pc.Name, options...))
	}
	return parts, nil
}

// primitiveMesh resolves a config mesh name to a unit-scale primitive. Parts
// size and place the primitive through their transform.
func primitiveMesh(partName, meshName string) (mesh.Mesh, error) {
	switch meshName {
	case "cube", "":
		return mesh.NewBoxMesh(partName, 1, 1, 1), nil
	case "sphere":
		return mesh.NewSphereMesh(partName, 0.5, 24, 16), nil
	case "cylinder":
		return mesh.NewCylinderMesh(partName, 0.5, 1, 24), nil
	case "plane":
		return mesh.NewPlaneMesh(partName, 1, 1), nil
	default:
		return nil, fmt.Errorf("part %q uses unknown mesh %q", partName, meshName)
	}
}

// partMaterial builds a surface material from config, falling back to a
// neutral gray when no color is given.
func partMaterial(mc config.MaterialConfig, partName string) material.Material {
	name := mc.Name
	if name == "" {
		name = partName
	}
	color := [4]float32{0.6, 0.6, 0.62, 1}
	if mc.Color != "" {
		parsed, err := config.ParseHexColor(mc.Color)
		if err != nil {
			log.Printf("showroom: material %q: %v, using gray", name, err)
		} else {
			color = parsed
		}
	}
	return material.NewMaterial(
		material.WithName(name),
		material.WithBaseColor(color),
		material.WithMetallic(mc.Metallic),
		material.WithRoughness(mc.Roughness),
		material.WithPipelineKey(surfacePipelineKey),
	)
}

// demoParts assembles the built-in roadster: a body and cabin, four grouped
// wheels, two grouped mirrors, and a non-selectable floor.
func demoParts() []scene.Part {
	paint := material.NewMaterial(
		material.WithName("paint"),
		material.WithBaseColor([4]float32{0.72, 0.08, 0.1, 1}),
		material.WithMetallic(0.8),
		material.WithRoughness(0.3),
		material.WithPipelineKey(surfacePipelineKey),
	)
	rubber := material.NewMaterial(
		material.WithName("rubber"),
		material.WithBaseColor([4]float32{0.08, 0.08, 0.08, 1}),
		material.WithRoughness(0.9),
		material.WithPipelineKey(surfacePipelineKey),
	)
	chrome := material.NewMaterial(
		material.WithName("chrome"),
		material.WithBaseColor([4]float32{0.85, 0.85, 0.9, 1}),
		material.WithMetallic(1),
		material.WithRoughness(0.1),
		material.WithPipelineKey(surfacePipelineKey),
	)
	concrete := material.NewMaterial(
		material.WithName("concrete"),
		material.WithBaseColor([4]float32{0.35, 0.35, 0.36, 1}),
		material.WithRoughness(1),
		material.WithPipelineKey(surfacePipelineKey),
	)

	parts := []scene.Part{
		scene.NewPart("body",
			scene.WithMesh(mesh.NewBoxMesh("body", 3, 0.8, 1.4)),
			scene.WithMaterial(paint),
			scene.WithTransform(placed(0, 0.85, 0, 0, 0, 0)),
		),
		scene.NewPart("cabin",
			scene.WithMesh(mesh.NewBoxMesh("cabin", 1.4, 0.6, 1.2)),
			scene.WithMaterial(paint),
			scene.WithTransform(placed(-0.2, 1.55, 0, 0, 0, 0)),
		),
		scene.NewPart(floorPartName,
			scene.WithMesh(mesh.NewPlaneMesh(floorPartName, 14, 14)),
			scene.WithMaterial(concrete),
		),
	}

	wheelMesh := mesh.NewCylinderMesh("wheel", 0.45, 0.3, 24)
	for _, w := range []struct {
		name string
		x, z float32
	}{
		{"wheel-fl", 1.0, 0.75},
		{"wheel-fr", 1.0, -0.75},
		{"wheel-rl", -1.0, 0.75},
		{"wheel-rr", -1.0, -0.75},
	} {
		parts = append(parts, scene.NewPart(w.name,
			scene.WithMesh(wheelMesh),
			scene.WithMaterial(rubber),
			scene.WithGroup("wheels"),
			// cylinder axis y rotated onto the z axle
			scene.WithTransform(placed(float64(w.x), 0.45, float64(w.z), math.Pi/2, 0, 0)),
		))
	}

	mirrorMesh := mesh.NewSphereMesh("mirror", 0.12, 16, 12)
	for _, m := range []struct {
		name string
		z    float32
	}{
		{"mirror-l", 0.75},
		{"mirror-r", -0.75},
	} {
		parts = append(parts, scene.NewPart(m.name,
			scene.WithMesh(mirrorMesh),
			scene.WithMaterial(chrome),
			scene.WithGroup("mirrors"),
			scene.WithTransform(placed(0.45, 1.5, float64(m.z), 0, 0, 0)),
		))
	}

	return parts
}

// placed builds a column-major model matrix from a position and Euler rotation
// at unit scale.
func placed(x, y, z, rx, ry, rz float64) [16]float32 {
	var m [16]float32
	common.BuildModelMatrix(m[:], float32(x), float32(y), float32(z), float32(rx), float32(ry), float32(rz), 1, 1, 1)
	return m
}

// outlineOptions maps the YAML outline section onto the outline pass options.
func outlineOptions(o config.OutlineConfig) composer.OutlineOptions {
	return composer.OutlineOptions{
		EdgeThickness:     o.EdgeThickness,
		EdgeGlow:          o.EdgeGlow,
		Downsample:        o.Downsample,
		StartU:            o.StartU,
		TileCount:         o.TileCount,
		Animate:           o.AnimateOutline,
		AnimationInterval: time.Duration(o.AnimationIntervalMs) * time.Millisecond,
	}
}

// channelStyles resolves the configured hover and selected channel appearance.
func channelStyles(o config.OutlineConfig) (hover, selected composer.ChannelStyle, err error) {
	hover, err = channelStyle(o.Hover)
	if err != nil {
		return hover, selected, fmt.Errorf("hover channel: %w", err)
	}
	selected, err = channelStyle(o.Selected)
	if err != nil {
		return hover, selected, fmt.Errorf("selected channel: %w", err)
	}
	return hover, selected, nil
}

func channelStyle(c config.ChannelConfig) (composer.ChannelStyle, error) {
	color, err := config.ParseHexColor(c.Color)
	if err != nil {
		return composer.ChannelStyle{}, err
	}
	style := composer.ChannelStyle{Color: color}
	if c.Pattern != "" {
		style.Pattern = &common.ImportedTexture{Path: c.Pattern}
	}
	return style, nil
}

// outputMode maps the YAML mode string onto the composite variant.
func outputMode(mode string) composer.OutputMode {
	switch mode {
	case "mask":
		return composer.OutputMaskOnly
	case "blur":
		return composer.OutputBlurOnly
	default:
		return composer.OutputNormal
	}
}

// setupInput wires the pointer to the highlight tracker, WASD and the middle
// mouse button to the orbit controller, and the number keys to the outline
// debug modes. Hover picking pauses while orbiting.
func setupInput(eng engine.Engine, cam camera.Camera, scn scene.Scene, tracker highlight.Tracker, outline composer.OutlinePass) {
	win := eng.Window()

	var orbiting bool
	var lastX, lastY int32

	win.SetMiddleMouseDownCallback(func(x, y int32) {
		orbiting = true
		lastX, lastY = x, y
	})

	win.SetMiddleMouseUpCallback(func(_, _ int32) {
		orbiting = false
	})

	win.SetMouseMoveCallback(func(x, y int32) {
		if orbiting {
			dx := float32(x - lastX)
			dy := float32(y - lastY)
			ctrl := cam.Controller()
			ctrl.SetAzimuth(ctrl.Azimuth() + dx*ctrl.MouseSensitivity())
			ctrl.SetElevation(ctrl.Elevation() - dy*ctrl.MouseSensitivity())
			lastX, lastY = x, y
			return
		}

		picked := pickPart(scn.Parts(), cam, x, y, win.Width(), win.Height())
		prev := tracker.Hovered()
		if picked == prev {
			return
		}
		if prev != nil {
			tracker.OnPointerLeave(prev)
		}
		if picked != nil {
			tracker.OnPointerEnter(picked)
		}
	})

	win.SetLeftMouseDownCallback(func(x, y int32) {
		picked := pickPart(scn.Parts(), cam, x, y, win.Width(), win.Height())
		if picked == nil || picked == tracker.Selected() {
			tracker.OnDeselect()
			return
		}
		tracker.OnSelect(picked)
	})

	win.SetCursorEnterCallback(func(entered bool) {
		if entered {
			return
		}
		if prev := tracker.Hovered(); prev != nil {
			tracker.OnPointerLeave(prev)
		}
	})

	win.SetScrollCallback(func(delta float32) {
		cam.Controller().Zoom(delta)
	})

	keyState := make(map[uint32]bool)

	win.SetKeyDownCallback(func(keyCode uint32) {
		keyState[keyCode] = true
		switch keyCode {
		case common.Key1:
			outline.SetOutputMode(composer.OutputNormal)
		case common.Key2:
			outline.SetOutputMode(composer.OutputMaskOnly)
		case common.Key3:
			outline.SetOutputMode(composer.OutputBlurOnly)
		case common.KeySpace:
			opts := outline.Options()
			opts.Animate = !opts.Animate
			outline.SetOptions(opts)
		case common.KeyEsc:
			tracker.OnDeselect()
		}
	})

	win.SetKeyUpCallback(func(keyCode uint32) {
		keyState[keyCode] = false
	})

	eng.SetTickCallback(func(_ float32) {
		ctrl := cam.Controller()
		if keyState[common.KeyA] {
			ctrl.OrbitLeft()
		}
		if keyState[common.KeyD] {
			ctrl.OrbitRight()
		}
		if keyState[common.KeyW] {
			ctrl.OrbitUp()
		}
		if keyState[common.KeyS] {
			ctrl.OrbitDown()
		}
	})
}
