package scene

import (
	"fmt"
	"strings"
	"sync"

	"github.com/chewxy/math32"
	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/engine/camera"
	"github.com/prismatik/showroom/engine/mesh"
	"github.com/prismatik/showroom/engine/renderer"
	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
	"github.com/prismatik/showroom/engine/renderer/shader"
)

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam camera.Camera
	r   renderer.Renderer

	cullingDisabled bool // when true, parts are drawn without frustum-sphere tests

	// Shaders used to discover bind group layouts during part GPU init.
	vertexShader          shader.Shader
	surfaceFragmentShader shader.Shader

	// Bind group indices discovered from the vertex shader's declarations.
	cameraGroup int
	modelGroup  int

	registry map[uint64]Part
	order    []uint64 // insertion order, keeps draw order stable across frames
	nextID   uint64

	// Pre-allocated slices reused each frame to avoid per-frame allocations.
	writePool          []bind_group_provider.BufferWrite
	drawBindGroupsPool []bind_group_provider.BindGroupProvider

	pendingParts []Part // parts supplied via WithParts, registered at construction
}

// Scene defines the interface for the product scene: a registry of selectable
// parts sharing one camera and renderer. The scene owns GPU initialization for
// parts (mesh buffers, model uniforms, material bind groups) and issues the
// per-part draw calls that render passes consume.
type Scene interface {
	// Name returns the name of the scene.
	//
	// Returns:
	//   - string: the name of the scene
	Name() string

	// SetName sets the name of the scene.
	//
	// Parameters:
	//   - name: the new name of the scene
	SetName(name string)

	// Active returns whether the scene is currently active.
	//
	// Returns:
	//   - bool: true if the scene is active
	Active() bool

	// SetActive sets the active state of the scene.
	//
	// Parameters:
	//   - active: the new active state
	SetActive(active bool)

	// Camera returns the camera attached to the scene.
	//
	// Returns:
	//   - camera.Camera: the attached camera
	Camera() camera.Camera

	// SetCamera attaches a camera to the scene.
	//
	// Parameters:
	//   - cam: the camera to attach
	SetCamera(cam camera.Camera)

	// Renderer returns the renderer attached to the scene.
	//
	// Returns:
	//   - renderer.Renderer: the attached renderer
	Renderer() renderer.Renderer

	// SetRenderer attaches a renderer to the scene.
	//
	// Parameters:
	//   - r: the renderer to attach
	SetRenderer(r renderer.Renderer)

	// CullingDisabled returns whether frustum culling is disabled for this scene.
	//
	// Returns:
	//   - bool: true if culling is disabled
	CullingDisabled() bool

	// SetCullingDisabled enables or disables frustum culling for this scene.
	// When disabled, DrawParts issues draw calls for every layer-matching part
	// regardless of visibility.
	//
	// Parameters:
	//   - disabled: true to disable culling
	SetCullingDisabled(disabled bool)

	// AddPart registers a part with the scene and initializes its GPU
	// resources: mesh vertex/index buffers, the model uniform bind group, and
	// the material bind group when the material has none yet.
	//
	// Parameters:
	//   - p: the part to register
	//
	// Returns:
	//   - uint64: the assigned part ID
	//   - error: an error if GPU resource creation fails
	AddPart(p Part) (uint64, error)

	// Part retrieves a registered part by ID.
	//
	// Parameters:
	//   - id: the part ID
	//
	// Returns:
	//   - Part: the part, or nil if not registered
	Part(id uint64) Part

	// Parts returns all registered parts in draw order.
	//
	// Returns:
	//   - []Part: a copy of the registered parts
	Parts() []Part

	// RemovePart unregisters a part from the scene. GPU resources held by the
	// part are not released; the caller owns their lifetime.
	//
	// Parameters:
	//   - id: the ID of the part to remove
	RemovePart(id uint64)

	// SetProduct atomically replaces the whole part registry with a new set of
	// parts. All new parts have their GPU resources initialized before the old
	// registry is dropped, so a mid-swap failure leaves the previous product
	// intact and drawable.
	//
	// Parameters:
	//   - parts: the parts making up the new product
	//
	// Returns:
	//   - error: an error if GPU initialization of any new part fails
	SetProduct(parts []Part) error

	// GroupParts returns the registered parts belonging to the given highlight
	// group, in draw order.
	//
	// Parameters:
	//   - group: the highlight group id
	//
	// Returns:
	//   - []Part: the member parts, empty if the group has no members
	GroupParts(group string) []Part

	// SetGroupLayer toggles a layer bit on every part in the given highlight
	// group. The toggle is atomic over the group: no draw call interleaves
	// with a half-applied group toggle.
	//
	// Parameters:
	//   - group: the highlight group id
	//   - index: the layer index to toggle
	//   - enabled: true to enable the layer, false to disable
	SetGroupLayer(group string, index int, enabled bool)

	// SetPartLayer toggles a layer bit on a single part by ID.
	//
	// Parameters:
	//   - id: the part ID
	//   - index: the layer index to toggle
	//   - enabled: true to enable the layer, false to disable
	SetPartLayer(id uint64, index int, enabled bool)

	// Prepare updates camera matrices and uploads the camera and per-part
	// model uniforms to the GPU. Call once per frame before any DrawParts.
	Prepare()

	// DrawParts issues one draw call per registered part whose layers
	// intersect the given mask. With an empty pipelineKey each part draws with
	// its own material's pipeline and bind group; with a non-empty key every
	// part draws with that pipeline and the supplied override bind groups in
	// place of the material's. Bind group order is camera, model, then
	// material or overrides. Must be called within an active target pass.
	//
	// Parameters:
	//   - pipelineKey: the override pipeline key, or "" for per-part material pipelines
	//   - layerMask: the layer bitset parts must intersect to be drawn
	//   - overrides: bind group providers bound after camera and model when pipelineKey is set
	//
	// Returns:
	//   - error: the first draw error encountered, remaining parts still draw
	DrawParts(pipelineKey string, layerMask common.Layers, overrides ...bind_group_provider.BindGroupProvider) error
}

var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera, renderer, and a vertex
// shader used to discover bind group layouts. All three are required and
// NewScene panics if any of them is nil. The vertex shader's declarations are
// scanned for a group containing "camera" (used to initialize the camera's
// BindGroupProvider on the GPU) and a group containing "model" (used to
// initialize each part's model uniform provider).
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - vertexShader: the product vertex shader declaring the camera and model uniform groups (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, vertexShader shader.Shader, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}
	if vertexShader == nil {
		panic("scene: NewScene requires a non-nil vertex shader for bind group layout discovery")
	}

	s := &scene{
		mu:                 &sync.RWMutex{},
		name:               name,
		active:             false,
		cam:                cam,
		r:                  r,
		vertexShader:       vertexShader,
		registry:           make(map[uint64]Part),
		nextID:             1,
		drawBindGroupsPool: make([]bind_group_provider.BindGroupProvider, 0, 3),
	}

	for _, option := range options {
		option(s)
	}

	s.cameraGroup = findShaderGroup(vertexShader, "camera", 0)
	s.modelGroup = findShaderGroup(vertexShader, "model", 1)

	// Initialize the camera's bind group on the GPU using the layout from the vertex shader.
	if bgp := cam.BindGroupProvider(); bgp != nil {
		if err := r.InitBindGroup(bgp, vertexShader.BindGroupLayoutDescriptor(s.cameraGroup), nil, nil); err != nil {
			panic(fmt.Sprintf("scene: failed to init camera bind group: %v", err))
		}
	}

	for _, p := range s.pendingParts {
		if _, err := s.AddPart(p); err != nil {
			panic(fmt.Sprintf("scene: failed to init part %q: %v", p.Name(), err))
		}
	}
	s.pendingParts = nil

	return s
}

// findShaderGroup scans a shader's bind group variable names for a group whose
// variable name contains the given substring, returning fallback when no group
// matches.
func findShaderGroup(s shader.Shader, substr string, fallback int) int {
	for g, bindings := range s.BindGroupVarNames() {
		for _, name := range bindings {
			if strings.Contains(strings.ToLower(name), substr) {
				return g
			}
		}
	}
	return fallback
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
}

func (s *scene) CullingDisabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cullingDisabled
}

func (s *scene) SetCullingDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cullingDisabled = disabled
}

func (s *scene) AddPart(p Part) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addPartLocked(p)
}

// addPartLocked registers a part and initializes its GPU resources.
// Caller must hold s.mu.
func (s *scene) addPartLocked(p Part) (uint64, error) {
	if p == nil {
		return 0, fmt.Errorf("scene: cannot add nil part")
	}
	if err := s.initPartGPU(p); err != nil {
		return 0, err
	}

	id := s.nextID
	s.nextID++
	p.setID(id)
	s.registry[id] = p
	s.order = append(s.order, id)
	return id, nil
}

// initPartGPU creates the GPU resources a part needs to draw: mesh buffers on
// the mesh provider, a model uniform bind group, and the material bind group
// when the material has none yet. Already-initialized resources are left
// untouched so parts can be shared across product swaps.
func (s *scene) initPartGPU(p Part) error {
	msh := p.Mesh()
	if msh == nil {
		return fmt.Errorf("scene: part %q has no mesh", p.Name())
	}

	meshProvider := msh.MeshProvider()
	if meshProvider == nil {
		return fmt.Errorf("scene: part %q mesh has no mesh provider", p.Name())
	}
	if meshProvider.VertexBuffer() == nil {
		if err := s.r.InitMeshBuffers(meshProvider, msh.VertexData(), msh.IndexData(), msh.IndexCount()); err != nil {
			return fmt.Errorf("scene: failed to init mesh buffers for part %q: %w", p.Name(), err)
		}
	}

	if p.ModelProvider() == nil {
		bgp := bind_group_provider.NewBindGroupProvider(p.Name() + " Model")
		if err := s.r.InitBindGroup(bgp, s.vertexShader.BindGroupLayoutDescriptor(s.modelGroup), nil, nil); err != nil {
			return fmt.Errorf("scene: failed to init model bind group for part %q: %w", p.Name(), err)
		}
		p.SetModelProvider(bgp)
	}

	if mat := p.Material(); mat != nil && mat.BindGroupProvider() == nil && s.surfaceFragmentShader != nil {
		if err := initMaterialGPU(s.r, mat, s.surfaceFragmentShader); err != nil {
			return fmt.Errorf("scene: failed to init material %q for part %q: %w", mat.Name(), p.Name(), err)
		}
	}

	return nil
}

func (s *scene) Part(id uint64) Part {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Parts() []Part {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Part, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.registry[id])
	}
	return out
}

func (s *scene) RemovePart(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.registry[id]; !exists {
		return
	}
	delete(s.registry, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *scene) SetProduct(parts []Part) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Init every new part before touching the registry so a failure keeps the
	// previous product drawable.
	for _, p := range parts {
		if p == nil {
			return fmt.Errorf("scene: cannot set product containing a nil part")
		}
		if err := s.initPartGPU(p); err != nil {
			return err
		}
	}

	s.registry = make(map[uint64]Part, len(parts))
	s.order = s.order[:0]
	for _, p := range parts {
		id := s.nextID
		s.nextID++
		p.setID(id)
		s.registry[id] = p
		s.order = append(s.order, id)
	}
	return nil
}

func (s *scene) GroupParts(group string) []Part {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Part
	for _, id := range s.order {
		if p := s.registry[id]; p.Group() == group {
			out = append(out, p)
		}
	}
	return out
}

func (s *scene) SetGroupLayer(group string, index int, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		p := s.registry[id]
		if p.Group() != group {
			continue
		}
		if enabled {
			p.EnableLayer(index)
		} else {
			p.DisableLayer(index)
		}
	}
}

func (s *scene) SetPartLayer(id uint64, index int, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, exists := s.registry[id]
	if !exists {
		return
	}
	if enabled {
		p.EnableLayer(index)
	} else {
		p.DisableLayer(index)
	}
}

func (s *scene) Prepare() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		return
	}

	s.writePool = s.writePool[:0]

	if s.cam != nil {
		s.cam.Update()
		if camBGP := s.cam.BindGroupProvider(); camBGP != nil {
			camUniform := camera.GPUCameraUniform{ViewProj: s.cam.ViewProjectionMatrix()}
			if ctrl := s.cam.Controller(); ctrl != nil {
				camUniform.CameraPosition[0], camUniform.CameraPosition[1], camUniform.CameraPosition[2] = ctrl.Position()
			}
			s.writePool = append(s.writePool, bind_group_provider.BufferWrite{
				Provider: camBGP,
				Binding:  0,
				Offset:   0,
				Data:     camUniform.Marshal(),
			})
		}
	}

	for _, id := range s.order {
		p := s.registry[id]
		bgp := p.ModelProvider()
		if bgp == nil {
			continue
		}
		modelUniform := mesh.GPUModelUniform{Model: p.Transform()}
		s.writePool = append(s.writePool, bind_group_provider.BufferWrite{
			Provider: bgp,
			Binding:  0,
			Offset:   0,
			Data:     modelUniform.Marshal(),
		})
	}

	if len(s.writePool) > 0 {
		s.r.WriteBuffers(s.writePool)
	}
}

func (s *scene) DrawParts(pipelineKey string, layerMask common.Layers, overrides ...bind_group_provider.BindGroupProvider) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.r == nil || len(s.order) == 0 {
		return nil
	}

	var camBGP bind_group_provider.BindGroupProvider
	var frustum common.Frustum
	hasFrustum := false
	if s.cam != nil {
		camBGP = s.cam.BindGroupProvider()
		if !s.cullingDisabled {
			vpMat := s.cam.ViewProjectionMatrix()
			frustum = common.ExtractFrustumFromMatrix(vpMat[:])
			hasFrustum = true
		}
	}

	var firstErr error
	for _, id := range s.order {
		p := s.registry[id]
		if !p.Layers().Intersects(layerMask) {
			continue
		}

		msh := p.Mesh()
		if msh == nil {
			continue
		}
		meshProvider := msh.MeshProvider()
		modelBGP := p.ModelProvider()
		if meshProvider == nil || modelBGP == nil {
			continue
		}

		if hasFrustum && !sphereInFrustum(&frustum, p.Transform(), msh.BoundingRadius()) {
			continue
		}

		key := pipelineKey
		s.drawBindGroupsPool = s.drawBindGroupsPool[:0]
		if camBGP != nil {
			s.drawBindGroupsPool = append(s.drawBindGroupsPool, camBGP)
		}
		s.drawBindGroupsPool = append(s.drawBindGroupsPool, modelBGP)

		if key == "" {
			mat := p.Material()
			if mat == nil {
				continue
			}
			key = mat.PipelineKey()
			if matBGP := mat.BindGroupProvider(); matBGP != nil {
				s.drawBindGroupsPool = append(s.drawBindGroupsPool, matBGP)
			}
		} else {
			s.drawBindGroupsPool = append(s.drawBindGroupsPool, overrides...)
		}

		if err := s.r.TargetDrawCall(key, meshProvider, 1, s.drawBindGroupsPool); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// sphereInFrustum tests a part's world-space bounding sphere against all six
// frustum planes. The sphere center is the transform's translation column; the
// radius is the mesh bounding radius scaled by the largest basis column norm.
func sphereInFrustum(f *common.Frustum, transform [16]float32, radius float32) bool {
	scaleX := transform[0]*transform[0] + transform[1]*transform[1] + transform[2]*transform[2]
	scaleY := transform[4]*transform[4] + transform[5]*transform[5] + transform[6]*transform[6]
	scaleZ := transform[8]*transform[8] + transform[9]*transform[9] + transform[10]*transform[10]
	maxScaleSq := max(scaleX, max(scaleY, scaleZ))
	worldRadius := radius * math32.Sqrt(maxScaleSq)

	cx, cy, cz := transform[12], transform[13], transform[14]
	for i := range f.Planes {
		plane := &f.Planes[i]
		dist := plane.Normal[0]*cx + plane.Normal[1]*cy + plane.Normal[2]*cz + plane.Distance
		if dist < -worldRadius {
			return false
		}
	}
	return true
}
