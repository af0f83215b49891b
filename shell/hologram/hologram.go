package hologram

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/holo-go/common"
	"github.com/Carmen-Shannon/holo-go/shell/renderer"
	"github.com/Carmen-Shannon/holo-go/shell/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/holo-go/shell/renderer/pipeline"
	"github.com/Carmen-Shannon/holo-go/shell/renderer/shader"
	"go.uber.org/zap"
)

const (
	// frameTransformBinding is the uniform binding index for the model matrix.
	frameTransformBinding = 0

	// frameTransformSize is the byte size of one 4×4 float32 matrix.
	frameTransformSize = 64

	// stereoViewCount is the number of views the hologram is drawn into per
	// frame: once per eye, via instancing, in a single draw.
	stereoViewCount = 2

	// cubeIndexCount is the number of indices in the fixed cube mesh.
	cubeIndexCount = 36
)

// hologram is the implementation of the Hologram interface.
type hologram struct {
	// mu guards the published device handles (provider, pipeline, shaders)
	// against release while a frame or a load completion touches them.
	mu *sync.Mutex

	r    renderer.Renderer
	anim Animator
	log  *zap.Logger

	// loadPool runs the asynchronous device-resource load sequence off the
	// render thread. A single worker: loads are serialized by design.
	loadPool worker.DynamicWorkerPool

	// ready gates Update uploads and Render draws. It is the only
	// synchronization between the async load path and the per-frame path, so it
	// must be atomic: set last by a successful load, cleared first on release.
	ready atomic.Bool

	// generation invalidates in-flight loads. Each CreateDeviceDependentResources
	// and each ReleaseDeviceDependentResources bumps it; a load completion may
	// only publish when the generation still matches the one it was started with.
	generation atomic.Uint64

	// Device-dependent handles, valid only while ready (or mid-publication under mu).
	provider    bind_group_provider.BindGroupProvider
	pipeline    pipeline.Pipeline
	shaders     []shader.Shader
	pipelineKey string
}

// Hologram owns the GPU-visible state for the single world-locked renderable
// object and its per-frame transform. Resource creation is asynchronous; Update
// and Render tolerate being called at any point before, during, and after the
// load and simply skip work until the resources are ready.
type Hologram interface {
	// CreateDeviceDependentResources starts the asynchronous device-resource load:
	// shader modules (with the view-routing stage on devices that cannot broadcast
	// from the vertex stage), the frame-transform uniform buffer, the render
	// pipeline, and the fixed cube geometry. Any failure aborts the whole sequence
	// without setting readiness. Safe to call again after a release; a new call
	// invalidates any load still in flight.
	CreateDeviceDependentResources()

	// ReleaseDeviceDependentResources clears the readiness flag first, invalidates
	// any in-flight load, then releases every device object. Safe to call multiple
	// times and at any point, including mid-load.
	ReleaseDeviceDependentResources()

	// PositionHologram re-places the hologram two meters along the viewer's gaze.
	// No-op when pose is nil; the hologram keeps its last position.
	//
	// Parameters:
	//   - pose: the sampled gaze pose, or nil if no pose is available
	PositionHologram(pose *GazePose)

	// Update rebuilds the frame transform from elapsed time and uploads it into
	// the constant buffer. The upload is skipped while resources are not ready.
	//
	// Parameters:
	//   - elapsedSeconds: total elapsed time since the shell started
	Update(elapsedSeconds float64)

	// Render issues the hologram's single indexed instanced draw (36 indices,
	// one instance per stereo view). No-op while resources are not ready.
	Render()

	// Ready reports whether the device resources have finished loading.
	//
	// Returns:
	//   - bool: true once all device resources are created
	Ready() bool

	// Animator returns the hologram's animator.
	//
	// Returns:
	//   - Animator: the animator deriving the per-frame transform
	Animator() Animator
}

var _ Hologram = &hologram{}

// NewHologram creates a new Hologram rendering through the given renderer.
// Resources are not loaded until CreateDeviceDependentResources is called.
//
// Parameters:
//   - r: the renderer that owns the device the hologram's resources live on
//   - options: functional options to configure the hologram
//
// Returns:
//   - Hologram: the configured hologram, not yet loaded
func NewHologram(r renderer.Renderer, options ...HologramBuilderOption) Hologram {
	h := &hologram{
		mu:  &sync.Mutex{},
		r:   r,
		log: zap.NewNop(),
	}
	for _, opt := range options {
		opt(h)
	}
	if h.anim == nil {
		h.anim = NewAnimator()
	}
	h.loadPool = worker.NewDynamicWorkerPool(1, 8, 1*time.Second)
	return h
}

func (h *hologram) CreateDeviceDependentResources() {
	gen := h.generation.Add(1)
	h.loadPool.SubmitTask(worker.Task{
		ID: int(gen),
		Do: func() (any, error) {
			if err := h.loadDeviceResources(gen); err != nil {
				h.log.Error("hologram resource load failed", zap.Error(err))
				return nil, err
			}
			return nil, nil
		},
	})
}

// loadDeviceResources runs the full load sequence for the given generation.
// Fail-closed: the first error aborts the sequence, releases everything created
// so far, and leaves readiness untouched. A stale generation at publication time
// releases the new objects instead of publishing them.
func (h *hologram) loadDeviceResources(gen uint64) error {
	broadcast := h.r.SupportsViewIndexBroadcast()

	var shaders []shader.Shader
	releaseAll := func(provider bind_group_provider.BindGroupProvider, p pipeline.Pipeline) {
		for _, s := range shaders {
			s.Release()
		}
		if provider != nil {
			provider.Release()
		}
		if p != nil {
			p.Release()
		}
	}

	var vs shader.Shader
	if broadcast {
		vs = shader.NewShader("VprtVertexShader", VprtVertexShaderSource, shader.StageVertex)
	} else {
		vs = shader.NewShader("VertexShader", VertexShaderSource, shader.StageVertex)
	}
	if err := h.r.CreateShaderModule(vs); err != nil {
		return err
	}
	shaders = append(shaders, vs)

	fs := shader.NewShader("PixelShader", PixelShaderSource, shader.StageFragment)
	if err := h.r.CreateShaderModule(fs); err != nil {
		releaseAll(nil, nil)
		return err
	}
	shaders = append(shaders, fs)

	// The routing stage is only needed when the vertex stage cannot address
	// every stereo view on its own.
	var route shader.Shader
	if !broadcast {
		route = shader.NewShader("ViewRouteShader", ViewRouteShaderSource, shader.StageViewRoute)
		if err := h.r.CreateShaderModule(route); err != nil {
			releaseAll(nil, nil)
			return err
		}
		shaders = append(shaders, route)
	}

	if h.generation.Load() != gen {
		releaseAll(nil, nil)
		return nil
	}

	provider := bind_group_provider.NewBindGroupProvider("Hologram")
	if err := h.r.InitUniformBuffer(provider, frameTransformBinding, frameTransformSize); err != nil {
		releaseAll(provider, nil)
		return err
	}

	vertices := CubeVertices()
	indices := CubeIndices()
	if err := h.r.InitMeshBuffers(provider, common.SliceToBytes(vertices), common.SliceToBytes(indices), len(indices)); err != nil {
		releaseAll(provider, nil)
		return err
	}

	// Pipeline keys are per-generation so a re-create after device loss never
	// collides with a stale cache entry.
	key := fmt.Sprintf("Hologram/%d", gen)
	opts := []pipeline.PipelineBuilderOption{
		pipeline.WithShader(vs),
		pipeline.WithShader(fs),
		pipeline.WithVertexLayouts(VertexBufferLayout()),
	}
	if route != nil {
		opts = append(opts, pipeline.WithShader(route))
	}
	p := pipeline.NewPipeline(key, opts...)
	p.SetBindGroupLayouts(provider.BindGroupLayout())
	if err := h.r.RegisterPipelines(p); err != nil {
		releaseAll(provider, p)
		return err
	}

	// Publish. Readiness is set last, and only if no release or re-create
	// invalidated this load while it ran.
	h.mu.Lock()
	if h.generation.Load() != gen {
		h.mu.Unlock()
		releaseAll(provider, p)
		return nil
	}
	h.provider = provider
	h.pipeline = p
	h.shaders = shaders
	h.pipelineKey = key
	h.ready.Store(true)
	h.mu.Unlock()

	h.log.Info("hologram resources ready",
		zap.Bool("viewIndexBroadcast", broadcast),
		zap.String("pipeline", key))
	return nil
}

func (h *hologram) ReleaseDeviceDependentResources() {
	// Readiness is forced false before anything is torn down so the frame loop
	// stops touching device objects immediately.
	h.ready.Store(false)
	h.generation.Add(1)

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.shaders {
		s.Release()
	}
	h.shaders = nil
	if h.provider != nil {
		h.provider.Release()
		h.provider = nil
	}
	if h.pipeline != nil {
		h.pipeline.Release()
		h.pipeline = nil
	}
	h.pipelineKey = ""
}

func (h *hologram) PositionHologram(pose *GazePose) {
	h.anim.PositionFromGaze(pose)
}

func (h *hologram) Update(elapsedSeconds float64) {
	// The transform is derived every frame regardless of readiness; only the
	// GPU upload is gated.
	transform := h.anim.FrameTransform(elapsedSeconds)

	if !h.ready.Load() {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.provider == nil {
		return
	}
	h.r.WriteBuffer(h.provider, frameTransformBinding, 0, common.StructToBytes(&transform))
}

func (h *hologram) Render() {
	if !h.ready.Load() {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.provider == nil {
		return
	}
	if err := h.r.DrawCall(h.pipelineKey, h.provider, stereoViewCount); err != nil {
		h.log.Error("hologram draw failed", zap.Error(err))
	}
}

func (h *hologram) Ready() bool {
	return h.ready.Load()
}

func (h *hologram) Animator() Animator {
	return h.anim
}
