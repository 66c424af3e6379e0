package bloom

import "fmt"

// Params holds the full bloom configuration. Values may change between
// frames; each Process call snapshots them into immutable per-pass
// parameter structs.
type Params struct {
	// Threshold is the luminance around which bright pixels are isolated.
	Threshold float32 `json:"threshold"`
	// Intensity scales the bloom contribution in the composite pass.
	Intensity float32 `json:"intensity"`
	// AdaptiveScaling shapes brightness-adaptive kernel widening.
	AdaptiveScaling float32 `json:"adaptive_scaling"`
	// MaxRadius is the blur kernel radius for fully bright pixels, in texels.
	MaxRadius float32 `json:"max_radius"`
	// IntensityCurve shapes the brightness-adaptive intensity ramp.
	IntensityCurve float32 `json:"intensity_curve"`
}

// DefaultParams returns the stock bloom configuration.
func DefaultParams() Params {
	return Params{
		Threshold:       0.55,
		Intensity:       3.0,
		AdaptiveScaling: 5.0,
		MaxRadius:       40.0,
		IntensityCurve:  5.0,
	}
}

// Pipeline owns the intermediate render targets of the bloom chain and
// sequences the four passes:
//
//	scene -> ExtractBrightness -> BlurDirectional(Horizontal)
//	      -> BlurDirectional(Vertical) -> Composite -> final
//
// Each pass fully writes its output image before the next pass reads it,
// and no pass reads and writes the same image. Target images are allocated
// once and fully overwritten every frame.
//
// A Pipeline is not safe for concurrent Process calls; parallelism lives
// inside each pass.
type Pipeline struct {
	w, h    int
	params  Params
	sampler Sampler

	bright *Image
	blurH  *Image
	blurV  *Image
	out    *Image
}

// NewPipeline creates a pipeline for scenes of the given dimensions.
func NewPipeline(w, h int, opts ...func(p *Params)) *Pipeline {
	params := DefaultParams()
	for _, applyOpt := range opts {
		applyOpt(&params)
	}

	return &Pipeline{
		w:       w,
		h:       h,
		params:  params,
		sampler: Sampler{Filter: FilterLinear},
		bright:  NewImage(w, h),
		blurH:   NewImage(w, h),
		blurV:   NewImage(w, h),
		out:     NewImage(w, h),
	}
}

// Width returns the pipeline's scene width.
func (pl *Pipeline) Width() int { return pl.w }

// Height returns the pipeline's scene height.
func (pl *Pipeline) Height() int { return pl.h }

// Params returns the current configuration.
func (pl *Pipeline) Params() Params { return pl.params }

// SetParams replaces the whole configuration.
func (pl *Pipeline) SetParams(p Params) { pl.params = p }

// SetThreshold updates the brightness extraction threshold.
func (pl *Pipeline) SetThreshold(v float32) { pl.params.Threshold = v }

// SetIntensity updates the bloom intensity.
func (pl *Pipeline) SetIntensity(v float32) { pl.params.Intensity = v }

// SetAdaptiveScaling updates the adaptive blur scaling exponent.
func (pl *Pipeline) SetAdaptiveScaling(v float32) { pl.params.AdaptiveScaling = v }

// SetMaxRadius updates the maximum blur radius.
func (pl *Pipeline) SetMaxRadius(v float32) { pl.params.MaxRadius = v }

// SetIntensityCurve updates the adaptive intensity curve exponent.
func (pl *Pipeline) SetIntensityCurve(v float32) { pl.params.IntensityCurve = v }

// Process runs the bloom chain over scene and returns the final image.
// The returned image is owned by the pipeline and is valid until the next
// Process call. Scene dimensions must match the pipeline's.
func (pl *Pipeline) Process(scene *Image) (*Image, error) {
	if scene.W != pl.w || scene.H != pl.h {
		return nil, fmt.Errorf("scene dimensions must match pipeline: %dx%d vs %dx%d", scene.W, scene.H, pl.w, pl.h)
	}

	p := pl.params
	blur := BlurParams{
		AdaptiveScaling: p.AdaptiveScaling,
		MaxRadius:       p.MaxRadius,
	}

	if err := ExtractBrightness(pl.bright, scene, pl.sampler, BrightnessParams{Threshold: p.Threshold}); err != nil {
		return nil, fmt.Errorf("brightness pass: %w", err)
	}

	blur.Direction = Horizontal
	if err := BlurDirectional(pl.blurH, pl.bright, pl.sampler, blur); err != nil {
		return nil, fmt.Errorf("horizontal blur pass: %w", err)
	}

	blur.Direction = Vertical
	if err := BlurDirectional(pl.blurV, pl.blurH, pl.sampler, blur); err != nil {
		return nil, fmt.Errorf("vertical blur pass: %w", err)
	}

	comp := CompositeParams{Intensity: p.Intensity, IntensityCurve: p.IntensityCurve}
	if err := Composite(pl.out, scene, pl.blurV, pl.sampler, comp); err != nil {
		return nil, fmt.Errorf("composite pass: %w", err)
	}

	return pl.out, nil
}
