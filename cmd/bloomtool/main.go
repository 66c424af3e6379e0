package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nfnt/resize"
	"github.com/rs/zerolog"

	"github.com/vearutop/bloom"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "apply":
		if err := runApply(os.Args[2:]); err != nil {
			fail(err)
		}
	case "stages":
		if err := runStages(os.Args[2:]); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: bloomtool <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  apply  -in scene.png|scene.exr -out output.png [-w 1280] [-h 720] [-params params.json]")
	fmt.Fprintln(os.Stderr, "         [-threshold 0.55] [-intensity 3] [-adaptive-scaling 5] [-max-radius 40] [-intensity-curve 5]")
	fmt.Fprintln(os.Stderr, "         [-linear] [-v]")
	fmt.Fprintln(os.Stderr, "  stages -in scene.png|scene.exr -dir outdir [same flags as apply]")
	fmt.Fprintln(os.Stderr, "         (writes brightness.png, blur_h.png, blur_v.png, final.png)")
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

type sceneFlags struct {
	in      string
	width   int
	height  int
	params  string
	linear  bool
	verbose bool
}

func addSceneFlags(fs *flag.FlagSet, sf *sceneFlags, p *bloom.Params) {
	fs.StringVar(&sf.in, "in", "", "input scene image (PNG, JPEG or OpenEXR)")
	fs.IntVar(&sf.width, "w", 0, "pre-resize width (PNG/JPEG input only)")
	fs.IntVar(&sf.height, "h", 0, "pre-resize height (PNG/JPEG input only)")
	fs.StringVar(&sf.params, "params", "", "JSON file with bloom parameters")
	fs.BoolVar(&sf.linear, "linear", false, "input is linear light, skip sRGB decoding")
	fs.BoolVar(&sf.verbose, "v", false, "log per-stage timings")

	// Defaults shown in help; explicitly set values are layered over the
	// params file by resolveParams.
	fs.Float64("threshold", float64(p.Threshold), "brightness extraction threshold")
	fs.Float64("intensity", float64(p.Intensity), "bloom intensity")
	fs.Float64("adaptive-scaling", float64(p.AdaptiveScaling), "adaptive blur scaling exponent")
	fs.Float64("max-radius", float64(p.MaxRadius), "maximum blur radius in texels")
	fs.Float64("intensity-curve", float64(p.IntensityCurve), "adaptive intensity curve exponent")
}

func runApply(args []string) error {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var sf sceneFlags
	params := bloom.DefaultParams()
	out := fs.String("out", "", "output PNG")
	addSceneFlags(fs, &sf, &params)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if sf.in == "" || *out == "" {
		return errors.New("missing required arguments")
	}
	if err := resolveParams(fs, sf.params, &params); err != nil {
		return err
	}

	logger := newLogger(sf.verbose)
	scene, err := loadScene(&sf)
	if err != nil {
		return err
	}
	logger.Info().Int("width", scene.W).Int("height", scene.H).Msg("scene loaded")

	pl := bloom.NewPipeline(scene.W, scene.H)
	pl.SetParams(params)

	started := time.Now()
	final, err := pl.Process(scene)
	if err != nil {
		return err
	}
	logger.Info().Dur("elapsed", time.Since(started)).Msg("bloom applied")

	return writePNG(*out, bloom.ToNRGBA(final, func(o *bloom.ConvertOptions) {
		o.SRGB = !sf.linear
	}))
}

func runStages(args []string) error {
	fs := flag.NewFlagSet("stages", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var sf sceneFlags
	params := bloom.DefaultParams()
	dir := fs.String("dir", "", "output directory for stage images")
	addSceneFlags(fs, &sf, &params)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if sf.in == "" || *dir == "" {
		return errors.New("missing required arguments")
	}
	if err := resolveParams(fs, sf.params, &params); err != nil {
		return err
	}
	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return err
	}

	logger := newLogger(sf.verbose)
	scene, err := loadScene(&sf)
	if err != nil {
		return err
	}
	logger.Info().Int("width", scene.W).Int("height", scene.H).Msg("scene loaded")

	smp := bloom.Sampler{Filter: bloom.FilterLinear}
	bright := bloom.NewImage(scene.W, scene.H)
	blurH := bloom.NewImage(scene.W, scene.H)
	blurV := bloom.NewImage(scene.W, scene.H)
	final := bloom.NewImage(scene.W, scene.H)

	stage := func(name string, img *bloom.Image, run func() error) error {
		started := time.Now()
		if err := run(); err != nil {
			return err
		}
		logger.Info().Dur("elapsed", time.Since(started)).Str("stage", name).Msg("stage complete")
		return writePNG(filepath.Join(*dir, name+".png"), bloom.ToNRGBA(img, func(o *bloom.ConvertOptions) {
			o.SRGB = !sf.linear
		}))
	}

	blur := bloom.BlurParams{AdaptiveScaling: params.AdaptiveScaling, MaxRadius: params.MaxRadius}
	if err := stage("brightness", bright, func() error {
		return bloom.ExtractBrightness(bright, scene, smp, bloom.BrightnessParams{Threshold: params.Threshold})
	}); err != nil {
		return err
	}
	blur.Direction = bloom.Horizontal
	if err := stage("blur_h", blurH, func() error {
		return bloom.BlurDirectional(blurH, bright, smp, blur)
	}); err != nil {
		return err
	}
	blur.Direction = bloom.Vertical
	if err := stage("blur_v", blurV, func() error {
		return bloom.BlurDirectional(blurV, blurH, smp, blur)
	}); err != nil {
		return err
	}
	return stage("final", final, func() error {
		return bloom.Composite(final, scene, blurV, smp, bloom.CompositeParams{
			Intensity:      params.Intensity,
			IntensityCurve: params.IntensityCurve,
		})
	})
}

func newLogger(verbose bool) zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !verbose {
		logger = logger.Level(zerolog.WarnLevel)
	}
	return logger
}

// resolveParams layers configuration: defaults, then the JSON params file,
// then explicitly set flags.
func resolveParams(fs *flag.FlagSet, paramsPath string, p *bloom.Params) error {
	if paramsPath != "" {
		data, err := os.ReadFile(paramsPath)
		if err != nil {
			return fmt.Errorf("read params: %w", err)
		}
		if err := json.Unmarshal(data, p); err != nil {
			return fmt.Errorf("parse params: %w", err)
		}
	}
	fs.Visit(func(f *flag.Flag) {
		g, ok := f.Value.(flag.Getter)
		if !ok {
			return
		}
		v, ok := g.Get().(float64)
		if !ok {
			return
		}
		switch f.Name {
		case "threshold":
			p.Threshold = float32(v)
		case "intensity":
			p.Intensity = float32(v)
		case "adaptive-scaling":
			p.AdaptiveScaling = float32(v)
		case "max-radius":
			p.MaxRadius = float32(v)
		case "intensity-curve":
			p.IntensityCurve = float32(v)
		}
	})
	return nil
}

func loadScene(sf *sceneFlags) (*bloom.Image, error) {
	data, err := os.ReadFile(sf.in)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(sf.in), ".exr") {
		if sf.width > 0 || sf.height > 0 {
			return nil, errors.New("pre-resize is not supported for OpenEXR input")
		}
		return bloom.DecodeEXR(data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", sf.in, err)
	}
	if sf.width > 0 && sf.height > 0 {
		img = resize.Resize(uint(sf.width), uint(sf.height), img, resize.Lanczos3)
	}
	return bloom.FromImage(img, func(o *bloom.ConvertOptions) {
		o.SRGB = !sf.linear
	}), nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
