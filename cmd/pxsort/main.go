// Command pxsort pixel-sorts an image file.
//
// The image is tiled into a grid of segments, one effect is attached to
// every tile and the segmentation is stepped for a number of ticks before
// the result is written back out:
//
//	pxsort -in photo.jpg -out sorted.png -grid 1x8 -effect bubble -ticks 5000 -key lightness
package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/pxsort"
	"github.com/gogpu/pxsort/geometry"
	"github.com/gogpu/pxsort/imageio"
	"github.com/gogpu/pxsort/mixer"
	"github.com/gogpu/pxsort/projection"
)

// config holds the parsed command line.
type config struct {
	in, out   string
	grid      string
	effect    string
	ticks     int
	workers   int
	skew      string
	topology  string
	traversal string
	key       string
	order     string
	buckets   int
	mix       string
	space     string
	scale     float64
	verbose   bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.in, "in", "", "input image (png, jpeg, bmp, tiff, webp)")
	flag.StringVar(&cfg.out, "out", "sorted.png", "output image (png, jpeg, bmp, tiff)")
	flag.StringVar(&cfg.grid, "grid", "1x1", "tile grid as ROWSxCOLUMNS; 0 means one tile per pixel row or column")
	flag.StringVar(&cfg.effect, "effect", "bucket", "effect: bucket, bubble or heapify")
	flag.IntVar(&cfg.ticks, "ticks", 1, "number of ticks to run")
	flag.IntVar(&cfg.workers, "workers", 1, "parallel workers (1 runs sequentially)")
	flag.StringVar(&cfg.skew, "skew", "", "per-channel sample offsets as dx,dy;dx,dy;...")
	flag.StringVar(&cfg.topology, "topology", "wrap", "out-of-range sampling: wrap, clamp or discard")
	flag.StringVar(&cfg.traversal, "traversal", "forward", "segment traversal: forward, reverse or breadth-first")
	flag.StringVar(&cfg.key, "key", "luminance", "projection: "+strings.Join(projection.Names(), ", "))
	flag.StringVar(&cfg.order, "order", "ascending", "comparator order: ascending or descending")
	flag.IntVar(&cfg.buckets, "buckets", 4, "bucket count for the bucket effect")
	flag.StringVar(&cfg.mix, "mix", "", "mixer: empty for identity, channel letters to swap (e.g. rb), or blend:T")
	flag.StringVar(&cfg.space, "space", "rgb", "working colour space: rgb, linear, lab, luv, hsv, hcl")
	flag.Float64Var(&cfg.scale, "scale", 1, "resample the input by this factor first")
	flag.BoolVar(&cfg.verbose, "v", false, "log per-tick diagnostics")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	pxsort.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if cfg.in == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(cfg, os.Stdout); err != nil {
		log.Fatalf("pxsort: %v", err)
	}
}

func run(cfg config, stdout io.Writer) error {
	start := time.Now()

	img, err := imageio.LoadImage(cfg.in)
	if err != nil {
		return err
	}
	if cfg.scale != 1 {
		if img, err = imageio.Scale(img, cfg.scale); err != nil {
			return err
		}
	}
	buf, err := imageio.FromImage(img, 3)
	if err != nil {
		return err
	}
	space, err := imageio.ParseColorSpace(cfg.space)
	if err != nil {
		return err
	}
	if err := imageio.Convert(buf, space); err != nil {
		return err
	}

	segs, err := tiles(buf.Bounds(), cfg.grid)
	if err != nil {
		return err
	}
	fx, err := buildEffect(cfg, buf.Channels())
	if err != nil {
		return err
	}

	s := pxsort.NewSegmentation(buf, segs, pxsort.WithWorkers(cfg.workers))
	defer s.Close()
	if err := s.AddEffect(fx); err != nil {
		return err
	}
	for range cfg.ticks {
		if err := s.ApplyEffects(); err != nil {
			return err
		}
	}

	if err := imageio.Restore(buf, space); err != nil {
		return err
	}
	if err := imageio.Save(cfg.out, buf); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	_, err = p.Fprintf(stdout, "%s: %d pixels, %d segments, %d ticks, %d workers in %v\n",
		cfg.out, buf.Width()*buf.Height(), s.Len(), s.Ticks(), s.Workers(),
		time.Since(start).Round(time.Millisecond))
	return err
}

// tiles parses a ROWSxCOLUMNS grid spec into segments.
func tiles(bounds image.Rectangle, spec string) ([]*pxsort.Segment, error) {
	rs, cs, ok := strings.Cut(strings.ToLower(spec), "x")
	if !ok {
		return nil, fmt.Errorf("grid %q: want ROWSxCOLUMNS", spec)
	}
	rows, err := strconv.Atoi(rs)
	if err != nil {
		return nil, fmt.Errorf("grid rows: %w", err)
	}
	cols, err := strconv.Atoi(cs)
	if err != nil {
		return nil, fmt.Errorf("grid columns: %w", err)
	}
	g, err := geometry.NewGrid(bounds, rows, cols)
	if err != nil {
		return nil, err
	}
	return g.Segments(), nil
}

func buildEffect(cfg config, channels int) (pxsort.Effect, error) {
	var (
		smp pxsort.Sampling
		err error
	)
	if smp.Topology, err = pxsort.ParseTopology(cfg.topology); err != nil {
		return nil, err
	}
	if smp.Traversal, err = pxsort.ParseTraversal(cfg.traversal); err != nil {
		return nil, err
	}
	if cfg.skew != "" {
		if smp.Skew, err = pxsort.ParseSkew(cfg.skew); err != nil {
			return nil, err
		}
		if err := smp.Skew.Validate(channels); err != nil {
			return nil, err
		}
	}

	key, err := projection.Parse(cfg.key, channels)
	if err != nil {
		return nil, err
	}
	order, err := pxsort.ParseOrder(cfg.order)
	if err != nil {
		return nil, err
	}
	mix, err := buildMixer(cfg.mix, channels)
	if err != nil {
		return nil, err
	}

	switch cfg.effect {
	case "bucket":
		if order == pxsort.Descending {
			if key, err = descending(key); err != nil {
				return nil, err
			}
		}
		return &pxsort.BucketSort{Sampling: smp, Key: key, Buckets: cfg.buckets, Mix: mix}, nil
	case "bubble":
		return &pxsort.BubblePass{Sampling: smp, Compare: pxsort.CompareBy(key, order), Mix: mix}, nil
	case "heapify":
		return &pxsort.HeapifyPass{Sampling: smp, Compare: pxsort.CompareBy(key, order), Mix: mix}, nil
	}
	return nil, fmt.Errorf("unknown effect %q", cfg.effect)
}

// descending negates a key so that bucket sort bands high values first.
func descending(key pxsort.Map) (pxsort.Map, error) {
	neg, err := pxsort.NewMap(1, 1, func(in []float64) []float64 { return []float64{-in[0]} })
	if err != nil {
		return pxsort.Map{}, err
	}
	return pxsort.Compose(neg, key)
}

func buildMixer(spec string, channels int) (pxsort.Map, error) {
	switch {
	case spec == "":
		return mixer.Identity(channels), nil
	case strings.HasPrefix(spec, "blend:"):
		t, err := strconv.ParseFloat(strings.TrimPrefix(spec, "blend:"), 64)
		if err != nil {
			return pxsort.Map{}, fmt.Errorf("mix: %w", err)
		}
		return mixer.Blend(channels, t)
	}
	swapped, err := mixer.ParseSwap(spec)
	if err != nil {
		return pxsort.Map{}, err
	}
	return mixer.Swap(channels, swapped...)
}
