package projection

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/pxsort"
)

// builders maps projection names accepted by Parse.
var builders = map[string]func(channels int) (pxsort.Map, error){
	"sum":        Sum,
	"luminance":  Luminance,
	"lightness":  Lightness,
	"hue":        Hue,
	"saturation": Saturation,
	"chroma":     Chroma,
}

// Names returns the projection names accepted by Parse, sorted.
func Names() []string {
	names := make([]string, 0, len(builders)+1)
	for name := range builders {
		names = append(names, name)
	}
	names = append(names, "channel:N")
	slices.Sort(names)
	return names
}

// Parse builds a projection from its name. "channel:N" selects channel N.
func Parse(name string, channels int) (pxsort.Map, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if rest, ok := strings.CutPrefix(name, "channel:"); ok {
		ch, err := strconv.Atoi(rest)
		if err != nil {
			return pxsort.Map{}, fmt.Errorf("%w: %w", ErrInvalidProjection, err)
		}
		return Channel(channels, ch)
	}
	build, ok := builders[name]
	if !ok {
		return pxsort.Map{}, fmt.Errorf("%w: unknown projection %q (have %s)",
			ErrInvalidProjection, name, strings.Join(Names(), ", "))
	}
	return build(channels)
}
