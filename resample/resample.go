// Package resample provides interchangeable Lanczos resizers.
//
// Every backend scales with a three-lobed Lanczos (windowed sinc) filter.
// They differ in support scaling, edge handling and intermediate precision.
// Only the default backend matches Pillow's LANCZOS resize byte for byte.
package resample

import (
	"fmt"
	"image"
	"slices"
	"strings"
)

// Resampler scales an image to exactly size.
type Resampler interface {
	Resize(img image.Image, size image.Point) image.Image
}

// DefaultName is the backend used when none is requested.
const DefaultName = "pillow"

var backends = map[string]func() Resampler{
	"pillow":  func() Resampler { return &Pillow{} },
	"xdraw":   func() Resampler { return &XDraw{} },
	"imaging": func() Resampler { return &Imaging{} },
	"gift":    func() Resampler { return &Gift{} },
	"nfnt":    func() Resampler { return &Nfnt{} },
	"bild":    func() Resampler { return &Bild{} },
}

// Names lists the registered backends in sorted order.
func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ByName returns the backend registered under name.
func ByName(name string) (Resampler, error) {
	newFn, ok := backends[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown resampler %q, should be one of %s", name, strings.Join(Names(), ", "))
	}
	return newFn(), nil
}

// Default returns the default backend.
func Default() Resampler {
	return backends[DefaultName]()
}
