package render

import (
	"context"
	"image"

	"github.com/tokenthinker/omnisim/simulation"
)

// ImageSource generates images from the current state of one or more
// simulations, side by side. It samples; it never advances time.
type ImageSource struct {
	renderer *Renderer
	sims     []*simulation.Simulation
}

// NewImageSource returns an image source over the given simulations.
func NewImageSource(sims ...*simulation.Simulation) *ImageSource {
	return &ImageSource{renderer: NewRenderer(), sims: sims}
}

// Next samples every simulation and renders the composite image.
func (is *ImageSource) Next(ctx context.Context) (image.Image, error) {
	frames := make([]simulation.Frame, len(is.sims))
	for i, sim := range is.sims {
		frames[i] = sim.SampleFrame()
	}
	return SideBySide(is.renderer, frames...), nil
}

// Close is a no-op; the source holds no resources.
func (is *ImageSource) Close() error {
	return nil
}
