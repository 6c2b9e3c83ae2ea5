package processor

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/aliskhannn/image-padder/internal/model"
)

// Processor applies the configured pipeline stages to decoded images.
// Stages always run in the same order: padding first, then resizing.
type Processor struct {
	square bool
	resize bool
	size   model.Size // copied from the config, later changes to it are not seen
	filter imaging.ResampleFilter
}

// New validates cfg and creates a Processor for it.
func New(cfg model.ProcessingConfig) (*Processor, error) {
	filter, err := ParseFilter(cfg.Filter)
	if err != nil {
		return nil, err
	}

	p := &Processor{square: cfg.Square, filter: filter}

	if cfg.Resize != nil {
		if cfg.Resize.Width <= 0 || cfg.Resize.Height <= 0 {
			return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSizeValue, cfg.Resize.Width, cfg.Resize.Height)
		}

		p.resize = true
		p.size = *cfg.Resize
	}

	return p, nil
}

// Process returns img transformed according to the processor config.
// img itself is never modified.
func (p *Processor) Process(img image.Image) image.Image {
	if p.square {
		img = PadToSquare(img)
	}

	if p.resize {
		// p.size is a private copy validated in New, so Resize cannot fail.
		img, _ = Resize(img, p.size, p.filter)
	}

	return img
}

// Process is a shorthand for New(cfg) followed by Process(img).
func Process(img image.Image, cfg model.ProcessingConfig) (image.Image, error) {
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}

	return p.Process(img), nil
}
