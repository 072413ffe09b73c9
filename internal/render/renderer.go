package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	_ "image/jpeg"

	"github.com/disintegration/imaging"
	"github.com/sotiny/sotiny/internal/catalog"
	"github.com/sotiny/sotiny/internal/models"
)

// ErrAssetMissing is returned when a card's image cannot be resolved
// through the catalog
var ErrAssetMissing = errors.New("card image asset missing")

const (
	defaultColumns    = 5
	defaultCardWidth  = 265
	defaultCardHeight = 370
)

// Config holds the renderer's dependencies and layout settings
type Config struct {
	// Catalog resolves card image assets
	Catalog *catalog.Catalog

	// Columns is the grid width in cards. Defaults to 5.
	Columns int

	// CardWidth is the cell width in pixels. Defaults to 265.
	CardWidth int

	// CardHeight is the cell height in pixels. Defaults to 370.
	CardHeight int
}

// Renderer composes a pool's card images into one PNG grid. It is
// side-effect free; the caller decides where the bytes go.
type Renderer struct {
	catalog    *catalog.Catalog
	columns    int
	cardWidth  int
	cardHeight int
}

// New creates a pool renderer
func New(cfg *Config) (*Renderer, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Catalog == nil {
		return nil, errors.New("catalog cannot be nil")
	}

	r := &Renderer{
		catalog:    cfg.Catalog,
		columns:    cfg.Columns,
		cardWidth:  cfg.CardWidth,
		cardHeight: cfg.CardHeight,
	}

	if r.columns <= 0 {
		r.columns = defaultColumns
	}
	if r.cardWidth <= 0 {
		r.cardWidth = defaultCardWidth
	}
	if r.cardHeight <= 0 {
		r.cardHeight = defaultCardHeight
	}

	return r, nil
}

// RenderInput holds the pool to render
type RenderInput struct {
	Pool *models.Pool
}

// RenderOutput holds the composed image
type RenderOutput struct {
	// PNG is the encoded image
	PNG []byte

	// Width and Height are the image dimensions in pixels
	Width  int
	Height int
}

// Render draws the pool's cards row-major into a fixed grid, each
// card scaled to a uniform cell. Output dimensions depend only on the
// card count and the configured layout, and the image is byte-for-byte
// deterministic for the same pool ordering.
func (r *Renderer) Render(input *RenderInput) (*RenderOutput, error) {
	if input == nil || input.Pool == nil {
		return nil, errors.New("input and pool cannot be nil")
	}

	cardIDs := input.Pool.CardIDs
	if len(cardIDs) == 0 {
		return nil, errors.New("pool has no cards to render")
	}

	rows := (len(cardIDs) + r.columns - 1) / r.columns
	width := r.columns * r.cardWidth
	height := rows * r.cardHeight
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))

	for i, cardID := range cardIDs {
		data, err := r.catalog.Image(cardID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrAssetMissing, cardID)
		}

		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image for %s: %w", cardID, err)
		}

		cell := imaging.Resize(img, r.cardWidth, r.cardHeight, imaging.Lanczos)

		x := (i % r.columns) * r.cardWidth
		y := (i / r.columns) * r.cardHeight
		draw.Draw(canvas, image.Rect(x, y, x+r.cardWidth, y+r.cardHeight), cell, image.Point{}, draw.Src)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode pool image: %w", err)
	}

	return &RenderOutput{
		PNG:    buf.Bytes(),
		Width:  width,
		Height: height,
	}, nil
}
