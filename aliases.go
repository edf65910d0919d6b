package typeset

import (
	"github.com/inkfold/typeset/internal/core/geom"
	"github.com/inkfold/typeset/internal/font"
	"github.com/inkfold/typeset/internal/grid"
	"github.com/inkfold/typeset/internal/pdf"
	"github.com/inkfold/typeset/internal/render"
	"github.com/inkfold/typeset/nodes"
)

// Type aliases for public API.
//
// These aliases re-export types from internal modules to present a unified
// and concise public interface under the `typeset` namespace.
type (
	Length      = geom.Length      // One-dimensional measure in points
	Linear      = geom.Linear      // Absolute length plus fraction of a base
	Fractional  = geom.Fractional  // Share of leftover space
	Size        = geom.Size        // 2D dimension in points
	Point       = geom.Point       // 2D position in points
	Frame       = grid.Frame       // Laid-out box with placements and actions
	Regions     = grid.Regions     // Available-space context for layout
	Constraints = grid.Constraints // Region-parameter captures for cache reuse
	GridNode    = grid.GridNode    // Two-dimensional track-based layout node
	TrackSizing = grid.TrackSizing // Column/row sizing: auto, linear, or fractional
	LayoutNode  = grid.LayoutNode  // Anything that can fill a grid cell
	TextNode    = nodes.TextNode   // Leaf node for a run of text
	BoxNode     = nodes.BoxNode    // Leaf node for a fixed-size box
	Font        = render.Font      // Font resource for text measurement
	FontIndex   = font.Index       // Loader-assigned font identity
	FontLoader  = font.Loader      // Registry resolving indices to parsed fonts
	Page        = pdf.Page         // One page's frame tree ready for export
)

// ConstrainedFrame pairs a finished frame with the constraints captured
// while producing it.
type ConstrainedFrame = grid.Constrained[*grid.Frame]

// Track sizing constructors.
var (
	// AutoTrack fits the track to its content.
	AutoTrack = grid.AutoTrack

	// LinearTrack sizes the track to an absolute length plus a fraction of
	// the parent's size.
	LinearTrack = grid.LinearTrack

	// FractionalTrack gives the track a share of the leftover space.
	FractionalTrack = grid.FractionalTrack
)

// Region constructors.
var (
	// One builds a single, final region: layout must finish inside it.
	One = grid.One

	// Repeat builds a region size that repeats forever, modelling a
	// paginated document.
	Repeat = grid.Repeat
)

// Leaf node constructors.
var (
	// NewTextNode builds a text run at a given size.
	NewTextNode = nodes.NewTextNode

	// NewBoxNode builds a box with fixed absolute dimensions.
	NewBoxNode = nodes.NewBoxNode
)

// Font management utilities.
//
// Measurement fonts (render.Font) drive layout; parsed fonts (font.Font)
// feed the PDF emitter's subsetting and table access. Both are typically
// loaded from the same .ttf bytes.
var (
	// LoadFont loads a measurement font from a file path.
	LoadFont = render.LoadFont

	// LoadFontFromBytes loads a measurement font from an in-memory byte
	// slice.
	LoadFontFromBytes = render.LoadFontFromBytes

	// MustLoadFont loads a measurement font and panics on failure.
	MustLoadFont = render.MustLoadFont

	// MustLoadFontFromBytes loads a measurement font from memory and panics
	// on failure.
	MustLoadFontFromBytes = render.MustLoadFontFromBytes

	// ParseFont parses a TrueType font for PDF embedding: table access,
	// subsetting, and text encoding.
	ParseFont = font.Parse

	// NewFontLoader builds the index-to-font registry shared by layout and
	// export.
	NewFontLoader = font.NewLoader

	// SetFontCacheCapacity limits the number of cached font faces to
	// conserve memory.
	SetFontCacheCapacity = render.SetFontCacheCapacity

	// ClearFontCache clears all cached font faces.
	ClearFontCache = render.ClearFontCache
)

// ExportPDF writes a complete PDF 1.7 document for the given pages to a
// byte sink, returning the number of bytes written.
var ExportPDF = pdf.Export
