// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PageGeometry describes a fixed page layout in points (1" = 72pt).
type PageGeometry struct {
	// Width is the page width.
	Width float64 `json:"page_width" yaml:"page_width" mapstructure:"page_width"`

	// Height is the page height.
	Height float64 `json:"page_height" yaml:"page_height" mapstructure:"page_height"`

	// Margin is the top and bottom margin.
	Margin float64 `json:"margin" yaml:"margin" mapstructure:"margin"`

	// LineHeight is the vertical distance between consecutive lines.
	LineHeight float64 `json:"line_height" yaml:"line_height" mapstructure:"line_height"`

	// Left is the fixed horizontal offset of every line.
	Left float64 `json:"left" yaml:"left" mapstructure:"left"`
}

// A4Geometry returns ISO A4 with a 40pt margin and 14pt line height.
func A4Geometry() PageGeometry {
	return PageGeometry{
		Width:      595.28,
		Height:     841.89,
		Margin:     40,
		LineHeight: 14,
		Left:       40,
	}
}

// PlacedLine is one line of text at its baseline position. Y is measured
// from the bottom edge of the page.
type PlacedLine struct {
	Text string  `json:"text" yaml:"text"`
	Y    float64 `json:"y" yaml:"y"`
}

// RenderedPage is the ordered set of lines assigned to one page.
type RenderedPage struct {
	// Number is the one-based page number.
	Number int          `json:"number" yaml:"number"`
	Lines  []PlacedLine `json:"lines" yaml:"lines"`
}
