// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Quality bounds for the lossy page encoder. Values outside the range are
// clamped rather than rejected, matching the CLI's accepted range.
const (
	MinQuality     = 50
	MaxQuality     = 100
	DefaultQuality = 95
)

// ClampQuality forces q into the supported [MinQuality, MaxQuality] range.
// A zero value (unset) maps to DefaultQuality.
func ClampQuality(q int) int {
	if q == 0 {
		return DefaultQuality
	}
	if q < MinQuality {
		return MinQuality
	}
	if q > MaxQuality {
		return MaxQuality
	}
	return q
}

// EffectConfig holds the per-run scan-effect settings. It is immutable for
// the duration of a run; build one with DefaultEffectConfig and Normalize.
type EffectConfig struct {
	// Quality is the JPEG quality for re-encoded pages (50-100).
	Quality int `json:"quality" yaml:"quality"`

	// Askew enables the small random page rotation.
	Askew bool `json:"askew" yaml:"askew"`

	// BlackAndWhite converts pages to grayscale with a contrast boost,
	// approximating a photocopy.
	BlackAndWhite bool `json:"black_and_white" yaml:"black_and_white"`

	// Blur applies a slight gaussian blur to each page.
	Blur bool `json:"blur" yaml:"blur"`

	// Contrast, Sharpness and Brightness are user adjustment factors.
	// 1.0 leaves the page unchanged; greater values increase the effect.
	Contrast   float64 `json:"contrast" yaml:"contrast"`
	Sharpness  float64 `json:"sharpness" yaml:"sharpness"`
	Brightness float64 `json:"brightness" yaml:"brightness"`
}

// DefaultEffectConfig returns the effect settings the CLI defaults to.
func DefaultEffectConfig() EffectConfig {
	return EffectConfig{
		Quality:    DefaultQuality,
		Askew:      true,
		Contrast:   1.0,
		Sharpness:  1.0,
		Brightness: 1.0,
	}
}

// Normalize returns a copy of the config with the quality clamped and the
// adjustment factors defaulted. Zero-valued factors mean "leave unchanged"
// so a partially populated config behaves sensibly.
func (c EffectConfig) Normalize() EffectConfig {
	c.Quality = ClampQuality(c.Quality)
	if c.Contrast == 0 {
		c.Contrast = 1.0
	}
	if c.Sharpness == 0 {
		c.Sharpness = 1.0
	}
	if c.Brightness == 0 {
		c.Brightness = 1.0
	}
	return c
}

// SortOrder selects how discovered files are ordered before processing.
type SortOrder string

const (
	SortByName  SortOrder = "name"
	SortByCTime SortOrder = "ctime"
	SortByMTime SortOrder = "mtime"
	SortNone    SortOrder = "none"
)

// DiscoveryConfig holds settings for the file-discovery layer. It never
// reaches the page-transform pipeline.
type DiscoveryConfig struct {
	// Folder is the directory scanned for input files.
	Folder string `json:"folder" yaml:"folder"`

	// Filter selects what to process: "pdf", "image", an extension
	// (".png"), or an exact file name.
	Filter string `json:"filter" yaml:"filter"`

	// Recurse scans sub-folders as well.
	Recurse bool `json:"recurse" yaml:"recurse"`

	// SortBy orders matched files by name, ctime, mtime, or not at all.
	SortBy SortOrder `json:"sort_by" yaml:"sort_by"`
}

// DefaultDiscoveryConfig returns the discovery settings the CLI defaults to.
func DefaultDiscoveryConfig() DiscoveryConfig {
	return DiscoveryConfig{
		Filter: "pdf",
		SortBy: SortByName,
	}
}
