package config

import "fmt"

// Region is a rectangle in frame coordinates. Regions are authored for the
// base resolution and scaled to the live frame size before extraction.
type Region struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// RGB is one corner of a color band.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// Band is an inclusive RGB range. A pixel matches when every channel lies
// between Min and Max.
type Band struct {
	Min RGB `yaml:"min"`
	Max RGB `yaml:"max"`
}

// Contains reports whether the pixel (r, g, b) falls inside the band.
func (b Band) Contains(r, g, bl uint8) bool {
	return r >= b.Min.R && r <= b.Max.R &&
		g >= b.Min.G && g <= b.Max.G &&
		bl >= b.Min.B && bl <= b.Max.B
}

// BarSpec calibrates one vital bar. Health carries two bands because the bar
// renders green when healthy and red when damaged; other vitals carry one.
type BarSpec struct {
	Region Region `yaml:"region"`
	Bands  []Band `yaml:"bands"`
}

// TargetSpec calibrates the target/reticle marker region.
type TargetSpec struct {
	Region      Region `yaml:"region"`
	Band        Band   `yaml:"band"`
	MinPixels   int    `yaml:"min_pixels"`    // marker pixels required for hasTarget
	MinBlobSize int    `yaml:"min_blob_size"` // smallest blob counted as an enemy
}

// VisionConfig is the calibration surface for the state extractor.
type VisionConfig struct {
	BaseWidth  int     `yaml:"base_width"`
	BaseHeight int     `yaml:"base_height"`
	FillRatio  float64 `yaml:"fill_ratio"` // per-column in-band ratio counted as filled

	Health     BarSpec    `yaml:"health"`
	Endurance  BarSpec    `yaml:"endurance"`
	Experience BarSpec    `yaml:"experience"`
	Target     TargetSpec `yaml:"target"`
}

// DefaultVision returns the calibration for the stock 1920x1080 UI layout.
func DefaultVision() VisionConfig {
	return VisionConfig{
		BaseWidth:  1920,
		BaseHeight: 1080,
		FillRatio:  0.5,
		Health: BarSpec{
			Region: Region{X: 50, Y: 50, W: 200, H: 20},
			Bands: []Band{
				{Min: RGB{R: 0, G: 140, B: 0}, Max: RGB{R: 120, G: 255, B: 120}},
				{Min: RGB{R: 150, G: 0, B: 0}, Max: RGB{R: 255, G: 90, B: 90}},
			},
		},
		Endurance: BarSpec{
			Region: Region{X: 50, Y: 80, W: 200, H: 20},
			Bands: []Band{
				{Min: RGB{R: 0, G: 60, B: 150}, Max: RGB{R: 120, G: 170, B: 255}},
			},
		},
		Experience: BarSpec{
			Region: Region{X: 50, Y: 110, W: 300, H: 15},
			Bands: []Band{
				{Min: RGB{R: 180, G: 150, B: 0}, Max: RGB{R: 255, G: 255, B: 110}},
			},
		},
		Target: TargetSpec{
			Region:      Region{X: 600, Y: 50, W: 200, H: 100},
			Band:        Band{Min: RGB{R: 200, G: 30, B: 30}, Max: RGB{R: 255, G: 120, B: 120}},
			MinPixels:   40,
			MinBlobSize: 12,
		},
	}
}

func (c *VisionConfig) validate() error {
	if c.BaseWidth <= 0 || c.BaseHeight <= 0 {
		return fmt.Errorf("vision: base resolution %dx%d invalid", c.BaseWidth, c.BaseHeight)
	}
	if c.FillRatio <= 0 || c.FillRatio > 1 {
		return fmt.Errorf("vision: fill_ratio %.2f outside (0,1]", c.FillRatio)
	}
	bars := map[string]BarSpec{
		"health":     c.Health,
		"endurance":  c.Endurance,
		"experience": c.Experience,
	}
	for name, bar := range bars {
		if err := validateRegion(bar.Region); err != nil {
			return fmt.Errorf("vision: %s: %w", name, err)
		}
		if len(bar.Bands) == 0 {
			return fmt.Errorf("vision: %s: no color bands", name)
		}
		for i, b := range bar.Bands {
			if err := validateBand(b); err != nil {
				return fmt.Errorf("vision: %s band %d: %w", name, i, err)
			}
		}
	}
	if err := validateRegion(c.Target.Region); err != nil {
		return fmt.Errorf("vision: target: %w", err)
	}
	if err := validateBand(c.Target.Band); err != nil {
		return fmt.Errorf("vision: target band: %w", err)
	}
	if c.Target.MinPixels <= 0 || c.Target.MinBlobSize <= 0 {
		return fmt.Errorf("vision: target thresholds must be positive")
	}
	return nil
}

func validateRegion(r Region) error {
	if r.W <= 0 || r.H <= 0 {
		return fmt.Errorf("region %dx%d has no area", r.W, r.H)
	}
	if r.X < 0 || r.Y < 0 {
		return fmt.Errorf("region origin (%d,%d) negative", r.X, r.Y)
	}
	return nil
}

func validateBand(b Band) error {
	if b.Min.R > b.Max.R || b.Min.G > b.Max.G || b.Min.B > b.Max.B {
		return fmt.Errorf("band min exceeds max")
	}
	return nil
}
