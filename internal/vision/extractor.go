package vision

import (
	"image"

	"pixelbot/internal/config"
)

// Extractor converts captured frames into GameStates using calibrated
// regions and color bands. It is deterministic for identical pixels and
// never fails a tick: a region that cannot be read (truncated frame, nil
// image, zero-size crop) yields the previous tick's value for that field.
type Extractor struct {
	cfg  config.VisionConfig
	last GameState
}

func NewExtractor(cfg config.VisionConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// Last returns the most recent snapshot, readable or degraded.
func (e *Extractor) Last() GameState {
	return e.last
}

// Extract reads all vitals and target information from frame.
func (e *Extractor) Extract(frame image.Image) GameState {
	st := e.last
	if frame != nil {
		bounds := frame.Bounds()
		sx := float64(bounds.Dx()) / float64(e.cfg.BaseWidth)
		sy := float64(bounds.Dy()) / float64(e.cfg.BaseHeight)

		if v, ok := e.barPercent(frame, e.cfg.Health, sx, sy); ok {
			st.Health = v
		}
		if v, ok := e.barPercent(frame, e.cfg.Endurance, sx, sy); ok {
			st.Endurance = v
		}
		if v, ok := e.barPercent(frame, e.cfg.Experience, sx, sy); ok {
			st.Experience = v
		}
		if has, count, ok := e.targetInfo(frame, sx, sy); ok {
			st.HasTarget = has
			st.EnemyCount = count
		}
	}
	st.Health = clampPct(st.Health)
	st.Endurance = clampPct(st.Endurance)
	st.Experience = clampPct(st.Experience)
	e.last = st
	return st
}

// barPercent measures the filled-width ratio of a vital bar: a column counts
// as filled when enough of its pixels fall inside a band, and the percentage
// is filled columns over total columns. Measuring along the long axis keeps
// the reading stable under anti-aliasing at the fill edge. Bars with more
// than one band (health renders green or red) take the strongest reading.
func (e *Extractor) barPercent(frame image.Image, bar config.BarSpec, sx, sy float64) (float64, bool) {
	r, ok := cropRegion(frame, scaleRegion(bar.Region, sx, sy))
	if !ok {
		return 0, false
	}
	best := 0.0
	for _, band := range bar.Bands {
		filled := 0
		for x := r.Min.X; x < r.Max.X; x++ {
			inBand := 0
			for y := r.Min.Y; y < r.Max.Y; y++ {
				if pixelInBand(frame, x, y, band) {
					inBand++
				}
			}
			if float64(inBand) >= e.cfg.FillRatio*float64(r.Dy()) {
				filled++
			}
		}
		pct := float64(filled) / float64(r.Dx()) * 100
		if pct > best {
			best = pct
		}
	}
	return best, true
}

// targetInfo tests the target region for the reticle color signature.
// Presence needs MinPixels matches; the enemy count is the number of
// marker blobs of at least MinBlobSize pixels. Blob counting is a
// heuristic estimate, not an exact census.
func (e *Extractor) targetInfo(frame image.Image, sx, sy float64) (bool, int, bool) {
	spec := e.cfg.Target
	r, ok := cropRegion(frame, scaleRegion(spec.Region, sx, sy))
	if !ok {
		return false, 0, false
	}
	w, h := r.Dx(), r.Dy()
	mask := make([]bool, w*h)
	matched := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if pixelInBand(frame, r.Min.X+x, r.Min.Y+y, spec.Band) {
				mask[y*w+x] = true
				matched++
			}
		}
	}
	if matched < spec.MinPixels {
		return false, 0, true
	}
	return true, countBlobs(mask, w, h, spec.MinBlobSize), true
}

func scaleRegion(reg config.Region, sx, sy float64) image.Rectangle {
	x := int(float64(reg.X) * sx)
	y := int(float64(reg.Y) * sy)
	w := int(float64(reg.W) * sx)
	h := int(float64(reg.H) * sy)
	return image.Rect(x, y, x+w, y+h)
}

// cropRegion clips r to the frame and reports whether anything usable
// remains. A fully or mostly out-of-bounds region is unreadable.
func cropRegion(frame image.Image, r image.Rectangle) (image.Rectangle, bool) {
	clipped := r.Intersect(frame.Bounds())
	if clipped.Dx() < 2 || clipped.Dy() < 1 {
		return image.Rectangle{}, false
	}
	return clipped, true
}

func pixelInBand(frame image.Image, x, y int, band config.Band) bool {
	r, g, b, _ := frame.At(x, y).RGBA()
	return band.Contains(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
