package platform

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// Screen captures full-resolution frames from one display. It satisfies
// agent.FrameSource.
type Screen struct {
	display int
}

// NewScreen validates the display index against the attached displays.
func NewScreen(display int) (*Screen, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("no active displays")
	}
	if display < 0 || display >= n {
		return nil, fmt.Errorf("display %d out of range (have %d)", display, n)
	}
	return &Screen{display: display}, nil
}

// Bounds returns the display's pixel rectangle.
func (s *Screen) Bounds() image.Rectangle {
	return screenshot.GetDisplayBounds(s.display)
}

// Capture grabs the current frame.
func (s *Screen) Capture() (image.Image, error) {
	img, err := screenshot.CaptureDisplay(s.display)
	if err != nil {
		return nil, fmt.Errorf("capturing display %d: %w", s.display, err)
	}
	return img, nil
}
