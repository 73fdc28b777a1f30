package common

// Logical screen size. The window scales to fit.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// FrameMillis converts a frame duration in seconds to milliseconds.
func FrameMillis(seconds float64) float64 {
	return seconds * 1000
}
