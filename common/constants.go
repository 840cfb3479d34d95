package common

// Logical screen size. The window scales this to fit.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// TPS is the fixed simulation rate.
const TPS = 60
