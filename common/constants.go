package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed update rate the sandbox drives the world at.
	TPS = 60
)
