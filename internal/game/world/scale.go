// Package world holds the battlefield: the coordinate scale, unit state
// (position, faction, render flags), the field container the combat
// resolver iterates, and faction content loading.
package world

// PixelsPerFoot converts between world distance units (pixels) and feet.
// Weapon ranges and reaches are authored in feet; positions are in pixels.
const PixelsPerFoot = 7.0

// TicksPerSecond is the simulation rate. Weapon velocities are authored in
// feet per second and converted to ticks of travel time.
const TicksPerSecond = 60

// FeetToPixels converts a distance in feet to world pixels.
func FeetToPixels(feet float64) float64 {
	return feet * PixelsPerFoot
}

// PixelsToFeet converts a distance in world pixels to feet.
func PixelsToFeet(pixels float64) float64 {
	return pixels / PixelsPerFoot
}
