package world

import (
	"math"

	"github.com/ashfall-games/skirmish/internal/game/character"
)

// Color is an RGB render color. The simulation core only flips colors for
// the hit flash; rendering itself lives outside this module.
type Color struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// Named colors the engine uses directly.
var (
	ColorYellow = Color{R: 255, G: 255, B: 0}
	ColorWhite  = Color{R: 255, G: 255, B: 255}
	ColorGray   = Color{R: 128, G: 128, B: 128}
)

// Unit is a character placed on the battlefield. X and Y are world pixels.
// BaseColor is the faction color the hit flash reverts to.
type Unit struct {
	ID int
	X  float64
	Y  float64

	Color             Color
	BaseColor         Color
	HitHighlighted    bool
	FiringHighlighted bool

	Character *character.Character
}

// NewUnit places c at (x, y) with the given base color.
//
// Precondition: c must not be nil.
func NewUnit(id int, c *character.Character, x, y float64, baseColor Color) *Unit {
	if c == nil {
		panic("world: NewUnit: character must not be nil")
	}
	return &Unit{
		ID:        id,
		X:         x,
		Y:         y,
		Color:     baseColor,
		BaseColor: baseColor,
		Character: c,
	}
}

// DistanceTo returns the center-to-center distance to other in pixels.
func (u *Unit) DistanceTo(other *Unit) float64 {
	return math.Hypot(other.X-u.X, other.Y-u.Y)
}

// DistanceFeetTo returns the center-to-center distance to other in feet.
func (u *Unit) DistanceFeetTo(other *Unit) float64 {
	return PixelsToFeet(u.DistanceTo(other))
}

// Faction returns the unit's faction id.
func (u *Unit) Faction() int {
	return u.Character.Faction
}
