package character

import "fmt"

// BodyPart identifies where a wound landed.
type BodyPart int

const (
	PartHead BodyPart = iota
	PartChest
	PartAbdomen
	PartLeftShoulder
	PartRightShoulder
	PartLeftArm
	PartRightArm
	PartLeftLeg
	PartRightLeg
)

// String returns the lowercase display name used in wound causes and logs.
func (b BodyPart) String() string {
	switch b {
	case PartHead:
		return "head"
	case PartChest:
		return "chest"
	case PartAbdomen:
		return "abdomen"
	case PartLeftShoulder:
		return "left shoulder"
	case PartRightShoulder:
		return "right shoulder"
	case PartLeftArm:
		return "left arm"
	case PartRightArm:
		return "right arm"
	case PartLeftLeg:
		return "left leg"
	case PartRightLeg:
		return "right leg"
	default:
		panic(fmt.Sprintf("character: BodyPart.String: unknown body part %d", int(b)))
	}
}

// IsVital reports whether a wound to this part threatens organs: head,
// chest, and abdomen wounds roll on the harsher severity table.
func (b BodyPart) IsVital() bool {
	switch b {
	case PartHead, PartChest, PartAbdomen:
		return true
	default:
		return false
	}
}
