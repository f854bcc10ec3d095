package wire

import "github.com/oomph-ac/movesync/utils"

// Legacy bitmask layout of relative flags.
const (
	bitX = iota
	bitY
	bitZ
	bitYaw
	bitPitch
)

// RelativeFlags marks, per axis, whether a value is a delta to apply on top of the current value
// (true) or a replacement (false). For velocity, a set flag on x, y or z means the current velocity
// on that axis is kept.
type RelativeFlags struct {
	X, Y, Z    bool
	Yaw, Pitch bool
}

// FlagsFromBitmask decodes the legacy bitmask encoding: x=1, y=2, z=4, yaw=8, pitch=16.
func FlagsFromBitmask(mask uint8) RelativeFlags {
	m := uint64(mask)
	return RelativeFlags{
		X:     utils.HasFlag(m, bitX),
		Y:     utils.HasFlag(m, bitY),
		Z:     utils.HasFlag(m, bitZ),
		Yaw:   utils.HasFlag(m, bitYaw),
		Pitch: utils.HasFlag(m, bitPitch),
	}
}

// FlagsFromSet decodes the named flag set encoding, where each present and true key marks the
// axis relative. Unknown keys are ignored.
func FlagsFromSet(set map[string]bool) RelativeFlags {
	return RelativeFlags{
		X:     set["x"],
		Y:     set["y"],
		Z:     set["z"],
		Yaw:   set["yaw"],
		Pitch: set["pitch"],
	}
}

// Bitmask encodes the flags using the legacy bitmask layout.
func (f RelativeFlags) Bitmask() uint8 {
	var mask uint8
	for bit, set := range [...]bool{f.X, f.Y, f.Z, f.Yaw, f.Pitch} {
		if set {
			mask |= 1 << bit
		}
	}
	return mask
}

// Apply returns current+value if relative is true, or value otherwise.
func Apply(relative bool, current, value float64) float64 {
	if relative {
		return current + value
	}
	return value
}
