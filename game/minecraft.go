package game

import "math"

var sinTable [65536]float64

func init() {
	for i := range sinTable {
		sinTable[i] = math.Sin(float64(i) * math.Pi * 2 / 65536)
	}
}

// MCSin returns the Minecraft sin of the given angle.
func MCSin(val float64) float64 {
	return sinTable[uint16(int64(val*10430.378))]
}

// MCCos returns the Minecraft cos of the given angle.
func MCCos(val float64) float64 {
	return sinTable[uint16(int64(val*10430.378+16384.0))]
}
