package utils

import (
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

func TestVec32To64(t *testing.T) {
	if v := Vec32To64(mgl32.Vec3{1, -2.5, 3}); v != (mgl64.Vec3{1, -2.5, 3}) {
		t.Fatalf("unexpected vector %v", v)
	}
}

func TestBlockToCubePos(t *testing.T) {
	if p := BlockToCubePos([3]int32{-1, 64, 17}); p != (cube.Pos{-1, 64, 17}) {
		t.Fatalf("unexpected position %v", p)
	}
}
