package utils

import "github.com/df-mc/dragonfly/server/block/cube"

// BlockToCubePos converts a block position sent over the network to a cube.Pos.
func BlockToCubePos(p [3]int32) cube.Pos {
	return cube.Pos{int(p[0]), int(p[1]), int(p[2])}
}
