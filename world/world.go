package world

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// ChunkSource is an interface that returns block information like a regular chunk. *chunk.Chunk
// from dragonfly implements it.
type ChunkSource interface {
	// Block returns the block runtime ID at the given position and layer of the chunk source.
	Block(x uint8, y int16, z uint8, layer uint8) (rid uint32)
}

// World is the client's view of the chunks the server sent. A chunk may be registered without any
// block data, in which case it only counts as loaded and reads as air unless blocks were set in it.
type World struct {
	lastCleanPos protocol.ChunkPos
	cleaned      bool

	chunks       map[protocol.ChunkPos]ChunkSource
	blockUpdates map[protocol.ChunkPos]map[cube.Pos]world.Block

	log *logrus.Logger

	deadlock.RWMutex
}

// New creates an empty World. log may be nil.
func New(log *logrus.Logger) *World {
	return &World{
		chunks:       make(map[protocol.ChunkPos]ChunkSource),
		blockUpdates: make(map[protocol.ChunkPos]map[cube.Pos]world.Block),
		log:          log,
	}
}

// AddChunk adds a chunk to the world, replacing any chunk and block updates previously held at the
// same position. c may be nil.
func (w *World) AddChunk(chunkPos protocol.ChunkPos, c ChunkSource) {
	w.Lock()
	defer w.Unlock()

	w.chunks[chunkPos] = c
	delete(w.blockUpdates, chunkPos)
}

// RemoveChunk removes the chunk at the position passed, if any.
func (w *World) RemoveChunk(chunkPos protocol.ChunkPos) {
	w.Lock()
	defer w.Unlock()

	delete(w.chunks, chunkPos)
	delete(w.blockUpdates, chunkPos)
}

// ChunkLoaded returns true if the chunk at the position passed was added to the world.
func (w *World) ChunkLoaded(chunkPos protocol.ChunkPos) bool {
	w.RLock()
	defer w.RUnlock()

	_, ok := w.chunks[chunkPos]
	return ok
}

// ColumnLoaded returns true if the chunk column containing pos is loaded.
func (w *World) ColumnLoaded(pos mgl64.Vec3) bool {
	return w.ChunkLoaded(ChunkPosOf(pos))
}

// Block returns the block at the position passed. Positions outside loaded chunks or outside the
// height range of the overworld are air.
func (w *World) Block(pos cube.Pos) world.Block {
	if pos.OutOfBounds(world.Overworld.Range()) {
		return block.Air{}
	}
	chunkPos := protocol.ChunkPos{int32(pos[0]) >> 4, int32(pos[2]) >> 4}

	w.RLock()
	defer w.RUnlock()

	if b, ok := w.blockUpdates[chunkPos][pos]; ok {
		return b
	}
	c := w.chunks[chunkPos]
	if c == nil {
		return block.Air{}
	}

	rid := c.Block(uint8(pos[0]&15), int16(pos[1]), uint8(pos[2]&15), 0)
	if b, ok := world.BlockByRuntimeID(rid); ok {
		return b
	}
	return block.Air{}
}

// SetBlock sets the block at the position passed. The update is kept until the chunk holding it is
// replaced or removed.
func (w *World) SetBlock(pos cube.Pos, b world.Block) {
	if pos.OutOfBounds(world.Overworld.Range()) {
		return
	}
	chunkPos := protocol.ChunkPos{int32(pos[0]) >> 4, int32(pos[2]) >> 4}

	w.Lock()
	defer w.Unlock()

	if w.blockUpdates[chunkPos] == nil {
		w.blockUpdates[chunkPos] = make(map[cube.Pos]world.Block)
	}
	w.blockUpdates[chunkPos][pos] = b
}

// Solid returns true if the block at the position passed is anything other than air.
func (w *World) Solid(pos cube.Pos) bool {
	_, air := w.Block(pos).(block.Air)
	return !air
}

// CleanChunks removes all chunks outside the given chunk radius around pos.
func (w *World) CleanChunks(radius int32, pos protocol.ChunkPos) {
	w.Lock()
	defer w.Unlock()

	if w.cleaned && pos == w.lastCleanPos {
		return
	}
	w.lastCleanPos, w.cleaned = pos, true

	for chunkPos := range w.chunks {
		if chunkInRange(radius, chunkPos, pos) {
			continue
		}
		delete(w.chunks, chunkPos)
		delete(w.blockUpdates, chunkPos)
		if w.log != nil {
			w.log.Debugf("removed chunk %v out of radius %d around %v", chunkPos, radius, pos)
		}
	}
}

// PurgeChunks removes all chunks from the world.
func (w *World) PurgeChunks() {
	w.Lock()
	defer w.Unlock()

	clear(w.chunks)
	clear(w.blockUpdates)
	w.cleaned = false
}

// ChunkPosOf returns the position of the chunk column containing pos.
func ChunkPosOf(pos mgl64.Vec3) protocol.ChunkPos {
	return protocol.ChunkPos{int32(math.Floor(pos[0])) >> 4, int32(math.Floor(pos[2])) >> 4}
}

// chunkInRange returns true if the chunk position is within the given radius of the chunk position.
func chunkInRange(radius int32, chunkPos, pos protocol.ChunkPos) bool {
	diffX, diffZ := pos[0]-chunkPos[0], pos[1]-chunkPos[1]
	dist := math32.Sqrt(float32(diffX*diffX) + float32(diffZ*diffZ))

	return int32(dist) <= radius
}
