package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStage builds a 4x3 stage:
//
//	#..#
//	.==.
//	####
func createTestStage() *Stage {
	e := Tile{Type: TileEmpty}
	s := Tile{Type: TileSolid}
	o := Tile{Type: TileOneWay}
	stage := &Stage{
		Width:    4,
		Height:   3,
		TileSize: 1,
		Tiles: [][]Tile{
			{s, e, e, s},
			{e, o, o, e},
			{s, s, s, s},
		},
	}
	stage.BuildPlatforms(1)
	return stage
}

func TestStage_GetTile(t *testing.T) {
	stage := createTestStage()

	tests := []struct {
		name     string
		tx, ty   int
		wantType TileType
	}{
		{"top-left solid", 0, 0, TileSolid},
		{"top-center empty", 1, 0, TileEmpty},
		{"middle one-way", 1, 1, TileOneWay},
		{"floor", 2, 2, TileSolid},
		{"negative x", -1, 0, TileSolid},
		{"y too large", 0, 10, TileSolid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, stage.GetTile(tt.tx, tt.ty).Type)
		})
	}
}

func TestStage_TileRect_FlipsRows(t *testing.T) {
	stage := createTestStage()

	// Bottom row in the file sits at y=0 in world space
	assert.Equal(t, NewRect(0, 0, 1, 1), stage.TileRect(0, 2))
	assert.Equal(t, NewRect(3, 2, 1, 1), stage.TileRect(3, 0))

	tx, ty := stage.TileAt(Vec2{3.5, 2.5})
	assert.Equal(t, 3, tx)
	assert.Equal(t, 0, ty)

	tx, ty = stage.TileAt(Vec2{-0.5, 0.5})
	assert.Equal(t, -1, tx)
	assert.Equal(t, 2, ty)
}

func TestStage_SolidRects(t *testing.T) {
	stage := createTestStage()

	rects := stage.SolidRects()
	require.Len(t, rects, 3)
	assert.Contains(t, rects, NewRect(0, 2, 1, 1))
	assert.Contains(t, rects, NewRect(3, 2, 1, 1))
	assert.Contains(t, rects, NewRect(0, 0, 4, 1))
}

func TestStage_SolidRects_MergesBlocks(t *testing.T) {
	s := Tile{Type: TileSolid}
	stage := &Stage{
		Width:    2,
		Height:   2,
		TileSize: 2,
		Tiles:    [][]Tile{{s, s}, {s, s}},
	}

	rects := stage.SolidRects()
	require.Len(t, rects, 1)
	assert.Equal(t, NewRect(0, 0, 4, 4), rects[0])
}

func TestStage_Colliders(t *testing.T) {
	stage := createTestStage()

	walls := stage.BoundaryRects()
	require.Len(t, walls, 4)
	assert.Equal(t, NewRect(-1, -1, 6, 1), walls[0])
	assert.Equal(t, NewRect(-1, 3, 6, 1), walls[1])
	assert.Equal(t, NewRect(-1, 0, 1, 3), walls[2])
	assert.Equal(t, NewRect(4, 0, 1, 3), walls[3])

	for _, w := range walls {
		assert.False(t, w.Overlaps(stage.Bounds()), "walls sit outside the stage")
	}
	assert.Len(t, stage.Colliders(), 7)
}

func TestStage_BuildPlatforms(t *testing.T) {
	stage := createTestStage()

	require.Len(t, stage.Platforms, 1)
	p := stage.Platforms[0]
	assert.Equal(t, EntityID(1), p.ID)
	assert.Equal(t, NewRect(1, 1, 2, 1), p.Rect)
	assert.True(t, p.Enabled())
}

func TestStage_Tick(t *testing.T) {
	stage := createTestStage()
	p := stage.Platforms[0]

	p.DisableCollisionTemporarily(0.25)
	assert.False(t, p.Enabled())

	stage.Tick(0.125)
	assert.Equal(t, 0.125, p.DisabledFor())
	assert.False(t, p.Enabled())

	stage.Tick(0.5)
	assert.Equal(t, 0.0, p.DisabledFor())
	assert.True(t, p.Enabled())
}

func TestPlatform_DisableReplacesRemaining(t *testing.T) {
	p := NewPlatform(7, NewRect(0, 0, 2, 0.5))

	p.DisableCollisionTemporarily(1)
	p.DisableCollisionTemporarily(0.25)
	assert.Equal(t, 0.25, p.DisabledFor())

	p.DisableCollisionTemporarily(-1)
	assert.True(t, p.Enabled())
}

func TestStage_WorldSize(t *testing.T) {
	stage := createTestStage()
	stage.TileSize = 16

	assert.Equal(t, 64.0, stage.WorldWidth())
	assert.Equal(t, 48.0, stage.WorldHeight())
	assert.Equal(t, NewRect(0, 0, 64, 48), stage.Bounds())
}

func TestTileTypes(t *testing.T) {
	assert.Equal(t, TileType(0), TileEmpty)
	assert.Equal(t, TileType(1), TileSolid)
	assert.Equal(t, TileType(2), TileOneWay)
}
