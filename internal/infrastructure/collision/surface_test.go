package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platformkit/internal/domain/entity"
)

// createTestStage builds a 6x5 stage:
//
//	......
//	......
//	.===..
//	......
//	######
func createTestStage() *entity.Stage {
	rows := []string{
		"......",
		"......",
		".===..",
		"......",
		"######",
	}
	stage := &entity.Stage{Width: 6, Height: 5, TileSize: 1}
	stage.Tiles = make([][]entity.Tile, len(rows))
	for y, row := range rows {
		stage.Tiles[y] = make([]entity.Tile, len(row))
		for x, c := range row {
			switch c {
			case '#':
				stage.Tiles[y][x].Type = entity.TileSolid
			case '=':
				stage.Tiles[y][x].Type = entity.TileOneWay
			}
		}
	}
	stage.BuildPlatforms(100)
	return stage
}

func createTestSurfaces(t *testing.T) map[string]func(*entity.Stage) Surface {
	t.Helper()
	return map[string]func(*entity.Stage) Surface{
		BackendCP:     func(s *entity.Stage) Surface { return NewCPSpace(s) },
		BackendResolv: func(s *entity.Stage) Surface { return NewResolvSpace(s, nil) },
	}
}

const floorAndPlatform = entity.LayerGround | entity.LayerPlatform

func TestNewSurface(t *testing.T) {
	stage := createTestStage()

	s, err := NewSurface(BackendCP, stage, nil)
	require.NoError(t, err)
	assert.IsType(t, &CPSpace{}, s)

	s, err = NewSurface("", stage, nil)
	require.NoError(t, err)
	assert.IsType(t, &CPSpace{}, s, "cp is the default")

	s, err = NewSurface(BackendResolv, stage, entity.NewLayerRegistry())
	require.NoError(t, err)
	assert.IsType(t, &ResolvSpace{}, s)

	_, err = NewSurface("box2d", stage, nil)
	assert.ErrorContains(t, err, "unknown backend")
}

func TestSurface_CastRay(t *testing.T) {
	for name, build := range createTestSurfaces(t) {
		t.Run(name, func(t *testing.T) {
			s := build(createTestStage())

			tests := []struct {
				name     string
				origin   entity.Vec2
				dir      entity.Vec2
				maxDist  float64
				wantHit  bool
				wantDist float64
				oneWay   bool
			}{
				{"floor below", entity.Vec2{X: 4.5, Y: 1.5}, entity.Down, 2, true, 0.5, false},
				{"floor out of reach", entity.Vec2{X: 4.5, Y: 1.5}, entity.Down, 0.4, false, 0, false},
				{"platform first", entity.Vec2{X: 2.5, Y: 3.5}, entity.Down, 5, true, 0.5, true},
				{"right bound", entity.Vec2{X: 5.5, Y: 1.5}, entity.Right, 2, true, 0.5, false},
				{"left bound", entity.Vec2{X: 0.25, Y: 3.5}, entity.Left, 1, true, 0.25, false},
				{"ceiling bound", entity.Vec2{X: 4.5, Y: 4.5}, entity.Up, 1, true, 0.5, false},
				{"open air", entity.Vec2{X: 4.5, Y: 2.5}, entity.Up, 1, false, 0, false},
				{"starts inside the floor", entity.Vec2{X: 3, Y: 0.5}, entity.Down, 1, true, 0, false},
				{"starts inside the platform", entity.Vec2{X: 2.5, Y: 2.5}, entity.Down, 1, true, 0, true},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					hit, ok := s.CastRay(tt.origin, tt.dir, tt.maxDist, floorAndPlatform)
					require.Equal(t, tt.wantHit, ok)
					if !ok {
						return
					}
					assert.InDelta(t, tt.wantDist, hit.Distance, 1e-9)
					assert.Equal(t, tt.oneWay, hit.OneWay)
					assert.InDelta(t, tt.origin.X+tt.dir.X*hit.Distance, hit.Point.X, 1e-9)
					assert.InDelta(t, tt.origin.Y+tt.dir.Y*hit.Distance, hit.Point.Y, 1e-9)
				})
			}
		})
	}
}

func TestSurface_CastRayAll(t *testing.T) {
	for name, build := range createTestSurfaces(t) {
		t.Run(name, func(t *testing.T) {
			stage := createTestStage()
			s := build(stage)

			hits := s.CastRayAll(entity.Vec2{X: 2.5, Y: 3.5}, entity.Down, 5, floorAndPlatform)

			require.Len(t, hits, 3, "platform, floor, bottom bound")
			assert.True(t, hits[0].OneWay)
			assert.Same(t, stage.Platforms[0], hits[0].Platform)
			assert.Equal(t, entity.OwnerID(100), hits[0].Owner)
			assert.InDelta(t, 0.5, hits[0].Distance, 1e-9)
			assert.False(t, hits[1].OneWay)
			assert.Nil(t, hits[1].Platform)
			assert.InDelta(t, 2.5, hits[1].Distance, 1e-9)
			assert.InDelta(t, 3.5, hits[2].Distance, 1e-9)
			assert.NotEqual(t, hits[0].Surface, hits[1].Surface)
		})
	}
}

func TestSurface_LayerMask(t *testing.T) {
	for name, build := range createTestSurfaces(t) {
		t.Run(name, func(t *testing.T) {
			s := build(createTestStage())
			origin := entity.Vec2{X: 2.5, Y: 3.5}

			hit, ok := s.CastRay(origin, entity.Down, 5, entity.LayerGround)
			require.True(t, ok)
			assert.False(t, hit.OneWay, "platform layer is masked out")
			assert.InDelta(t, 2.5, hit.Distance, 1e-9)

			hits := s.CastRayAll(origin, entity.Down, 5, entity.LayerPlatform)
			require.Len(t, hits, 1)
			assert.True(t, hits[0].OneWay)

			_, ok = s.CastRay(origin, entity.Down, 5, 0)
			assert.False(t, ok)
			assert.Empty(t, s.CastRayAll(origin, entity.Down, 5, 0))
		})
	}
}

func TestSurface_DisabledPlatform(t *testing.T) {
	for name, build := range createTestSurfaces(t) {
		t.Run(name, func(t *testing.T) {
			stage := createTestStage()
			s := build(stage)
			origin := entity.Vec2{X: 2.5, Y: 3.5}

			stage.Platforms[0].DisableCollisionTemporarily(0.5)

			hit, ok := s.CastRay(origin, entity.Down, 5, floorAndPlatform)
			require.True(t, ok)
			assert.False(t, hit.OneWay, "the floor behind it is reported")
			assert.Len(t, s.CastRayAll(origin, entity.Down, 5, floorAndPlatform), 2)

			stage.Tick(0.5)
			hit, ok = s.CastRay(origin, entity.Down, 5, floorAndPlatform)
			require.True(t, ok)
			assert.True(t, hit.OneWay, "enabled again")
		})
	}
}

func TestSurface_Bodies(t *testing.T) {
	for name, build := range createTestSurfaces(t) {
		t.Run(name, func(t *testing.T) {
			s := build(createTestStage())
			body := entity.NewBody(4.5, 1.52, 0.5, 1)

			id := s.AddBody(body, 7, entity.LayerPlayer)
			assert.NotZero(t, id)

			// A ray from inside the body reports it at distance 0
			hit, ok := s.CastRay(entity.Vec2{X: 4.5, Y: 1.2}, entity.Down, 1, entity.AllLayers)
			require.True(t, ok)
			assert.Equal(t, id, hit.Surface)
			assert.Equal(t, entity.OwnerID(7), hit.Owner)
			assert.Equal(t, 0.0, hit.Distance)

			hits := s.CastRayAll(entity.Vec2{X: 4.5, Y: 1.2}, entity.Down, 1, entity.AllLayers)
			require.Len(t, hits, 2)
			assert.Equal(t, id, hits[0].Surface)
			assert.InDelta(t, 0.2, hits[1].Distance, 1e-9)

			// Not on a ground mask
			hit, ok = s.CastRay(entity.Vec2{X: 4.5, Y: 1.2}, entity.Down, 1, entity.LayerGround)
			require.True(t, ok)
			assert.NotEqual(t, id, hit.Surface)

			// Sync follows the body
			body.Position = entity.Vec2{X: 2.5, Y: 3.52}
			s.Sync()
			hit, ok = s.CastRay(entity.Vec2{X: 2.5, Y: 4.5}, entity.Down, 1, entity.LayerPlayer)
			require.True(t, ok)
			assert.Equal(t, id, hit.Surface)
			assert.InDelta(t, 0.48, hit.Distance, 1e-9)

			_, ok = s.CastRay(entity.Vec2{X: 4.5, Y: 1.2}, entity.Down, 1, entity.LayerPlayer)
			assert.False(t, ok, "the old place is empty")
		})
	}
}

func TestSurface_BodyFollowsEverySync(t *testing.T) {
	for name, build := range createTestSurfaces(t) {
		t.Run(name, func(t *testing.T) {
			s := build(createTestStage())
			body := entity.NewBody(1.5, 1.52, 0.5, 1)
			id := s.AddBody(body, 7, entity.LayerPlayer)

			for _, x := range []float64{2, 2.5, 3, 3.5, 4} {
				body.Position.X = x
				s.Sync()

				hit, ok := s.CastRay(entity.Vec2{X: x, Y: 1.5}, entity.Up, 1, entity.LayerPlayer)
				require.True(t, ok, "x=%v", x)
				assert.Equal(t, id, hit.Surface)
				assert.Equal(t, 0.0, hit.Distance, "origin inside the moved body")

				_, ok = s.CastRay(entity.Vec2{X: x - 0.5, Y: 1.5}, entity.Up, 1, entity.LayerPlayer)
				assert.False(t, ok, "x=%v: nothing left behind", x)
			}
		})
	}
}

func TestSurface_BodyResize(t *testing.T) {
	s := NewCPSpace(createTestStage())
	body := entity.NewBody(4.5, 2, 0.5, 1)
	id := s.AddBody(body, 1, entity.LayerPlayer)

	body.Height = 2
	s.Sync()

	hit, ok := s.CastRay(entity.Vec2{X: 4.5, Y: 4}, entity.Down, 2, entity.LayerPlayer)
	require.True(t, ok)
	assert.Equal(t, id, hit.Surface)
	assert.InDelta(t, 1, hit.Distance, 1e-9)
}

func TestSurface_NilStage(t *testing.T) {
	for _, s := range []Surface{NewCPSpace(nil), NewResolvSpace(nil, nil)} {
		_, ok := s.CastRay(entity.Vec2{}, entity.Down, 10, entity.AllLayers)
		assert.False(t, ok)
	}
}

func TestSortHits(t *testing.T) {
	hits := []entity.Hit{
		{Surface: 3, Distance: 1},
		{Surface: 2, Distance: 0},
		{Surface: 1, Distance: 1},
	}

	sortHits(hits)

	assert.Equal(t, []entity.SurfaceID{2, 1, 3}, []entity.SurfaceID{hits[0].Surface, hits[1].Surface, hits[2].Surface})
}
