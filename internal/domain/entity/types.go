package entity

// EntityID is a unique identifier for an entity
type EntityID uint32

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileSolid
	TileOneWay
)

// Tile represents a single tile in the stage
type Tile struct {
	Type TileType
}

// Solid reports whether the tile blocks from every side
func (t Tile) Solid() bool { return t.Type == TileSolid }

// OneWay reports whether the tile blocks from above only
func (t Tile) OneWay() bool { return t.Type == TileOneWay }

// Stage is the tile world. Rows are stored top-down as authored;
// world coordinates are y-up with the bottom-left tile at the origin.
type Stage struct {
	Width     int // tiles
	Height    int // tiles
	TileSize  float64
	Tiles     [][]Tile
	Platforms []*Platform
	Spawn     Vec2 // where the player's feet start
}

// GetTile returns the tile at the given tile coordinates.
// Anything outside the stage is solid.
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TileSolid}
	}
	return s.Tiles[ty][tx]
}

// TileRect returns the world-space box of a tile
func (s *Stage) TileRect(tx, ty int) Rect {
	x := float64(tx) * s.TileSize
	y := float64(s.Height-1-ty) * s.TileSize
	return NewRect(x, y, s.TileSize, s.TileSize)
}

// TileAt converts a world point to tile coordinates
func (s *Stage) TileAt(p Vec2) (tx, ty int) {
	tx = floorDiv(p.X, s.TileSize)
	ty = s.Height - 1 - floorDiv(p.Y, s.TileSize)
	return tx, ty
}

// WorldWidth returns the stage width in world units
func (s *Stage) WorldWidth() float64 { return float64(s.Width) * s.TileSize }

// WorldHeight returns the stage height in world units
func (s *Stage) WorldHeight() float64 { return float64(s.Height) * s.TileSize }

// Bounds returns the world-space box of the whole stage
func (s *Stage) Bounds() Rect {
	return NewRect(0, 0, s.WorldWidth(), s.WorldHeight())
}

// SolidRects merges contiguous solid tiles into as few boxes as possible,
// expanding each rectangle greedily by width then height.
func (s *Stage) SolidRects() []Rect {
	processed := make([][]bool, s.Height)
	for y := range processed {
		processed[y] = make([]bool, s.Width)
	}

	var rects []Rect
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			if processed[y][x] || !s.Tiles[y][x].Solid() {
				continue
			}

			w := 1
			for x+w < s.Width && !processed[y][x+w] && s.Tiles[y][x+w].Solid() {
				w++
			}

			h := 1
		heightLoop:
			for y+h < s.Height {
				for xi := x; xi < x+w; xi++ {
					if processed[y+h][xi] || !s.Tiles[y+h][xi].Solid() {
						break heightLoop
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy][xx] = true
				}
			}

			// Bottom-left tile of the block is (x, y+h-1)
			origin := s.TileRect(x, y+h-1).Min
			rects = append(rects, NewRect(origin.X, origin.Y, float64(w)*s.TileSize, float64(h)*s.TileSize))
		}
	}
	return rects
}

// BoundaryRects returns one tile thick walls around the outside of the
// stage, matching GetTile treating everything out of bounds as solid.
func (s *Stage) BoundaryRects() []Rect {
	w, h, t := s.WorldWidth(), s.WorldHeight(), s.TileSize
	return []Rect{
		NewRect(-t, -t, w+2*t, t), // floor
		NewRect(-t, h, w+2*t, t),  // ceiling
		NewRect(-t, 0, t, h),      // left
		NewRect(w, 0, t, h),       // right
	}
}

// Colliders returns every solid box of the stage, bounds included
func (s *Stage) Colliders() []Rect {
	return append(s.SolidRects(), s.BoundaryRects()...)
}

// BuildPlatforms turns each horizontal run of one-way tiles into a Platform.
// IDs are assigned from firstID upward.
func (s *Stage) BuildPlatforms(firstID EntityID) {
	s.Platforms = s.Platforms[:0]
	id := firstID
	for y := 0; y < s.Height; y++ {
		x := 0
		for x < s.Width {
			if !s.Tiles[y][x].OneWay() {
				x++
				continue
			}
			start := x
			for x < s.Width && s.Tiles[y][x].OneWay() {
				x++
			}
			origin := s.TileRect(start, y).Min
			rect := NewRect(origin.X, origin.Y, float64(x-start)*s.TileSize, s.TileSize)
			s.Platforms = append(s.Platforms, NewPlatform(id, rect))
			id++
		}
	}
}

// Tick advances every platform's disable countdown
func (s *Stage) Tick(dt float64) {
	for _, p := range s.Platforms {
		p.Tick(dt)
	}
}

func floorDiv(v, size float64) int {
	q := v / size
	i := int(q)
	if q < 0 && float64(i) != q {
		i--
	}
	return i
}
