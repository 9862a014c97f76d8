package config

import (
	"fmt"
	"io/fs"
	"math"
	"path"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Tiled layer and object group names
const (
	TMXSolidLayer  = "solid"
	TMXOneWayLayer = "oneway"
	TMXSpawnGroup  = "spawn"
)

// LoadTMXStage reads a Tiled map and converts it to a StageConfig.
// Every non-empty tile in the "solid" layer becomes a solid tile, every
// non-empty tile in the "oneway" layer a one-way tile. The first object of
// the "spawn" group marks the player spawn. One map tile is one world unit.
func LoadTMXStage(fsys fs.FS, tmxPath string) (*StageConfig, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	if levelMap.Width <= 0 || levelMap.Height <= 0 {
		return nil, fmt.Errorf("load TMX %s: empty map", tmxPath)
	}

	rows := make([][]byte, levelMap.Height)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(".", levelMap.Width))
	}

	found := false
	for _, layer := range levelMap.Layers {
		var ch byte
		switch strings.ToLower(layer.Name) {
		case TMXSolidLayer:
			ch = '#'
		case TMXOneWayLayer:
			ch = '='
		default:
			continue
		}
		found = true
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				i := y*levelMap.Width + x
				if i >= len(layer.Tiles) || layer.Tiles[i].IsNil() {
					continue
				}
				// Solid wins when both layers cover a cell
				if rows[y][x] == '#' {
					continue
				}
				rows[y][x] = ch
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("load TMX %s: no %q or %q layer", tmxPath, TMXSolidLayer, TMXOneWayLayer)
	}

	cfg := &StageConfig{
		ID:   strings.TrimSuffix(path.Base(tmxPath), ".tmx"),
		Name: strings.TrimSuffix(path.Base(tmxPath), ".tmx"),
		Size: StageSizeConfig{
			Width:    levelMap.Width,
			Height:   levelMap.Height,
			TileSize: 1,
		},
		TileMapping: DefaultTileMapping(),
	}
	for _, row := range rows {
		cfg.Layers.Collision = append(cfg.Layers.Collision, string(row))
	}

	for _, og := range levelMap.ObjectGroups {
		if strings.ToLower(og.Name) != TMXSpawnGroup || len(og.Objects) == 0 {
			continue
		}
		o := og.Objects[0]
		tw := float64(levelMap.TileWidth)
		th := float64(levelMap.TileHeight)
		cfg.PlayerSpawn = PositionConfig{
			X: clampInt(int((o.X+o.Width/2)/tw), 0, levelMap.Width-1),
			Y: clampInt(int(math.Ceil((o.Y+o.Height)/th))-1, 0, levelMap.Height-1),
		}
		break
	}

	return cfg, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
