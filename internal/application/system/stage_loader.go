package system

import (
	"fmt"
	"unicode/utf8"

	"github.com/younwookim/platformkit/internal/domain/entity"
	"github.com/younwookim/platformkit/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage entity.
// Each merged run of one-way tiles becomes a Platform.
func LoadStage(cfg *config.StageConfig) (*entity.Stage, error) {
	if cfg.Size.TileSize <= 0 {
		return nil, fmt.Errorf("stage %s: tileSize must be positive, got %v", cfg.ID, cfg.Size.TileSize)
	}
	if len(cfg.Layers.Collision) == 0 {
		return nil, fmt.Errorf("stage %s: empty collision layer", cfg.ID)
	}

	tileWidth := cfg.Size.Width
	if tileWidth <= 0 {
		for _, row := range cfg.Layers.Collision {
			tileWidth = max(tileWidth, utf8.RuneCountInString(row))
		}
	}
	tileHeight := cfg.Size.Height
	if tileHeight <= 0 {
		tileHeight = len(cfg.Layers.Collision)
	}

	mapping := cfg.TileMapping
	if len(mapping) == 0 {
		mapping = config.DefaultTileMapping()
	}

	tiles := make([][]entity.Tile, tileHeight)
	for y := range tiles {
		tiles[y] = make([]entity.Tile, tileWidth)
		if y >= len(cfg.Layers.Collision) {
			continue
		}
		x := 0
		for _, char := range cfg.Layers.Collision[y] {
			if x >= tileWidth {
				break
			}
			m, ok := mapping[string(char)]
			if ok {
				switch m.Type {
				case config.TileTypeSolid:
					tiles[y][x] = entity.Tile{Type: entity.TileSolid}
				case config.TileTypeOneWay:
					tiles[y][x] = entity.Tile{Type: entity.TileOneWay}
				default:
					return nil, fmt.Errorf("stage %s: unknown tile type %q for %q", cfg.ID, m.Type, string(char))
				}
			}
			x++
		}
	}

	stage := &entity.Stage{
		Width:    tileWidth,
		Height:   tileHeight,
		TileSize: cfg.Size.TileSize,
		Tiles:    tiles,
	}
	stage.BuildPlatforms(1)

	spawn := stage.TileRect(cfg.PlayerSpawn.X, cfg.PlayerSpawn.Y)
	stage.Spawn = entity.Vec2{X: spawn.Center().X, Y: spawn.Min.Y}
	return stage, nil
}
