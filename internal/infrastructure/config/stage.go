package config

// Tile mapping types
const (
	TileTypeSolid  = "solid"
	TileTypeOneWay = "oneway"
)

// StageConfig is the root config for stage files.
// Collision rows are written top-down, one character per tile.
type StageConfig struct {
	ID          string                       `json:"id" yaml:"id"`
	Name        string                       `json:"name" yaml:"name"`
	Size        StageSizeConfig              `json:"size" yaml:"size"`
	PlayerSpawn PositionConfig               `json:"playerSpawn" yaml:"playerSpawn"`
	Layers      LayersConfig                 `json:"layers" yaml:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping" yaml:"tileMapping"`
}

type StageSizeConfig struct {
	Width    int     `json:"width" yaml:"width"`   // tiles, 0 derives it from the widest row
	Height   int     `json:"height" yaml:"height"` // tiles, 0 derives it from the row count
	TileSize float64 `json:"tileSize" yaml:"tileSize"`
}

// PositionConfig is a tile coordinate, column from the left and row from the top
type PositionConfig struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

type LayersConfig struct {
	Collision []string `json:"collision" yaml:"collision"`
}

type TileMappingConfig struct {
	Type string `json:"type" yaml:"type"`
}

// DefaultTileMapping is used when a stage file has no tileMapping section
func DefaultTileMapping() map[string]TileMappingConfig {
	return map[string]TileMappingConfig{
		"#": {Type: TileTypeSolid},
		"=": {Type: TileTypeOneWay},
	}
}
