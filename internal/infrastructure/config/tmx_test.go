package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" tiledversion="1.10.2" orientation="orthogonal" renderorder="right-down" width="4" height="3" tilewidth="16" tileheight="16" infinite="0" nextlayerid="4" nextobjectid="2">
 <tileset firstgid="1" name="tiles" tilewidth="16" tileheight="16" tilecount="4" columns="2">
  <image source="tiles.png" width="32" height="32"/>
 </tileset>
 <layer id="1" name="solid" width="4" height="3">
  <data encoding="csv">
1,0,0,0,
0,0,0,0,
1,1,1,1
</data>
 </layer>
 <layer id="2" name="oneway" width="4" height="3">
  <data encoding="csv">
0,0,0,0,
0,2,2,0,
0,0,0,0
</data>
 </layer>
 <objectgroup id="3" name="spawn">
  <object id="1" x="40" y="32"/>
 </objectgroup>
</map>
`

func TestLoadTMXStage(t *testing.T) {
	fsys := fstest.MapFS{
		"stages/tiny.tmx": {Data: []byte(testTMX)},
	}

	cfg, err := NewFSLoader(fsys, ".").LoadStage("tiny.tmx")
	require.NoError(t, err)

	assert.Equal(t, "tiny", cfg.ID)
	assert.Equal(t, StageSizeConfig{Width: 4, Height: 3, TileSize: 1}, cfg.Size)
	assert.Equal(t, []string{
		"#...",
		".==.",
		"####",
	}, cfg.Layers.Collision)
	assert.Equal(t, PositionConfig{X: 2, Y: 1}, cfg.PlayerSpawn)
	assert.Equal(t, DefaultTileMapping(), cfg.TileMapping)
}

func TestLoadTMXStage_Errors(t *testing.T) {
	noLayers := `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" width="2" height="1" tilewidth="16" tileheight="16">
 <layer id="1" name="decor" width="2" height="1">
  <data encoding="csv">0,0</data>
 </layer>
</map>
`
	fsys := fstest.MapFS{
		"decor.tmx": {Data: []byte(noLayers)},
		"bad.tmx":   {Data: []byte("<map")},
	}

	_, err := LoadTMXStage(fsys, "decor.tmx")
	assert.Error(t, err)

	_, err = LoadTMXStage(fsys, "bad.tmx")
	assert.Error(t, err)

	_, err = LoadTMXStage(fsys, "missing.tmx")
	assert.Error(t, err)
}
