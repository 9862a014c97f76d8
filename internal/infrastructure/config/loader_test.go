package config

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadPhysics(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadPhysics()
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Display.ScreenWidth)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Equal(t, -29.43, cfg.Physics.Gravity)
	assert.Equal(t, 0.2, cfg.Jump.CoyoteTime)
	assert.Equal(t, 1, cfg.Jump.ExtraJumps)
	assert.Equal(t, DashVerticalPin, cfg.Dash.VerticalPolicy)
	assert.Equal(t, []string{"ground", "platform"}, cfg.Collision.GroundLayers)
}

func TestLoader_LoadStage(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadStage("demo")
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.ID)
	assert.Equal(t, 40, cfg.Size.Width)
	assert.Equal(t, 20, cfg.Size.Height)
	assert.Equal(t, 1.0, cfg.Size.TileSize)
	assert.Equal(t, PositionConfig{X: 3, Y: 17}, cfg.PlayerSpawn)
	assert.Len(t, cfg.Layers.Collision, 20)

	wall, ok := cfg.TileMapping["#"]
	require.True(t, ok)
	assert.Equal(t, TileTypeSolid, wall.Type)
}

func TestLoader_LoadAll(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadAll("demo")
	require.NoError(t, err)

	assert.NotNil(t, cfg.Physics)
	assert.NotNil(t, cfg.Stage)
}

func TestLoader_YAMLFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"physics.yaml": {Data: []byte(`
jump:
  force: 12
  extraJumps: 2
dash:
  verticalPolicy: preserve
`)},
		"stages/tiny.yaml": {Data: []byte(`
id: tiny
size:
  tileSize: 1
layers:
  collision:
    - "...."
    - "####"
`)},
	}
	loader := NewFSLoader(fsys, ".")

	cfg, err := loader.LoadPhysics()
	require.NoError(t, err)
	assert.Equal(t, 12.0, cfg.Jump.Force)
	assert.Equal(t, 2, cfg.Jump.ExtraJumps)
	assert.Equal(t, DashVerticalPreserve, cfg.Dash.VerticalPolicy)
	// Untouched fields keep defaults
	assert.Equal(t, 0.2, cfg.Jump.BufferTime)
	assert.Equal(t, 4, cfg.Collision.VerticalRayCount)

	st, err := loader.LoadStage("tiny")
	require.NoError(t, err)
	assert.Equal(t, "tiny", st.ID)
	assert.Equal(t, DefaultTileMapping(), st.TileMapping)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"missing", fstest.MapFS{}},
		{"malformed json", fstest.MapFS{"physics.json": {Data: []byte("{")}}},
		{"malformed yaml", fstest.MapFS{"physics.yaml": {Data: []byte("jump: [")}}},
		{"invalid values", fstest.MapFS{"physics.json": {Data: []byte(`{"dash":{"duration":0}}`)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFSLoader(tt.fsys, ".").LoadPhysics()
			assert.Error(t, err)
		})
	}

	_, err := NewFSLoader(fstest.MapFS{}, ".").LoadStage("nowhere")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestPhysicsConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultPhysicsConfig().Validate())

	tests := []struct {
		name   string
		mutate func(c *PhysicsConfig)
		want   string
	}{
		{"collider width", func(c *PhysicsConfig) { c.Collision.ColliderWidth = 0 }, "colliderWidth"},
		{"skin too large", func(c *PhysicsConfig) { c.Collision.SkinWidth = 0.3 }, "skinWidth"},
		{"ray count", func(c *PhysicsConfig) { c.Collision.VerticalRayCount = 0 }, "verticalRayCount"},
		{"dash duration", func(c *PhysicsConfig) { c.Dash.Duration = 0 }, "dash.duration"},
		{"dash policy", func(c *PhysicsConfig) { c.Dash.VerticalPolicy = "float" }, "verticalPolicy"},
		{"landing reset", func(c *PhysicsConfig) { c.Jump.LandingReset = "" }, "landingReset"},
		{"positive down force", func(c *PhysicsConfig) { c.DownJump.Force = 5 }, "downJump.force"},
		{"negative extra jumps", func(c *PhysicsConfig) { c.Jump.ExtraJumps = -1 }, "extraJumps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPhysicsConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPhysicsConfig_ValidateJoinsErrors(t *testing.T) {
	cfg := DefaultPhysicsConfig()
	cfg.Dash.Duration = 0
	cfg.Jump.CutMultiplier = 2

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dash.duration")
	assert.Contains(t, err.Error(), "cutMultiplier")
}

func TestIsPhysicsFile(t *testing.T) {
	assert.True(t, IsPhysicsFile("/tmp/configs/physics.json"))
	assert.True(t, IsPhysicsFile("physics.YAML"))
	assert.False(t, IsPhysicsFile("stages/demo.json"))
	assert.False(t, IsPhysicsFile("physics.txt"))
	assert.True(t, IsConfigFile("a.yml"))
}
