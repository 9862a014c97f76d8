package ecs

import "github.com/younwookim/platformkit/internal/domain/entity"

// EntityID is a unique identifier for an entity (never recycled)
type EntityID uint64

// World holds all component maps and the next entity ID
type World struct {
	nextID EntityID

	// Components
	Position map[EntityID]Position
	Velocity map[EntityID]Velocity
	Collider map[EntityID]Collider
	Contacts map[EntityID]Contacts

	// Tags
	IsPlayer map[EntityID]struct{}

	// Singleton references
	PlayerID EntityID

	stage  *entity.Stage
	solids []entity.Rect
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:   1, // 0 is "nil"
		Position: make(map[EntityID]Position),
		Velocity: make(map[EntityID]Velocity),
		Collider: make(map[EntityID]Collider),
		Contacts: make(map[EntityID]Contacts),
		IsPlayer: make(map[EntityID]struct{}),
	}
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// DestroyEntity removes all components for an entity
func (w *World) DestroyEntity(id EntityID) {
	delete(w.Position, id)
	delete(w.Velocity, id)
	delete(w.Collider, id)
	delete(w.Contacts, id)
	delete(w.IsPlayer, id)
	if w.PlayerID == id {
		w.PlayerID = 0
	}
}

// Exists checks if an entity has Position component
func (w *World) Exists(id EntityID) bool {
	_, ok := w.Position[id]
	return ok
}

// SetStage replaces the static geometry bodies collide with.
// Call it again after the stage changes.
func (w *World) SetStage(stage *entity.Stage) {
	w.stage = stage
	w.solids = nil
	if stage != nil {
		w.solids = stage.Colliders()
	}
}

// Stage returns the current stage, nil if none is set
func (w *World) Stage() *entity.Stage {
	return w.stage
}

// CreateBody creates a box body centered on center
func (w *World) CreateBody(center entity.Vec2, width, height float64) EntityID {
	id := w.NewEntity()

	w.Position[id] = Position{X: center.X, Y: center.Y}
	w.Velocity[id] = Velocity{}
	w.Collider[id] = Collider{Width: width, Height: height}
	w.Contacts[id] = Contacts{}

	return id
}

// CreatePlayer creates the player body with its feet at feet, lifted by gap
// so it starts clear of the ground.
func (w *World) CreatePlayer(feet entity.Vec2, width, height, gap float64) EntityID {
	id := w.CreateBody(entity.Vec2{X: feet.X, Y: feet.Y + height/2 + gap}, width, height)
	w.IsPlayer[id] = struct{}{}

	w.PlayerID = id
	return id
}

// Body returns a handle that exposes id as a kinematic body
func (w *World) Body(id EntityID) BodyHandle {
	return BodyHandle{w: w, id: id}
}

// Player returns a handle to the player body
func (w *World) Player() BodyHandle {
	return w.Body(w.PlayerID)
}

// BodyHandle reads and writes one body's components
type BodyHandle struct {
	w  *World
	id EntityID
}

var _ entity.Kinematic = BodyHandle{}

// ID returns the entity behind the handle
func (h BodyHandle) ID() EntityID { return h.id }

// Bounds returns the collider box; ok is false without a sized collider
func (h BodyHandle) Bounds() (entity.Rect, bool) {
	if h.w == nil {
		return entity.Rect{}, false
	}
	col, ok := h.w.Collider[h.id]
	if !ok || col.Width <= 0 || col.Height <= 0 {
		return entity.Rect{}, false
	}
	pos, ok := h.w.Position[h.id]
	if !ok {
		return entity.Rect{}, false
	}
	return col.Rect(pos), true
}

// Velocity returns the body's velocity
func (h BodyHandle) Velocity() entity.Vec2 {
	return h.w.Velocity[h.id].Vec()
}

// SetVelocity replaces the body's velocity
func (h BodyHandle) SetVelocity(v entity.Vec2) {
	if !h.w.Exists(h.id) {
		return
	}
	h.w.Velocity[h.id] = Velocity{X: v.X, Y: v.Y}
}

// Position returns the collider center
func (h BodyHandle) Position() entity.Vec2 {
	return h.w.Position[h.id].Vec()
}

// SetPosition moves the body without sweeping
func (h BodyHandle) SetPosition(p entity.Vec2) {
	if !h.w.Exists(h.id) {
		return
	}
	h.w.Position[h.id] = Position{X: p.X, Y: p.Y}
}

// Contacts returns the contacts of the last update
func (h BodyHandle) Contacts() Contacts {
	return h.w.Contacts[h.id]
}
