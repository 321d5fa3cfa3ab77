package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Transform is an entity's placement. Rotation is in degrees around X, Y then Z.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

func IdentityTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix returns the model matrix: translation * rotation * scale.
func (t Transform) Matrix() mgl32.Mat4 {
	rotation := mgl32.HomogRotate3DZ(mgl32.DegToRad(t.Rotation.Z())).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(t.Rotation.Y()))).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(t.Rotation.X())))

	return mgl32.Translate3D(t.Position.Elem()).
		Mul4(rotation).
		Mul4(mgl32.Scale3D(t.Scale.Elem()))
}

type Entity struct {
	ID        uuid.UUID
	Name      string
	Tags      []string
	Transform Transform
}

func NewEntity(name string) *Entity {
	return &Entity{
		ID:        uuid.New(),
		Name:      name,
		Transform: IdentityTransform(),
	}
}

func (e *Entity) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
