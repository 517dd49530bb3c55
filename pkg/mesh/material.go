package mesh

import (
	"iter"

	"github.com/Faultbox/meshstore/pkg/math"
)

// AddMaterial adds a material and returns its id. Materials come with faces.
func (m *Mesh) AddMaterial(name string, color math.Color) (int, error) {
	if err := m.checkFaces(); err != nil {
		return NullID, err
	}
	return m.materials.Add(Material{Name: name, Color: color}), nil
}

// Material returns the material with the given id.
func (m *Mesh) Material(id int) (Material, error) {
	if err := m.checkFaces(); err != nil {
		return Material{}, err
	}
	return m.materials.Get(id)
}

// SetMaterial replaces the name and color of a material.
func (m *Mesh) SetMaterial(id int, name string, color math.Color) error {
	if err := m.checkFaces(); err != nil {
		return err
	}
	mat, err := m.materials.ref(id)
	if err != nil {
		return err
	}
	mat.Name = name
	mat.Color = color
	return nil
}

// DeleteMaterial soft deletes a material. Faces using it keep the id until
// ClearFaceMaterialsOfDeletedMaterials runs.
func (m *Mesh) DeleteMaterial(id int) error {
	if err := m.checkFaces(); err != nil {
		return err
	}
	return m.materials.Remove(id)
}

// IsMaterialDeleted reports whether id addresses a deleted material.
func (m *Mesh) IsMaterialDeleted(id int) bool {
	return m.materials != nil && m.materials.IsDeleted(id)
}

// MaterialNumber returns the number of live materials.
func (m *Mesh) MaterialNumber() int {
	if m.materials == nil {
		return 0
	}
	return m.materials.Number()
}

// NextMaterialID returns the id the next added material will get.
func (m *Mesh) NextMaterialID() int {
	if m.materials == nil {
		return 0
	}
	return m.materials.NextID()
}

// Materials iterates live materials in id order.
func (m *Mesh) Materials() iter.Seq2[int, Material] {
	if m.materials == nil {
		return func(func(int, Material) bool) {}
	}
	return m.materials.All()
}
