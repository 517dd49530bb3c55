package script

import (
	"fmt"
	stdmath "math"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/meshstore/internal/logger"
	"github.com/Faultbox/meshstore/pkg/math"
	"github.com/Faultbox/meshstore/pkg/mesh"
)

// Result records what one op did.
type Result struct {
	Index      int         `yaml:"index"`
	Op         string      `yaml:"op"`
	IDs        []int       `yaml:"ids,omitempty,flow"`
	Map        []int       `yaml:"map,omitempty,flow"`
	Removal    *Removal    `yaml:"removal,omitempty"`
	Compaction *Compaction `yaml:"compaction,omitempty"`
	Violations []string    `yaml:"violations,omitempty"`
}

// Removal mirrors mesh.Removal for output.
type Removal struct {
	Faces         []int `yaml:"faces,omitempty,flow"`
	Polylines     []int `yaml:"polylines,omitempty,flow"`
	Edges         []int `yaml:"edges,omitempty,flow"`
	FaceMaterials []int `yaml:"face_materials,omitempty,flow"`
}

// Compaction mirrors mesh.Compaction for output.
type Compaction struct {
	Vertices  []int `yaml:"vertices,omitempty,flow"`
	Polylines []int `yaml:"polylines,omitempty,flow"`
	Faces     []int `yaml:"faces,omitempty,flow"`
	Edges     []int `yaml:"edges,omitempty,flow"`
	Materials []int `yaml:"materials,omitempty,flow"`
}

type handler func(m *mesh.Mesh, op Op, res *Result) error

var handlers = map[string]handler{
	"add_vertex":        addVertex,
	"add_vertices":      addVertices,
	"allocate_vertices": allocateVertices,
	"add_face":          addFace,
	"allocate_faces":    allocateFaces,
	"add_polyline":      addPolyline,
	"add_edge":          addEdge,
	"add_material":      addMaterial,

	"delete_vertex":   deleteOp((*mesh.Mesh).DeleteVertex),
	"delete_face":     deleteOp((*mesh.Mesh).DeleteFace),
	"delete_polyline": deleteOp((*mesh.Mesh).DeletePolyline),
	"delete_edge":     deleteOp((*mesh.Mesh).DeleteEdge),
	"delete_material": deleteOp((*mesh.Mesh).DeleteMaterial),

	"set_vertex_point":  setVertexPoint,
	"set_vertex_normal": setVertexNormal,
	"set_vertex_color":  setVertexColor,
	"set_face_vertices": setFaceVertices,
	"set_face_color":    setFaceColor,
	"set_face_material": setFaceMaterial,
	"enable":            enable,
	"disable":           disable,

	"remove_faces_with_deleted_vertices":     passOp(mesh.RemoveFacesWithDeletedVertices),
	"remove_polylines_with_deleted_vertices": passOp(mesh.RemovePolylinesWithDeletedVertices),
	"remove_edges_with_deleted_vertices":     passOp(mesh.RemoveEdgesWithDeletedVertices),
	"remove_edges_with_deleted_faces":        passOp(mesh.RemoveEdgesWithDeletedFaces),
	"clear_deleted_face_materials":           passOp(mesh.ClearFaceMaterialsOfDeletedMaterials),
	"make_consistent":                        makeConsistent,

	"compact_vertices":  compactOp((*mesh.Mesh).CompactVertices),
	"compact_polylines": compactOp((*mesh.Mesh).CompactPolylines),
	"compact_faces":     compactOp((*mesh.Mesh).CompactFaces),
	"compact_edges":     compactOp((*mesh.Mesh).CompactEdges),
	"compact_materials": compactOp((*mesh.Mesh).CompactMaterials),
	"compact_all":       compactAll,

	"transform": transform,
	"validate":  validate,
}

// Runner applies ops to one mesh.
type Runner struct {
	mesh *mesh.Mesh
	log  *zap.Logger
}

// NewRunner returns a runner editing m.
func NewRunner(m *mesh.Mesh) *Runner {
	return &Runner{mesh: m, log: logger.Named("script")}
}

// Mesh returns the mesh being edited.
func (r *Runner) Mesh() *mesh.Mesh {
	return r.mesh
}

// Step applies a single op. index is only used for reporting.
func (r *Runner) Step(index int, op Op) (Result, error) {
	res := Result{Index: index, Op: op.Op}
	h, ok := handlers[op.Op]
	if !ok {
		return res, fmt.Errorf("op %d: %w: %q", index, ErrUnknownOp, op.Op)
	}
	if err := h(r.mesh, op, &res); err != nil {
		return res, fmt.Errorf("op %d (%s): %w", index, op.Op, err)
	}
	r.log.Debug("op applied",
		zap.Int("index", index),
		zap.String("op", op.Op),
		zap.Ints("ids", res.IDs))
	return res, nil
}

// Run applies ops in order and stops at the first failing op. The results
// of every applied op are returned, the failing one included.
func (r *Runner) Run(ops []Op) ([]Result, error) {
	results := make([]Result, 0, len(ops))
	for i, op := range ops {
		res, err := r.Step(i, op)
		results = append(results, res)
		if err != nil {
			r.log.Warn("script stopped", zap.Int("index", i), zap.Error(err))
			return results, err
		}
	}
	r.log.Info("script finished",
		zap.Int("ops", len(ops)),
		zap.Int("vertices", r.mesh.VertexNumber()),
		zap.Int("faces", r.mesh.FaceNumber()))
	return results, nil
}

// Run builds the script's mesh from def and extra attributes, then runs
// every op. The mesh is returned even when an op fails.
func Run(s *Script, def mesh.Options, extra []string) (*mesh.Mesh, []Result, error) {
	m, err := s.NewMesh(def, extra)
	if err != nil {
		return nil, nil, err
	}
	results, err := NewRunner(m).Run(s.Ops)
	return m, results, err
}

func point(v []float64) (math.Vec3, error) {
	if len(v) != 3 {
		return math.Vec3{}, fmt.Errorf("point needs 3 components, got %d", len(v))
	}
	return math.Vec3FromSlice(v), nil
}

func addVertex(m *mesh.Mesh, op Op, res *Result) error {
	p, err := point(op.Point)
	if err != nil {
		return err
	}
	res.IDs = []int{m.AddVertex(p)}
	return nil
}

func addVertices(m *mesh.Mesh, op Op, res *Result) error {
	ps := make([]math.Vec3, len(op.Points))
	for i, v := range op.Points {
		p, err := point(v)
		if err != nil {
			return fmt.Errorf("points[%d]: %w", i, err)
		}
		ps[i] = p
	}
	first := m.AddVertices(ps...)
	res.IDs = idRange(first, len(ps))
	return nil
}

func allocateVertices(m *mesh.Mesh, op Op, res *Result) error {
	first, err := m.AllocateVertices(op.Count)
	if err != nil {
		return err
	}
	res.IDs = idRange(first, op.Count)
	return nil
}

func addFace(m *mesh.Mesh, op Op, res *Result) error {
	id, err := m.AddFace(op.Vertices...)
	if err != nil {
		return err
	}
	res.IDs = []int{id}
	return nil
}

func allocateFaces(m *mesh.Mesh, op Op, res *Result) error {
	first, err := m.AllocateFaces(op.Count)
	if err != nil {
		return err
	}
	res.IDs = idRange(first, op.Count)
	return nil
}

func addPolyline(m *mesh.Mesh, op Op, res *Result) error {
	id, err := m.AddPolyline(op.Vertices...)
	if err != nil {
		return err
	}
	res.IDs = []int{id}
	return nil
}

func addEdge(m *mesh.Mesh, op Op, res *Result) error {
	if len(op.Vertices) != 2 {
		return fmt.Errorf("%w: edge needs 2 vertices, got %d", mesh.ErrArity, len(op.Vertices))
	}
	var id int
	var err error
	if op.Face != nil {
		id, err = m.AddFaceEdge(op.Vertices[0], op.Vertices[1], *op.Face)
	} else {
		id, err = m.AddEdge(op.Vertices[0], op.Vertices[1])
	}
	if err != nil {
		return err
	}
	res.IDs = []int{id}
	return nil
}

func addMaterial(m *mesh.Mesh, op Op, res *Result) error {
	c := math.Gray
	if op.Color != "" {
		var err error
		if c, err = math.ParseColor(op.Color); err != nil {
			return err
		}
	}
	id, err := m.AddMaterial(op.Name, c)
	if err != nil {
		return err
	}
	res.IDs = []int{id}
	return nil
}

func deleteOp(del func(*mesh.Mesh, int) error) handler {
	return func(m *mesh.Mesh, op Op, res *Result) error {
		if err := del(m, op.ID); err != nil {
			return err
		}
		res.IDs = []int{op.ID}
		return nil
	}
}

func setVertexPoint(m *mesh.Mesh, op Op, res *Result) error {
	p, err := point(op.Point)
	if err != nil {
		return err
	}
	res.IDs = []int{op.ID}
	return m.SetVertexPoint(op.ID, p)
}

func setVertexNormal(m *mesh.Mesh, op Op, res *Result) error {
	n, err := point(op.Point)
	if err != nil {
		return err
	}
	res.IDs = []int{op.ID}
	return m.VertexNormals().Set(op.ID, n)
}

func setVertexColor(m *mesh.Mesh, op Op, res *Result) error {
	c, err := math.ParseColor(op.Color)
	if err != nil {
		return err
	}
	res.IDs = []int{op.ID}
	return m.VertexColors().Set(op.ID, c)
}

func setFaceVertices(m *mesh.Mesh, op Op, res *Result) error {
	res.IDs = []int{op.ID}
	return m.SetFaceVertices(op.ID, op.Vertices...)
}

func setFaceColor(m *mesh.Mesh, op Op, res *Result) error {
	c, err := math.ParseColor(op.Color)
	if err != nil {
		return err
	}
	res.IDs = []int{op.ID}
	return m.FaceColors().Set(op.ID, c)
}

func setFaceMaterial(m *mesh.Mesh, op Op, res *Result) error {
	res.IDs = []int{op.ID}
	return m.FaceMaterials().Set(op.ID, op.Material)
}

func enable(m *mesh.Mesh, op Op, _ *Result) error {
	return m.Enable(mesh.Attr(op.Attr))
}

func disable(m *mesh.Mesh, op Op, _ *Result) error {
	return m.Disable(mesh.Attr(op.Attr))
}

func passOp(pass func(*mesh.Mesh) ([]int, error)) handler {
	return func(m *mesh.Mesh, _ Op, res *Result) error {
		ids, err := pass(m)
		res.IDs = ids
		return err
	}
}

func makeConsistent(m *mesh.Mesh, _ Op, res *Result) error {
	r, err := mesh.MakeConsistent(m)
	res.Removal = &Removal{
		Faces:         r.Faces,
		Polylines:     r.Polylines,
		Edges:         r.Edges,
		FaceMaterials: r.FaceMaterials,
	}
	return err
}

func compactOp(compact func(*mesh.Mesh) ([]int, error)) handler {
	return func(m *mesh.Mesh, _ Op, res *Result) error {
		cm, err := compact(m)
		res.Map = cm
		return err
	}
}

func compactAll(m *mesh.Mesh, _ Op, res *Result) error {
	c, err := m.CompactAll()
	if err != nil {
		return err
	}
	res.Compaction = &Compaction{
		Vertices:  c.Vertices,
		Polylines: c.Polylines,
		Faces:     c.Faces,
		Edges:     c.Edges,
		Materials: c.Materials,
	}
	return nil
}

func transform(m *mesh.Mesh, op Op, _ *Result) error {
	mat, err := op.matrix()
	if err != nil {
		return err
	}
	mesh.Transform(m, mat)
	return nil
}

// matrix composes translate * rotate * scale.
func (op Op) matrix() (math.Mat4, error) {
	mat := math.Identity()
	if op.Translate != nil {
		t, err := point(op.Translate)
		if err != nil {
			return mat, fmt.Errorf("translate: %w", err)
		}
		mat = mat.Mul(math.Translate(t))
	}
	if op.Rotate != nil {
		axis, err := point(op.Rotate.Axis)
		if err != nil {
			return mat, fmt.Errorf("rotate axis: %w", err)
		}
		if axis.Length() == 0 {
			return mat, fmt.Errorf("rotate axis is zero")
		}
		q := math.QuatFromAxisAngle(axis, op.Rotate.Degrees*stdmath.Pi/180)
		mat = mat.Mul(q.ToMat4())
	}
	if op.Scale != nil {
		s, err := point(op.Scale)
		if err != nil {
			return mat, fmt.Errorf("scale: %w", err)
		}
		mat = mat.Mul(math.Scale(s))
	}
	return mat, nil
}

func validate(m *mesh.Mesh, _ Op, res *Result) error {
	err := mesh.Validate(m)
	for _, e := range multierr.Errors(err) {
		res.Violations = append(res.Violations, e.Error())
	}
	if err != nil {
		return fmt.Errorf("%d violations: %w", len(res.Violations), err)
	}
	return nil
}

func idRange(first, n int) []int {
	if n <= 0 {
		return nil
	}
	ids := make([]int, n)
	for i := range ids {
		ids[i] = first + i
	}
	return ids
}
