package export

import (
	"io"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var ErrEmptyMesh = errors.New("mesh has no faces")

// NewDocument puts mesh into a single node glTF document.
func NewDocument(mesh *MeshBuffer, name string) (*gltf.Document, error) {
	if mesh.IsEmpty() {
		return nil, ErrEmptyMesh
	}
	doc := gltf.NewDocument()
	positions := modeler.WritePosition(doc, mesh.Positions)
	normals := modeler.WriteNormal(doc, mesh.Normals)
	colors := modeler.WriteColor(doc, mesh.Colors)
	indices := modeler.WriteIndices(doc, mesh.Indices)
	doc.Meshes = []*gltf.Mesh{{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(indices),
			Mode:    gltf.PrimitiveTriangles,
			Attributes: map[string]uint32{
				"POSITION": positions,
				"NORMAL":   normals,
				"COLOR_0":  colors,
			},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc, nil
}

// WriteGLB writes mesh as a binary glTF file.
func WriteGLB(w io.Writer, mesh *MeshBuffer, name string) error {
	doc, err := NewDocument(mesh, name)
	if err != nil {
		return err
	}
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	if err := encoder.Encode(doc); err != nil {
		return errors.Wrap(err, "encode glb")
	}
	return nil
}
