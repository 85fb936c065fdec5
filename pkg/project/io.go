package project

import (
	"fmt"
	"io"

	"github.com/pinmagik/pinmagik/pkg/codec"
	"github.com/pinmagik/pinmagik/pkg/errors"
	"github.com/pinmagik/pinmagik/pkg/raspi"
)

// Serialize captures the project as a document.
func (p *Project) Serialize() (*codec.Document, error) {
	return codec.Serialize(p, p.typ.Name)
}

// Deserialize builds a project from doc. The filename is left empty.
func Deserialize(doc *codec.Document, f codec.Factory) (*Project, error) {
	res, err := codec.Deserialize(doc, f)
	if err != nil {
		return nil, err
	}
	t, err := raspi.LookupType(res.Type)
	if err != nil {
		return nil, err
	}
	return &Project{typ: t, nodes: res.Nodes()}, nil
}

// Write encodes the project document to w.
func (p *Project) Write(w io.Writer) error {
	doc, err := p.Serialize()
	if err != nil {
		return err
	}
	return codec.WriteDocument(doc, w)
}

// Read decodes a project from r.
func Read(r io.Reader, f codec.Factory) (*Project, error) {
	doc, err := codec.ReadDocument(r)
	if err != nil {
		return nil, err
	}
	return Deserialize(doc, f)
}

// Save writes the project to path, or to its filename when path is empty,
// and remembers path as the filename.
func (p *Project) Save(path string) error {
	if path == "" {
		path = p.filename
	}
	if path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "project has no filename")
	}
	if err := errors.ValidateDocumentPath(path); err != nil {
		return err
	}
	doc, err := p.Serialize()
	if err != nil {
		return err
	}
	if err := codec.ExportDocument(doc, path); err != nil {
		return err
	}
	p.filename = path
	return nil
}

// Open loads the project stored at path.
func Open(path string, f codec.Factory) (*Project, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	doc, err := codec.ImportDocument(path)
	if err != nil {
		return nil, err
	}
	p, err := Deserialize(doc, f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	p.filename = path
	return p, nil
}
