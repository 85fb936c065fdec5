package raspi

import (
	"slices"

	"github.com/pinmagik/pinmagik/pkg/errors"
)

// Revision identifies a GPIO header layout.
type Revision int

const (
	// Rev1 is the original Model B 26-pin header.
	Rev1 Revision = 1
	// Rev2 is the Model A/B revision 2 26-pin header.
	Rev2 Revision = 2
	// RevPlus is the 40-pin header of the A+/B+ and later boards.
	RevPlus Revision = 3
)

var revisionPins = map[Revision][]int{
	Rev1:    {0, 1, 4, 7, 8, 9, 10, 11, 14, 15, 17, 18, 21, 22, 23, 24, 25},
	Rev2:    {2, 3, 4, 7, 8, 9, 10, 11, 14, 15, 17, 18, 22, 23, 24, 25, 27},
	RevPlus: {2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27},
}

// String returns a short name such as "rev1".
func (r Revision) String() string {
	switch r {
	case Rev1:
		return "rev1"
	case Rev2:
		return "rev2"
	case RevPlus:
		return "plus"
	default:
		return "unknown"
	}
}

// Pins returns the BCM GPIO numbers on the header, ascending.
func (r Revision) Pins() []int { return slices.Clone(revisionPins[r]) }

// Context is the hardware context handed to boundary nodes.
type Context struct {
	Revision Revision
}

// NewContext returns the context for rev.
func NewContext(rev Revision) Context { return Context{Revision: rev} }

// Pins returns the GPIO numbers available in this context.
func (c Context) Pins() []int { return c.Revision.Pins() }

// ProjectType is a target board family a project is built for.
type ProjectType struct {
	ID       int      // Numeric tag used by legacy documents
	Name     string   // Stable name stored in documents
	Title    string   // Human readable name
	Revision Revision // Header layout
}

// Context returns the hardware context for the type.
func (t ProjectType) Context() Context { return NewContext(t.Revision) }

// Project type names.
const (
	TypeRaspi     = "raspi"
	TypeRaspiPlus = "raspi_plus"
)

var projectTypes = []ProjectType{
	{ID: 0x01, Name: TypeRaspi, Title: "Raspberry Pi Model A/B", Revision: Rev1},
	{ID: 0x02, Name: TypeRaspiPlus, Title: "Raspberry Pi Model A+/B+", Revision: RevPlus},
}

// ProjectTypes returns every supported project type in menu order.
func ProjectTypes() []ProjectType { return slices.Clone(projectTypes) }

// LookupType returns the project type called name.
func LookupType(name string) (ProjectType, error) {
	if err := errors.ValidateProjectTypeName(name); err != nil {
		return ProjectType{}, err
	}
	for _, t := range projectTypes {
		if t.Name == name {
			return t, nil
		}
	}
	return ProjectType{}, errors.New(errors.ErrCodeUnknownProjectType, "unknown project type %q", name)
}
