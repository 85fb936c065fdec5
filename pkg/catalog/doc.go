// Package catalog maps stable node kind ids to constructors.
//
// The catalog is an explicit table: [Default] registers every kind shipped
// with PinMagik, and callers may register more before loading documents.
// An [Entry] optionally restricts itself to a set of project types; an
// entry with no types is available everywhere.
//
// # Usage
//
//	reg := catalog.Default()
//	n, err := reg.NewNode(nodes.KindAnd, raspi.TypeRaspi)
//	if errors.Is(err, errors.ErrCodeUnknownNodeKind) {
//	    // kind not registered
//	}
//
// [Registry] implements the codec's Factory, so it is what project loading
// uses to rebuild nodes from documents.
package catalog
