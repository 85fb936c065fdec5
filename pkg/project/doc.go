// Package project holds an editable node graph and its hardware target.
//
// A [Project] keeps its nodes in an ordered list whose first two entries
// are always the graph-input and graph-output boundary nodes. Boundary
// nodes are created with the project and cannot be added or removed.
//
// Projects compile to Python with [Project.Compile] and persist through
// the document codec:
//
//	p, err := project.Open("blink.pimp", catalog.Default())
//	if err != nil {
//	    return err
//	}
//	script, err := p.Compile(codegen.Options{})
package project
