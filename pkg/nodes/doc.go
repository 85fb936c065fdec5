// Package nodes implements the ordinary node kinds offered by the catalog.
//
// Every kind embeds [graph.Base] and renders Python against the emitter's
// naming scheme. Combinational kinds (constant, gates) only contribute to
// the loop pass. Sequential kinds (clock, delay, toggle, edge) also claim a
// slot in the script's state dict during the init pass.
package nodes
