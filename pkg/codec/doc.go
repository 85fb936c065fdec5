// Package codec converts project graphs to and from PinMagik documents.
//
// A document is a JSON object naming the project type and listing one
// record per node:
//
//	{
//	  "type": "raspi",
//	  "nodes": [
//	    {"clsid": 32770, "x": 600, "y": 1, "node_info": {}, "id": 7,
//	     "connections": [[0, 9, 0]]}
//	  ]
//	}
//
// Each connection is a triple [sink_index, upstream_id, source_index]
// attached to the record that owns the sink. Record ids only have meaning
// within one document; [Deserialize] builds fresh nodes and maps ids to
// them before wiring anything, so records may reference nodes that appear
// later in the list.
//
// [Serialize] writes records dependency-first starting from the output
// boundary, followed by every node the output does not reach.
//
// [ReadDocument] validates input against an embedded JSON Schema before
// decoding. Older documents store the type as a [id, name, title] triple;
// both forms are accepted and the name form is always written.
package codec
