package routing

import "github.com/easbar/fast-paths/pkg/graph"

// unpackFwd expands a forward edge into the original-edge sequence it
// represents, appending node ids to nodes in path order. A plain edge
// contributes its own base node; a shortcut recurses into the two edges,
// incident at its center node, that it replaces.
//
// reverse controls which child is unpacked first: the path calculator walks
// the forward parent chain from the meeting node back towards the source
// (i.e. against the direction nodes were actually reached), so reverse=true
// there swaps the child order to keep the nodes it appends already in
// source-to-meeting-node order once the caller reverses the whole slice.
// Calls from within an already-reversed traversal (the shortcut's own
// children) pass reverse straight through unchanged.
func unpackFwd(fg *graph.FastGraph, nodes *[]NodeId, edgeID EdgeId, reverse bool) {
	edge := fg.EdgesFwd[edgeID]
	if !edge.IsShortcut() {
		*nodes = append(*nodes, edge.BaseNode)
		return
	}
	if reverse {
		unpackFwd(fg, nodes, edge.ReplacedOutEdge, reverse)
		unpackBwd(fg, nodes, edge.ReplacedInEdge, reverse)
	} else {
		unpackBwd(fg, nodes, edge.ReplacedInEdge, reverse)
		unpackFwd(fg, nodes, edge.ReplacedOutEdge, reverse)
	}
}

// unpackBwd is unpackFwd's mirror image over the backward edge array.
func unpackBwd(fg *graph.FastGraph, nodes *[]NodeId, edgeID EdgeId, reverse bool) {
	edge := fg.EdgesBwd[edgeID]
	if !edge.IsShortcut() {
		*nodes = append(*nodes, edge.AdjNode)
		return
	}
	if reverse {
		unpackFwd(fg, nodes, edge.ReplacedOutEdge, reverse)
		unpackBwd(fg, nodes, edge.ReplacedInEdge, reverse)
	} else {
		unpackBwd(fg, nodes, edge.ReplacedInEdge, reverse)
		unpackFwd(fg, nodes, edge.ReplacedOutEdge, reverse)
	}
}
