package extract

import (
	"github.com/ttpr0/go-extract/attr"
	"github.com/ttpr0/go-extract/geo"
)

//*******************************************
// entity records
//*******************************************

// RawNode is a node as read from the source feed, addressed by its
// external identifier.
type RawNode struct {
	ID  int64
	Loc geo.Coord
}

// Node is a finalized node record. Its position in the node list is its
// internal identifier.
type Node struct {
	Loc           geo.Coord
	Barrier       bool
	TrafficSignal bool
}

// EdgeAttrs carries the routing-relevant attributes of a directed edge.
// Name and turn-lane strings are interned into the shared name blob, the
// record only holds the references. All fields are fixed-size so edge
// records can be spilled to disk.
type EdgeAttrs struct {
	Type       attr.RoadType
	Mode       attr.TravelMode
	Maxspeed   byte
	Reversed   bool
	NameOffset uint32
	NameLength uint32
	LaneOffset uint32
	LaneLength uint32
}

// RawEdge is a single directed way segment, still addressed by external
// node identifiers.
type RawEdge struct {
	SourceID int64
	TargetID int64
	WayID    int64
	Segment  int32
	Attribs  EdgeAttrs
}

// Edge is a directed edge after remapping, addressed by internal node
// identifiers. WayID and Segment only serve as the deterministic
// tie-break during sorting.
type Edge struct {
	Source  int32
	Target  int32
	WayID   int64
	Segment int32
	Attribs EdgeAttrs
}

// WaySegments records the first and last segment of a way. Restriction
// resolution uses it to find the way endpoint adjacent to a via node.
type WaySegments struct {
	WayID       int64
	FirstSource int64
	FirstTarget int64
	LastSource  int64
	LastTarget  int64
}

// NameRef is a (offset, length) reference into the shared name blob.
type NameRef struct {
	Offset uint32
	Length uint32
}
