package extract

import (
	"time"

	"github.com/ttpr0/go-extract/attr"
	"github.com/ttpr0/go-extract/geo"
	. "github.com/ttpr0/go-extract/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// container options
//*******************************************

// Options selects the accumulator storage backend. With spilling
// enabled the large accumulators (edges, used node ids) keep at most
// SpillBudget records in memory each and write full chunks to SpillDir.
type Options struct {
	Spill       bool
	SpillDir    string
	SpillBudget int
}

func _NewStore[T any](options Options, capacity int) IStore[T] {
	if options.Spill {
		return NewSpillStore[T](options.SpillBudget, options.SpillDir)
	}
	return NewMemoryStore[T](capacity)
}

//*******************************************
// extraction containers
//*******************************************

// Containers accumulates all raw entities collected while scanning the
// source feed. The data is filtered, remapped and aggregated by
// PrepareData and finally written to disk.
type Containers struct {
	// accumulators, append-only during the scan
	used_node_ids IStore[int64]
	all_nodes     Dict[int64, RawNode]
	all_edges     IStore[RawEdge]
	way_segments  Dict[int64, WaySegments]
	barrier_nodes Dict[int64, bool]
	traffic_nodes Dict[int64, bool]
	restrictions  List[RawRestriction]
	names         *NameTable
	used_set      Dict[int64, bool]

	// prepared output, populated by the prepare phases
	index     *NodeIndex
	node_list List[Node]
	edge_list List[Edge]
	resolved  List[TurnRestriction]

	stats Stats
}

func NewContainers(options Options) *Containers {
	return &Containers{
		used_node_ids: _NewStore[int64](options, 10000),
		all_nodes:     NewDict[int64, RawNode](10000),
		all_edges:     _NewStore[RawEdge](options, 10000),
		way_segments:  NewDict[int64, WaySegments](1000),
		barrier_nodes: NewDict[int64, bool](100),
		traffic_nodes: NewDict[int64, bool](100),
		restrictions:  NewList[RawRestriction](100),
		names:         NewNameTable(1000),
		used_set:      NewDict[int64, bool](10000),
		index:         NewNodeIndex(10000),
	}
}

//*******************************************
// accumulation methods
//*******************************************

// Adds the directed edges of a single way segment. Depending on the
// decoded directionality one or two edges are emitted.
func (self *Containers) AddSegment(source, target, way_id int64, segment int32, attribs attr.EdgeAttribs) {
	attrs := EdgeAttrs{
		Type:     attribs.Type,
		Mode:     attribs.Mode,
		Maxspeed: attribs.Maxspeed,
	}
	name_ref := self.names.Add(attribs.Name)
	attrs.NameOffset = name_ref.Offset
	attrs.NameLength = name_ref.Length
	lane_ref := self.names.Add(attribs.TurnLanes)
	attrs.LaneOffset = lane_ref.Offset
	attrs.LaneLength = lane_ref.Length

	forward := !attribs.Oneway || !attribs.Reversed
	backward := !attribs.Oneway || attribs.Reversed
	if forward {
		self._AddEdge(RawEdge{
			SourceID: source,
			TargetID: target,
			WayID:    way_id,
			Segment:  segment,
			Attribs:  attrs,
		})
	}
	if backward {
		attrs.Reversed = true
		self._AddEdge(RawEdge{
			SourceID: target,
			TargetID: source,
			WayID:    way_id,
			Segment:  segment,
			Attribs:  attrs,
		})
	}
}

func (self *Containers) _AddEdge(edge RawEdge) {
	self.all_edges.Add(edge)
	self.used_node_ids.Add(edge.SourceID)
	self.used_node_ids.Add(edge.TargetID)
	self.used_set[edge.SourceID] = true
	self.used_set[edge.TargetID] = true
}

func (self *Containers) AddNode(id int64, loc geo.Coord) {
	self.all_nodes[id] = RawNode{ID: id, Loc: loc}
}

func (self *Containers) AddBarrierNode(id int64) {
	self.barrier_nodes[id] = true
}
func (self *Containers) AddTrafficSignal(id int64) {
	self.traffic_nodes[id] = true
}

func (self *Containers) AddWaySegments(segments WaySegments) {
	self.way_segments[segments.WayID] = segments
}

func (self *Containers) AddRestriction(restriction RawRestriction) {
	self.restrictions.Add(restriction)
}

// Reports whether a node is referenced by any accumulated edge. Used by
// the feed reader to skip coordinates of unused nodes.
func (self *Containers) IsNodeUsed(id int64) bool {
	return self.used_set.ContainsKey(id)
}

func (self *Containers) CountUnsupportedRelation() {
	self.stats.UnsupportedRelations += 1
}

//*******************************************
// prepare phases
//*******************************************

// PrepareData runs the remaining pipeline stages in order. Every stage
// consumes the fully materialized output of the previous one.
func (self *Containers) PrepareData() {
	st := time.Now()
	self._PrepareNodes()
	slog.Info("prepared nodes", slog.Int("count", self.node_list.Length()), slog.Duration("took", time.Since(st)))

	st = time.Now()
	self._PrepareEdges()
	slog.Info("prepared edges", slog.Int("count", self.edge_list.Length()), slog.Duration("took", time.Since(st)))

	st = time.Now()
	self._PrepareRestrictions()
	slog.Info("prepared restrictions", slog.Int("count", self.resolved.Length()), slog.Duration("took", time.Since(st)))

	self.stats.Log()
}

// Assigns dense internal identifiers in first-seen edge-reference order
// and builds the final node list. Referenced nodes without coordinates
// were excluded upstream and stay unmapped.
func (self *Containers) _PrepareNodes() {
	for id := range self.used_node_ids.Iter() {
		raw, ok := self.all_nodes[id]
		if !ok {
			continue
		}
		index := self.index.Register(id)
		if index < int32(self.node_list.Length()) {
			continue
		}
		self.node_list.Add(Node{
			Loc:           raw.Loc,
			Barrier:       self.barrier_nodes.ContainsKey(id),
			TrafficSignal: self.traffic_nodes.ContainsKey(id),
		})
	}
	self.used_node_ids.Clear()
}

//*******************************************
// accessors
//*******************************************

func (self *Containers) Index() *NodeIndex {
	return self.index
}
func (self *Containers) Names() *NameTable {
	return self.names
}
func (self *Containers) Nodes() List[Node] {
	return self.node_list
}
func (self *Containers) Edges() List[Edge] {
	return self.edge_list
}
func (self *Containers) Restrictions() List[TurnRestriction] {
	return self.resolved
}
func (self *Containers) RawRestrictions() List[RawRestriction] {
	return self.restrictions
}
func (self *Containers) Statistics() Stats {
	return self.stats
}
