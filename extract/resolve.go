package extract

import (
	"sort"

	. "github.com/ttpr0/go-extract/util"
)

//*******************************************
// restriction resolution
//*******************************************

// Resolves the accumulated raw restrictions into internal node triples.
// Raw restrictions are ordered by a stable key first, so the output
// does not depend on the order the feed delivered the relations in.
func (self *Containers) _PrepareRestrictions() {
	sort.SliceStable(self.restrictions, func(i, j int) bool {
		a_from, a_via := self.restrictions[i].Variant.SortKey()
		b_from, b_via := self.restrictions[j].Variant.SortKey()
		if a_from != b_from {
			return a_from < b_from
		}
		return a_via < b_via
	})

	self.resolved = NewList[TurnRestriction](self.restrictions.Length())
	for _, raw := range self.restrictions {
		var variant IVariant
		switch v := raw.Variant.(type) {
		case RawNodeRestriction:
			variant = self._ResolveNodeRestriction(v)
		case RawWayRestriction:
			variant = self._ResolveWayRestriction(v)
		}
		if variant == nil {
			continue
		}
		if !variant.Valid() {
			self.stats.DanglingRestrictions += 1
			continue
		}
		self.resolved.Add(TurnRestriction{
			Variant:    variant,
			IsOnly:     raw.IsOnly,
			Conditions: raw.Conditions,
		})
	}
}

// Resolves a single-node restriction. The via node has to be a shared
// endpoint of the from and to way, otherwise the input is malformed.
func (self *Containers) _ResolveNodeRestriction(raw RawNodeRestriction) IVariant {
	from_way, ok := self.way_segments[raw.FromWay]
	if !ok {
		self.stats.DanglingRestrictions += 1
		return nil
	}
	to_way, ok := self.way_segments[raw.ToWay]
	if !ok {
		self.stats.DanglingRestrictions += 1
		return nil
	}
	from_node, ok := _EndpointAdjacent(from_way, raw.ViaNode)
	if !ok {
		self.stats.MalformedRestrictions += 1
		return nil
	}
	to_node, ok := _EndpointAdjacent(to_way, raw.ViaNode)
	if !ok {
		self.stats.MalformedRestrictions += 1
		return nil
	}
	return NodeRestriction{
		From: self.index.Get(from_node),
		Via:  self.index.Get(raw.ViaNode),
		To:   self.index.Get(to_node),
	}
}

// Resolves a via-way restriction into two node triples. With via way
// endpoints b (touching the from way) and c (touching the to way) the
// in-restriction (from, b, c) governs entering the via way and the
// out-restriction (b, c, to) governs leaving it.
func (self *Containers) _ResolveWayRestriction(raw RawWayRestriction) IVariant {
	from_way, ok := self.way_segments[raw.FromWay]
	if !ok {
		self.stats.DanglingRestrictions += 1
		return nil
	}
	via_way, ok := self.way_segments[raw.ViaWay]
	if !ok {
		self.stats.DanglingRestrictions += 1
		return nil
	}
	to_way, ok := self.way_segments[raw.ToWay]
	if !ok {
		self.stats.DanglingRestrictions += 1
		return nil
	}

	// orient the via way such that b touches the from way
	b := via_way.FirstSource
	c := via_way.LastTarget
	if !_IsEndpoint(from_way, b) {
		b, c = c, b
	}
	from_node, ok := _EndpointAdjacent(from_way, b)
	if !ok {
		self.stats.MalformedRestrictions += 1
		return nil
	}
	to_node, ok := _EndpointAdjacent(to_way, c)
	if !ok {
		self.stats.MalformedRestrictions += 1
		return nil
	}
	return WayRestriction{
		InRestriction: NodeRestriction{
			From: self.index.Get(from_node),
			Via:  self.index.Get(b),
			To:   self.index.Get(c),
		},
		OutRestriction: NodeRestriction{
			From: self.index.Get(b),
			Via:  self.index.Get(c),
			To:   self.index.Get(to_node),
		},
	}
}

func _IsEndpoint(way WaySegments, node int64) bool {
	return way.FirstSource == node || way.LastTarget == node
}

// Returns the external identifier of the way node next to the given
// endpoint.
func _EndpointAdjacent(way WaySegments, endpoint int64) (int64, bool) {
	if way.FirstSource == endpoint {
		return way.FirstTarget, true
	}
	if way.LastTarget == endpoint {
		return way.LastSource, true
	}
	return 0, false
}
