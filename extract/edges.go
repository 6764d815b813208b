package extract

import (
	"runtime"
	"sort"
	"sync"

	. "github.com/ttpr0/go-extract/util"
)

//*******************************************
// edge normalization
//*******************************************

// Maps raw edges into internal identifier space and normalizes them.
// Mapping of individual edges is independent and runs on a worker pool,
// ordering is established afterwards by a single deterministic sort.
func (self *Containers) _PrepareEdges() {
	worker_count := runtime.GOMAXPROCS(-1)
	jobs := make(chan RawEdge, 1024)
	mapped := NewArray[List[Edge]](worker_count)
	dropped := NewArray[int](worker_count)

	var wg sync.WaitGroup
	for w := 0; w < worker_count; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			buffer := NewList[Edge](1024)
			count := 0
			for edge := range jobs {
				source := self.index.Get(edge.SourceID)
				target := self.index.Get(edge.TargetID)
				if source == INVALID_NODE || target == INVALID_NODE {
					count += 1
					continue
				}
				buffer.Add(Edge{
					Source:  source,
					Target:  target,
					WayID:   edge.WayID,
					Segment: edge.Segment,
					Attribs: edge.Attribs,
				})
			}
			mapped[w] = buffer
			dropped[w] = count
		}(w)
	}
	for edge := range self.all_edges.Iter() {
		jobs <- edge
	}
	close(jobs)
	wg.Wait()

	edges := NewList[Edge](self.all_edges.Length())
	for w := 0; w < worker_count; w++ {
		edges = append(edges, mapped[w]...)
		self.stats.DanglingEdges += dropped[w]
	}
	self.all_edges.Clear()

	normalized, duplicates := NormalizeEdges(edges)
	self.stats.DuplicateEdges += duplicates
	self.edge_list = normalized
}

// NormalizeEdges sorts edges by (source, target, way, segment) and
// removes exact duplicates, keeping the first occurrence in sorted
// order. Edges differing in any attribute are kept as distinct parallel
// relations. Running it on an already normalized list returns the list
// unchanged.
func NormalizeEdges(edges List[Edge]) (List[Edge], int) {
	sort.Slice(edges, func(i, j int) bool {
		return _EdgeLess(edges[i], edges[j])
	})
	result := NewList[Edge](edges.Length())
	duplicates := 0
	group_start := 0
	for i, edge := range edges {
		if i > 0 && (edge.Source != edges[i-1].Source || edge.Target != edges[i-1].Target) {
			group_start = result.Length()
		}
		// duplicates share the sort prefix but may be separated by a
		// parallel edge with different attributes, so the whole
		// (source, target) group has to be checked
		duplicate := false
		for j := group_start; j < result.Length(); j++ {
			if _EdgeDuplicate(result[j], edge) {
				duplicate = true
				break
			}
		}
		if duplicate {
			duplicates += 1
			continue
		}
		result.Add(edge)
	}
	return result, duplicates
}

func _EdgeLess(a Edge, b Edge) bool {
	if a.Source != b.Source {
		return a.Source < b.Source
	}
	if a.Target != b.Target {
		return a.Target < b.Target
	}
	if a.WayID != b.WayID {
		return a.WayID < b.WayID
	}
	return a.Segment < b.Segment
}

// Exact duplicates share endpoints and all attributes, the originating
// way does not matter.
func _EdgeDuplicate(a Edge, b Edge) bool {
	return a.Source == b.Source && a.Target == b.Target && a.Attribs == b.Attribs
}
