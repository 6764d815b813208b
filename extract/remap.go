package extract

import (
	"sync"

	. "github.com/ttpr0/go-extract/util"
)

// Sentinel for node identifiers that are not part of the retained graph.
const INVALID_NODE int32 = -1

//*******************************************
// node index
//*******************************************

// NodeIndex maps sparse external node identifiers to dense internal
// ones. Internal identifiers are handed out sequentially from zero in
// registration order. Registration is safe for concurrent use,
// duplicate registrations of the same external identifier keep the
// first assigned value.
type NodeIndex struct {
	mtx     sync.Mutex
	mapping Dict[int64, int32]
	count   int32
}

func NewNodeIndex(capacity int) *NodeIndex {
	return &NodeIndex{
		mapping: NewDict[int64, int32](capacity),
	}
}

// Registers an external identifier and returns its internal identifier.
func (self *NodeIndex) Register(id int64) int32 {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	if index, ok := self.mapping[id]; ok {
		return index
	}
	index := self.count
	self.mapping[id] = index
	self.count += 1
	return index
}

// Returns the internal identifier for an external one, INVALID_NODE if
// the node is not part of the retained set. Only call after the build
// phase has finished.
func (self *NodeIndex) Get(id int64) int32 {
	if index, ok := self.mapping[id]; ok {
		return index
	}
	return INVALID_NODE
}

func (self *NodeIndex) Contains(id int64) bool {
	return self.mapping.ContainsKey(id)
}

// Number of internal identifiers assigned so far.
func (self *NodeIndex) Count() int {
	return int(self.count)
}
