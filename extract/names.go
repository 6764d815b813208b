package extract

import (
	. "github.com/ttpr0/go-extract/util"
)

//*******************************************
// name table
//*******************************************

// NameTable interns strings into a single contiguous blob. Equal
// strings share one (offset, length) entry, so offsets are stable for
// a given insertion sequence. The empty string maps to the zero
// reference without occupying blob space.
type NameTable struct {
	blob  List[byte]
	refs  List[NameRef]
	index Dict[string, NameRef]
}

func NewNameTable(capacity int) *NameTable {
	return &NameTable{
		blob:  NewList[byte](capacity * 16),
		refs:  NewList[NameRef](capacity),
		index: NewDict[string, NameRef](capacity),
	}
}

// Interns a string and returns its blob reference.
func (self *NameTable) Add(name string) NameRef {
	if name == "" {
		return NameRef{}
	}
	if ref, ok := self.index[name]; ok {
		return ref
	}
	ref := NameRef{
		Offset: uint32(self.blob.Length()),
		Length: uint32(len(name)),
	}
	self.blob = append(self.blob, name...)
	self.refs.Add(ref)
	self.index[name] = ref
	return ref
}

// Returns the string behind a blob reference.
func (self *NameTable) Get(ref NameRef) string {
	return string(self.blob[ref.Offset : ref.Offset+ref.Length])
}

// Number of distinct interned strings.
func (self *NameTable) Count() int {
	return self.refs.Length()
}

func (self *NameTable) Blob() []byte {
	return self.blob
}
func (self *NameTable) Refs() List[NameRef] {
	return self.refs
}
