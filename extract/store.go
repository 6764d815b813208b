package extract

import (
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
	. "github.com/ttpr0/go-extract/util"
)

//*******************************************
// entity store interface
//*******************************************

// IStore is the append-only accumulator backend. Insertion gives no
// ordering guarantee beyond append order, all filtering and sorting
// happens in the prepare phases. Implementations only have to support
// fixed-size record types.
type IStore[T any] interface {
	Add(value T)
	Length() int
	Iter() func(yield func(T) bool)
	Clear()
}

//*******************************************
// in-memory store
//*******************************************

var _ IStore[int64] = &MemoryStore[int64]{}

type MemoryStore[T any] struct {
	items List[T]
}

func NewMemoryStore[T any](capacity int) *MemoryStore[T] {
	return &MemoryStore[T]{
		items: NewList[T](capacity),
	}
}

func (self *MemoryStore[T]) Add(value T) {
	self.items.Add(value)
}
func (self *MemoryStore[T]) Length() int {
	return self.items.Length()
}
func (self *MemoryStore[T]) Iter() func(yield func(T) bool) {
	return func(yield func(T) bool) {
		for _, item := range self.items {
			if !yield(item) {
				return
			}
		}
	}
}
func (self *MemoryStore[T]) Clear() {
	self.items.Clear()
}

//*******************************************
// spill-backed store
//*******************************************

var _ IStore[int64] = &SpillStore[int64]{}

// SpillStore keeps at most budget records in memory and writes full
// chunks to temporary files. Iteration replays spilled chunks in append
// order followed by the in-memory tail, so the append/iterate contract
// is identical to MemoryStore. A failed spill is resource exhaustion
// and aborts the run.
type SpillStore[T any] struct {
	budget int
	dir    string
	chunks List[string]
	buffer List[T]
	count  int
}

func NewSpillStore[T any](budget int, dir string) *SpillStore[T] {
	if budget < 1 {
		budget = 1
	}
	return &SpillStore[T]{
		budget: budget,
		dir:    dir,
		chunks: NewList[string](4),
		buffer: NewList[T](budget),
	}
}

func (self *SpillStore[T]) Add(value T) {
	self.buffer.Add(value)
	self.count += 1
	if self.buffer.Length() >= self.budget {
		self._Spill()
	}
}
func (self *SpillStore[T]) Length() int {
	return self.count
}
func (self *SpillStore[T]) Iter() func(yield func(T) bool) {
	return func(yield func(T) bool) {
		for _, chunk := range self.chunks {
			for _, item := range self._ReadChunk(chunk) {
				if !yield(item) {
					return
				}
			}
		}
		for _, item := range self.buffer {
			if !yield(item) {
				return
			}
		}
	}
}
func (self *SpillStore[T]) Clear() {
	for _, chunk := range self.chunks {
		os.Remove(chunk)
	}
	self.chunks.Clear()
	self.buffer.Clear()
	self.count = 0
}

func (self *SpillStore[T]) _Spill() {
	file, err := os.CreateTemp(self.dir, "spill-*")
	if err != nil {
		panic(errors.Wrap(err, "failed to create accumulator spill file"))
	}
	defer file.Close()
	if err := binary.Write(file, binary.LittleEndian, int32(self.buffer.Length())); err != nil {
		panic(errors.Wrap(err, "failed to write accumulator spill file"))
	}
	if err := binary.Write(file, binary.LittleEndian, []T(self.buffer)); err != nil {
		panic(errors.Wrap(err, "failed to write accumulator spill file"))
	}
	self.chunks.Add(file.Name())
	self.buffer.Clear()
}

func (self *SpillStore[T]) _ReadChunk(chunk string) List[T] {
	reader, err := ReadFileBuffer(chunk)
	if err != nil {
		panic(errors.Wrap(err, "failed to read accumulator spill file"))
	}
	return List[T](ReadArray[T](reader))
}
