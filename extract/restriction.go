package extract

import (
	"fmt"

	. "github.com/ttpr0/go-extract/util"
)

//*******************************************
// raw restrictions
//*******************************************

// IRawVariant is the closed node-or-way arm of a raw turn restriction.
// Only RawNodeRestriction and RawWayRestriction implement it, so code
// holding a variant can never see the wrong arm.
type IRawVariant interface {
	// (from way, via ref) used to order restrictions independent of
	// feed insertion order.
	SortKey() (int64, int64)
	isRawVariant()
}

// A restriction turning at a single node:
//
//	a - b - c
//	    |
//	    d
//
// from ab via b to bd
type RawNodeRestriction struct {
	FromWay int64
	ViaNode int64
	ToWay   int64
}

func (self RawNodeRestriction) SortKey() (int64, int64) {
	return self.FromWay, self.ViaNode
}
func (self RawNodeRestriction) isRawVariant() {}

// A restriction using a short way as the through-segment:
//
//	f - e - d
//	    |
//	a - b - c
//
// from ab via be to ef
type RawWayRestriction struct {
	FromWay int64
	ViaWay  int64
	ToWay   int64
}

func (self RawWayRestriction) SortKey() (int64, int64) {
	return self.FromWay, self.ViaWay
}
func (self RawWayRestriction) isRawVariant() {}

// RawRestriction is a turn restriction as read from the source feed. An
// empty condition list means the restriction is always in effect.
type RawRestriction struct {
	Variant    IRawVariant
	IsOnly     bool
	Conditions List[string]
}

//*******************************************
// resolved restrictions
//*******************************************

// NodeRestriction is a turn restriction expressed as a triple of
// internal node identifiers.
type NodeRestriction struct {
	From int32
	Via  int32
	To   int32
}

// Reports whether all parts of the restriction reference a retained
// node.
func (self NodeRestriction) Valid() bool {
	return self.From != INVALID_NODE && self.Via != INVALID_NODE && self.To != INVALID_NODE
}
func (self NodeRestriction) String() string {
	return fmt.Sprintf("from %v via %v to %v", self.From, self.Via, self.To)
}
func (self NodeRestriction) isVariant() {}

// WayRestriction keeps two node triples because the via way may or may
// not be collapsed to a single node during later graph compression
// (e.g. a traffic signal on the via way prevents merging). Both triples
// have to hold on their own.
type WayRestriction struct {
	InRestriction  NodeRestriction
	OutRestriction NodeRestriction
}

func (self WayRestriction) Valid() bool {
	return self.InRestriction.Valid() && self.OutRestriction.Valid()
}
func (self WayRestriction) String() string {
	return fmt.Sprintf("in: %v, out: %v", self.InRestriction, self.OutRestriction)
}
func (self WayRestriction) isVariant() {}

// IVariant is the closed node-or-way arm of a resolved turn
// restriction.
type IVariant interface {
	Valid() bool
	String() string
	isVariant()
}

// TurnRestriction is a fully resolved turn restriction. Only valid
// restrictions leave the resolver. Conditions are carried through
// resolution unchanged.
type TurnRestriction struct {
	Variant    IVariant
	IsOnly     bool
	Conditions List[string]
}

func (self *TurnRestriction) Valid() bool {
	return self.Variant.Valid()
}
func (self *TurnRestriction) IsConditional() bool {
	return self.Conditions.Length() > 0
}
