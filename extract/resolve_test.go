package extract

import (
	"testing"

	"github.com/ttpr0/go-extract/attr"
	"github.com/ttpr0/go-extract/geo"
	. "github.com/ttpr0/go-extract/util"
)

func _RestrictionContainers() *Containers {
	containers := NewContainers(Options{})
	attribs := attr.EdgeAttribs{Type: attr.RESIDENTIAL, Mode: attr.MODE_CAR, Maxspeed: 30, Oneway: true}

	containers.AddSegment(500, 17, 1, 0, attribs)
	containers.AddWaySegments(WaySegments{WayID: 1, FirstSource: 500, FirstTarget: 17, LastSource: 500, LastTarget: 17})
	containers.AddSegment(17, 900000, 2, 0, attribs)
	containers.AddWaySegments(WaySegments{WayID: 2, FirstSource: 17, FirstTarget: 900000, LastSource: 17, LastTarget: 900000})

	containers.AddNode(500, geo.Coord{7.1, 50.8})
	containers.AddNode(17, geo.Coord{7.2, 50.8})
	containers.AddNode(900000, geo.Coord{7.3, 50.8})
	return containers
}

func TestResolveNodeRestriction(t *testing.T) {
	containers := _RestrictionContainers()
	containers.AddRestriction(RawRestriction{
		Variant: RawNodeRestriction{FromWay: 1, ViaNode: 17, ToWay: 2},
	})

	containers.PrepareData()

	if containers.Restrictions().Length() != 1 {
		t.Fatalf("restriction count = %v; want 1", containers.Restrictions().Length())
	}
	restriction := containers.Restrictions().Get(0)
	if !restriction.Valid() {
		t.Fatalf("restriction should be valid")
	}
	if restriction.IsOnly || restriction.IsConditional() {
		t.Errorf("restriction should be plain and prohibitive")
	}
	variant, ok := restriction.Variant.(NodeRestriction)
	if !ok {
		t.Fatalf("variant = %T; want NodeRestriction", restriction.Variant)
	}
	if variant.From != 0 || variant.Via != 1 || variant.To != 2 {
		t.Errorf("triple = %v; want from 0 via 1 to 2", variant)
	}
}

func TestResolveNodeRestrictionViaMismatch(t *testing.T) {
	containers := _RestrictionContainers()
	containers.AddRestriction(RawRestriction{
		Variant: RawNodeRestriction{FromWay: 1, ViaNode: 999, ToWay: 2},
	})

	containers.PrepareData()

	if containers.Restrictions().Length() != 0 {
		t.Fatalf("restriction count = %v; want 0", containers.Restrictions().Length())
	}
	if containers.Statistics().MalformedRestrictions != 1 {
		t.Errorf("malformed count = %v; want 1", containers.Statistics().MalformedRestrictions)
	}
}

func TestResolveNodeRestrictionDanglingWay(t *testing.T) {
	containers := _RestrictionContainers()
	containers.AddRestriction(RawRestriction{
		Variant: RawNodeRestriction{FromWay: 77, ViaNode: 17, ToWay: 2},
	})

	containers.PrepareData()

	if containers.Restrictions().Length() != 0 {
		t.Fatalf("restriction count = %v; want 0", containers.Restrictions().Length())
	}
	if containers.Statistics().DanglingRestrictions != 1 {
		t.Errorf("dangling count = %v; want 1", containers.Statistics().DanglingRestrictions)
	}
}

func TestResolveWayRestriction(t *testing.T) {
	containers := NewContainers(Options{})
	attribs := attr.EdgeAttribs{Type: attr.RESIDENTIAL, Mode: attr.MODE_CAR, Maxspeed: 30, Oneway: true}

	// a(1) - b(5) - c(9) - d(13), via way is b-c
	containers.AddSegment(1, 5, 10, 0, attribs)
	containers.AddWaySegments(WaySegments{WayID: 10, FirstSource: 1, FirstTarget: 5, LastSource: 1, LastTarget: 5})
	containers.AddSegment(5, 9, 20, 0, attribs)
	containers.AddWaySegments(WaySegments{WayID: 20, FirstSource: 5, FirstTarget: 9, LastSource: 5, LastTarget: 9})
	containers.AddSegment(9, 13, 30, 0, attribs)
	containers.AddWaySegments(WaySegments{WayID: 30, FirstSource: 9, FirstTarget: 13, LastSource: 9, LastTarget: 13})
	containers.AddNode(1, geo.Coord{7.1, 50.8})
	containers.AddNode(5, geo.Coord{7.2, 50.8})
	containers.AddNode(9, geo.Coord{7.3, 50.8})
	containers.AddNode(13, geo.Coord{7.4, 50.8})

	containers.AddRestriction(RawRestriction{
		Variant: RawWayRestriction{FromWay: 10, ViaWay: 20, ToWay: 30},
		IsOnly:  true,
	})

	containers.PrepareData()

	if containers.Restrictions().Length() != 1 {
		t.Fatalf("restriction count = %v; want 1", containers.Restrictions().Length())
	}
	restriction := containers.Restrictions().Get(0)
	if !restriction.IsOnly {
		t.Errorf("mandatory-turn flag was lost")
	}
	variant, ok := restriction.Variant.(WayRestriction)
	if !ok {
		t.Fatalf("variant = %T; want WayRestriction", restriction.Variant)
	}
	b := containers.Index().Get(5)
	c := containers.Index().Get(9)
	in := variant.InRestriction
	out := variant.OutRestriction
	if !in.Valid() || !out.Valid() {
		t.Fatalf("both triples must validate independently")
	}
	if in.Via != b {
		t.Errorf("in.Via = %v; want %v", in.Via, b)
	}
	if out.Via != c {
		t.Errorf("out.Via = %v; want %v", out.Via, c)
	}
	if in.To != out.Via || in.Via != out.From {
		t.Errorf("triples do not overlap on the via way: in %v out %v", in, out)
	}
	if in.From != containers.Index().Get(1) {
		t.Errorf("in.From = %v; want %v", in.From, containers.Index().Get(1))
	}
	if out.To != containers.Index().Get(13) {
		t.Errorf("out.To = %v; want %v", out.To, containers.Index().Get(13))
	}
}

func TestResolveConditionalPassThrough(t *testing.T) {
	containers := _RestrictionContainers()
	conditions := List[string]{"Mo-Fr 07:00-19:00", "Sa 08:00-12:00"}
	containers.AddRestriction(RawRestriction{
		Variant:    RawNodeRestriction{FromWay: 1, ViaNode: 17, ToWay: 2},
		Conditions: conditions,
	})

	containers.PrepareData()

	if containers.Restrictions().Length() != 1 {
		t.Fatalf("restriction count = %v; want 1", containers.Restrictions().Length())
	}
	restriction := containers.Restrictions().Get(0)
	if !restriction.IsConditional() {
		t.Fatalf("restriction should be conditional")
	}
	if restriction.Conditions.Length() != len(conditions) {
		t.Fatalf("condition count = %v; want %v", restriction.Conditions.Length(), len(conditions))
	}
	for i, condition := range conditions {
		if restriction.Conditions.Get(i) != condition {
			t.Errorf("condition %v = %v; want %v", i, restriction.Conditions.Get(i), condition)
		}
	}
}

func TestResolveDeterministicOrder(t *testing.T) {
	build := func(reversed bool) List[TurnRestriction] {
		containers := _RestrictionContainers()
		a := RawRestriction{Variant: RawNodeRestriction{FromWay: 2, ViaNode: 17, ToWay: 1}}
		b := RawRestriction{Variant: RawNodeRestriction{FromWay: 1, ViaNode: 17, ToWay: 2}}
		if reversed {
			containers.AddRestriction(a)
			containers.AddRestriction(b)
		} else {
			containers.AddRestriction(b)
			containers.AddRestriction(a)
		}
		containers.PrepareData()
		return containers.Restrictions()
	}

	first := build(false)
	second := build(true)
	if first.Length() != second.Length() {
		t.Fatalf("lengths differ: %v != %v", first.Length(), second.Length())
	}
	for i := range first {
		a := first.Get(i).Variant.(NodeRestriction)
		b := second.Get(i).Variant.(NodeRestriction)
		if a != b {
			t.Errorf("restriction %v differs between insertion orders: %v != %v", i, a, b)
		}
	}
}

func TestRestrictionOutputAllValid(t *testing.T) {
	containers := _RestrictionContainers()
	containers.AddRestriction(RawRestriction{
		Variant: RawNodeRestriction{FromWay: 1, ViaNode: 17, ToWay: 2},
	})
	// references a way whose target node has no coordinates
	containers.AddSegment(900000, 555, 3, 0, attr.EdgeAttribs{Mode: attr.MODE_CAR, Oneway: true})
	containers.AddWaySegments(WaySegments{WayID: 3, FirstSource: 900000, FirstTarget: 555, LastSource: 900000, LastTarget: 555})
	containers.AddRestriction(RawRestriction{
		Variant: RawNodeRestriction{FromWay: 2, ViaNode: 900000, ToWay: 3},
	})

	containers.PrepareData()

	for i := 0; i < containers.Restrictions().Length(); i++ {
		restriction := containers.Restrictions().Get(i)
		if !restriction.Valid() {
			t.Errorf("restriction %v contains a sentinel identifier", i)
		}
	}
	if containers.Statistics().DanglingRestrictions != 1 {
		t.Errorf("dangling count = %v; want 1", containers.Statistics().DanglingRestrictions)
	}
}
