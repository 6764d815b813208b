package extract

import (
	"path/filepath"
	"testing"

	"github.com/ttpr0/go-extract/attr"
	"github.com/ttpr0/go-extract/geo"
	. "github.com/ttpr0/go-extract/util"
)

func TestStoreRoundtrip(t *testing.T) {
	containers := _RestrictionContainers()
	containers.AddTrafficSignal(17)
	containers.AddRestriction(RawRestriction{
		Variant:    RawNodeRestriction{FromWay: 1, ViaNode: 17, ToWay: 2},
		Conditions: List[string]{"Mo-Fr 07:00-19:00"},
	})
	containers.PrepareData()

	path := filepath.Join(t.TempDir(), "graph")
	if err := containers.Store(path); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	// nodes
	reader, err := ReadFileBuffer(path + "-nodes")
	if err != nil {
		t.Fatalf("reading nodes failed: %v", err)
	}
	node_count := Read[int32](reader)
	if node_count != 3 {
		t.Fatalf("node count = %v; want 3", node_count)
	}
	for i := int32(0); i < node_count; i++ {
		Read[geo.Coord](reader)
		flags := Read[byte](reader)
		if i == 1 && flags != 2 {
			t.Errorf("node 1 flags = %v; want traffic signal bit", flags)
		}
		if i != 1 && flags != 0 {
			t.Errorf("node %v flags = %v; want 0", i, flags)
		}
	}

	// edges
	reader, err = ReadFileBuffer(path + "-edges")
	if err != nil {
		t.Fatalf("reading edges failed: %v", err)
	}
	edge_count := Read[int32](reader)
	if edge_count != 2 {
		t.Fatalf("edge count = %v; want 2", edge_count)
	}
	for i := int32(0); i < edge_count; i++ {
		source := Read[int32](reader)
		target := Read[int32](reader)
		Read[EdgeAttrs](reader)
		if source == INVALID_NODE || target == INVALID_NODE {
			t.Errorf("edge %v contains a sentinel identifier", i)
		}
	}

	// restrictions
	reader, err = ReadFileBuffer(path + "-restrictions")
	if err != nil {
		t.Fatalf("reading restrictions failed: %v", err)
	}
	restriction_count := Read[int32](reader)
	if restriction_count != 1 {
		t.Fatalf("restriction count = %v; want 1", restriction_count)
	}
	typ := Read[byte](reader)
	only := Read[byte](reader)
	if typ != RESTRICTION_NODE || only != 0 {
		t.Errorf("tag bytes = (%v %v); want (node, not only)", typ, only)
	}
	triple := Read[NodeRestriction](reader)
	if !triple.Valid() {
		t.Errorf("serialized triple contains a sentinel: %v", triple)
	}
	if triple.From != 0 || triple.Via != 1 || triple.To != 2 {
		t.Errorf("triple = %v; want from 0 via 1 to 2", triple)
	}
	condition_count := Read[int32](reader)
	if condition_count != 1 {
		t.Fatalf("condition count = %v; want 1", condition_count)
	}
	if condition := ReadString(reader); condition != "Mo-Fr 07:00-19:00" {
		t.Errorf("condition = %v; want Mo-Fr 07:00-19:00", condition)
	}
}

func TestStoreNames(t *testing.T) {
	containers := NewContainers(Options{})
	attribs := attr.EdgeAttribs{Type: attr.RESIDENTIAL, Mode: attr.MODE_CAR, Maxspeed: 30, Oneway: true, Name: "hauptstrasse"}
	containers.AddSegment(1, 2, 1, 0, attribs)
	containers.AddSegment(2, 3, 2, 0, attribs)
	containers.AddNode(1, geo.Coord{7.1, 50.8})
	containers.AddNode(2, geo.Coord{7.2, 50.8})
	containers.AddNode(3, geo.Coord{7.3, 50.8})
	containers.PrepareData()

	path := filepath.Join(t.TempDir(), "graph")
	if err := containers.Store(path); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	reader, err := ReadFileBuffer(path + "-names")
	if err != nil {
		t.Fatalf("reading names failed: %v", err)
	}
	name_count := Read[int32](reader)
	if name_count != 1 {
		t.Fatalf("name count = %v; want 1 (shared name interned once)", name_count)
	}
	ref := Read[NameRef](reader)
	blob_length := Read[int32](reader)
	if int(blob_length) != len("hauptstrasse") {
		t.Fatalf("blob length = %v; want %v", blob_length, len("hauptstrasse"))
	}
	blob := make([]byte, blob_length)
	for i := range blob {
		blob[i] = Read[byte](reader)
	}
	if string(blob[ref.Offset:ref.Offset+ref.Length]) != "hauptstrasse" {
		t.Errorf("blob lookup = %v; want hauptstrasse", string(blob))
	}

	// edges reference the shared entry
	reader, err = ReadFileBuffer(path + "-edges")
	if err != nil {
		t.Fatalf("reading edges failed: %v", err)
	}
	edge_count := Read[int32](reader)
	for i := int32(0); i < edge_count; i++ {
		Read[int32](reader)
		Read[int32](reader)
		attrs := Read[EdgeAttrs](reader)
		if attrs.NameOffset != ref.Offset || attrs.NameLength != ref.Length {
			t.Errorf("edge %v name ref = (%v %v); want (%v %v)", i, attrs.NameOffset, attrs.NameLength, ref.Offset, ref.Length)
		}
	}
}

func TestStoreOpenFailure(t *testing.T) {
	containers := _RestrictionContainers()
	containers.PrepareData()

	err := containers.Store(filepath.Join(t.TempDir(), "missing", "graph"))
	if err == nil {
		t.Errorf("Store into missing directory should fail")
	}
}
