package extract

import (
	. "github.com/ttpr0/go-extract/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// serialization
//*******************************************

// Writes all finalized entity lists. Every artifact is written in a
// single forward pass, artifacts are never interleaved. The first
// failure aborts before any further artifact is touched.
func (self *Containers) Store(path string) error {
	if err := self.WriteNodes(path + "-nodes"); err != nil {
		return err
	}
	if err := self.WriteEdges(path + "-edges"); err != nil {
		return err
	}
	if err := self.WriteNames(path + "-names"); err != nil {
		return err
	}
	if err := self.WriteRestrictions(path + "-restrictions"); err != nil {
		return err
	}
	slog.Info("stored extraction output", slog.String("path", path))
	return nil
}

// Node records are implicitly identified by their index. Layout per
// record: lon float32, lat float32, flags byte (bit 0 barrier, bit 1
// traffic signal).
func (self *Containers) WriteNodes(file string) error {
	writer := NewBufferWriter()
	Write(writer, int32(self.node_list.Length()))
	for _, node := range self.node_list {
		Write(writer, node.Loc)
		flags := byte(0)
		if node.Barrier {
			flags |= 1
		}
		if node.TrafficSignal {
			flags |= 2
		}
		Write(writer, flags)
	}
	return writer.ToFile(file)
}

// Edge records are written in normalized order.
func (self *Containers) WriteEdges(file string) error {
	writer := NewBufferWriter()
	Write(writer, int32(self.edge_list.Length()))
	for _, edge := range self.edge_list {
		Write(writer, edge.Source)
		Write(writer, edge.Target)
		Write(writer, edge.Attribs)
	}
	return writer.ToFile(file)
}

// The name output is the (offset, length) table followed by the
// contiguous blob.
func (self *Containers) WriteNames(file string) error {
	writer := NewBufferWriter()
	Write(writer, int32(self.names.Count()))
	for _, ref := range self.names.Refs() {
		Write(writer, ref)
	}
	blob := self.names.Blob()
	Write(writer, int32(len(blob)))
	Write(writer, blob)
	return writer.ToFile(file)
}

const (
	RESTRICTION_NODE byte = 0
	RESTRICTION_WAY  byte = 1
)

// Restriction records are tagged with their variant. Node records carry
// one triple, way records two. Conditions follow as length-prefixed
// strings, zero conditions means the restriction always applies.
func (self *Containers) WriteRestrictions(file string) error {
	writer := NewBufferWriter()
	Write(writer, int32(self.resolved.Length()))
	for _, restriction := range self.resolved {
		only := byte(0)
		if restriction.IsOnly {
			only = 1
		}
		switch variant := restriction.Variant.(type) {
		case NodeRestriction:
			Write(writer, RESTRICTION_NODE)
			Write(writer, only)
			Write(writer, variant)
		case WayRestriction:
			Write(writer, RESTRICTION_WAY)
			Write(writer, only)
			Write(writer, variant)
		}
		Write(writer, int32(restriction.Conditions.Length()))
		for _, condition := range restriction.Conditions {
			WriteString(writer, condition)
		}
	}
	return writer.ToFile(file)
}
