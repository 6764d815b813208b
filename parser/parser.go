package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"github.com/ttpr0/go-extract/extract"
	"github.com/ttpr0/go-extract/geo"
	. "github.com/ttpr0/go-extract/util"
	"golang.org/x/exp/slog"
)

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// ParseOSM scans the source file twice and fills the extraction
// containers: the first scan collects ways and restriction relations,
// the second the coordinates and flags of the referenced nodes. No
// assumption is made about entity order within the file.
func ParseOSM(filename string, decoder IOSMDecoder, containers *extract.Containers) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "failed to open source file")
	}
	defer file.Close()

	scanner, err := _NewScanner(filename, file)
	if err != nil {
		return err
	}
	_ScanWays(scanner, decoder, containers)
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return errors.Wrap(err, "failed to scan ways")
	}
	scanner.Close()

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "failed to seek after way scan")
	}
	scanner, err = _NewScanner(filename, file)
	if err != nil {
		return err
	}
	defer scanner.Close()
	_ScanNodes(scanner, decoder, containers)
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "failed to scan nodes")
	}
	return nil
}

func _NewScanner(filename string, file *os.File) (OSMScanner, error) {
	switch ext := filepath.Ext(filename); ext {
	case ".osm", ".xml":
		return osmxml.New(context.Background(), file), nil
	case ".pbf":
		return osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1)), nil
	default:
		return nil, fmt.Errorf("file extension '%s' is not handled", ext)
	}
}

//*******************************************
// scan handlers
//*******************************************

func _ScanWays(scanner OSMScanner, decoder IOSMDecoder, containers *extract.Containers) {
	c := 0
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			nodes := object.Nodes.NodeIDs()
			l := len(nodes)
			if l < 2 {
				continue
			}
			c += 1
			if c%10000 == 0 {
				slog.Debug(fmt.Sprintf("scanned %v ways", c))
			}
			attribs := decoder.DecodeEdge(tags)
			way_id := int64(object.ID)
			for i := 1; i < l; i++ {
				source := nodes[i-1].FeatureID().Ref()
				target := nodes[i].FeatureID().Ref()
				containers.AddSegment(source, target, way_id, int32(i-1), attribs)
			}
			containers.AddWaySegments(extract.WaySegments{
				WayID:       way_id,
				FirstSource: nodes[0].FeatureID().Ref(),
				FirstTarget: nodes[1].FeatureID().Ref(),
				LastSource:  nodes[l-2].FeatureID().Ref(),
				LastTarget:  nodes[l-1].FeatureID().Ref(),
			})
		case *osm.Relation:
			_ParseRestriction(object, containers)
		default:
			continue
		}
	}
}

func _ScanNodes(scanner OSMScanner, decoder IOSMDecoder, containers *extract.Containers) {
	c := 0
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			id := object.FeatureID().Ref()
			if !containers.IsNodeUsed(id) {
				continue
			}
			c += 1
			if c%10000 == 0 {
				slog.Debug(fmt.Sprintf("scanned %v nodes", c))
			}
			containers.AddNode(id, geo.Coord{float32(object.Lon), float32(object.Lat)})
			node_attr := decoder.DecodeNode(Dict[string, string](object.TagMap()))
			if node_attr.Barrier {
				containers.AddBarrierNode(id)
			}
			if node_attr.TrafficSignal {
				containers.AddTrafficSignal(id)
			}
		default:
			continue
		}
	}
}

//*******************************************
// restriction relations
//*******************************************

func _ParseRestriction(relation *osm.Relation, containers *extract.Containers) {
	tags := relation.TagMap()
	if tags["type"] != "restriction" {
		return
	}
	value := tags["restriction"]
	conditions := NewList[string](0)
	if value == "" {
		conditional := tags["restriction:conditional"]
		if conditional == "" {
			containers.CountUnsupportedRelation()
			return
		}
		parts := strings.SplitN(conditional, "@", 2)
		if len(parts) != 2 {
			containers.CountUnsupportedRelation()
			return
		}
		value = strings.TrimSpace(parts[0])
		for _, condition := range strings.Split(parts[1], ";") {
			condition = strings.TrimSpace(condition)
			condition = strings.TrimPrefix(condition, "(")
			condition = strings.TrimSuffix(condition, ")")
			if condition != "" {
				conditions.Add(condition)
			}
		}
		if conditions.Length() == 0 {
			containers.CountUnsupportedRelation()
			return
		}
	}
	if value == "" {
		containers.CountUnsupportedRelation()
		return
	}
	is_only := strings.HasPrefix(value, "only_")

	from_ref := int64(0)
	from_count := 0
	to_ref := int64(0)
	to_count := 0
	via_ref := int64(0)
	via_type := osm.Type("")
	via_count := 0
	for _, member := range relation.Members {
		switch member.Role {
		case "from":
			if member.Type != osm.TypeWay {
				containers.CountUnsupportedRelation()
				return
			}
			from_ref = member.Ref
			from_count += 1
		case "via":
			via_ref = member.Ref
			via_type = member.Type
			via_count += 1
		case "to":
			if member.Type != osm.TypeWay {
				containers.CountUnsupportedRelation()
				return
			}
			to_ref = member.Ref
			to_count += 1
		default:
			// roles like location_hint are irrelevant here
			continue
		}
	}
	if from_count != 1 || to_count != 1 || via_count != 1 {
		containers.CountUnsupportedRelation()
		return
	}

	var variant extract.IRawVariant
	switch via_type {
	case osm.TypeNode:
		variant = extract.RawNodeRestriction{
			FromWay: from_ref,
			ViaNode: via_ref,
			ToWay:   to_ref,
		}
	case osm.TypeWay:
		variant = extract.RawWayRestriction{
			FromWay: from_ref,
			ViaWay:  via_ref,
			ToWay:   to_ref,
		}
	default:
		containers.CountUnsupportedRelation()
		return
	}
	containers.AddRestriction(extract.RawRestriction{
		Variant:    variant,
		IsOnly:     is_only,
		Conditions: conditions,
	})
}
