package parser

import (
	"strconv"

	"github.com/ttpr0/go-extract/attr"
	. "github.com/ttpr0/go-extract/util"
)

//*******************************************
// osm decoder
//*******************************************

// IOSMDecoder is the tag-interpretation collaborator. It decides which
// ways are traversable and turns raw tags into attribute records, the
// extraction core stores its decisions as-is.
type IOSMDecoder interface {
	IsValidHighway(tags Dict[string, string]) bool
	DecodeNode(tags Dict[string, string]) attr.NodeAttribs
	DecodeEdge(tags Dict[string, string]) attr.EdgeAttribs
}

//*******************************************
// driving decoder
//*******************************************

type DrivingDecoder struct {
}

func NewDrivingDecoder() *DrivingDecoder {
	return &DrivingDecoder{}
}

var driving_types = Dict[string, bool]{"motorway": true, "motorway_link": true, "trunk": true, "trunk_link": true,
	"primary": true, "primary_link": true, "secondary": true, "secondary_link": true, "tertiary": true, "tertiary_link": true,
	"residential": true, "living_street": true, "service": true, "track": true, "unclassified": true, "road": true}

func (self *DrivingDecoder) IsValidHighway(tags Dict[string, string]) bool {
	if !tags.ContainsKey("highway") {
		return false
	}
	if !driving_types.ContainsKey(tags.Get("highway")) {
		return false
	}
	return true
}

func (self *DrivingDecoder) DecodeNode(tags Dict[string, string]) attr.NodeAttribs {
	return attr.NodeAttribs{
		Barrier:       tags.Get("barrier") != "",
		TrafficSignal: tags.Get("highway") == "traffic_signals",
	}
}

func (self *DrivingDecoder) DecodeEdge(tags Dict[string, string]) attr.EdgeAttribs {
	str_type := attr.RoadTypeFromString(tags.Get("highway"))
	oneway, reversed := _IsOneway(tags.Get("oneway"), tags.Get("junction"), str_type)
	e := attr.EdgeAttribs{}
	e.Type = str_type
	e.Mode = attr.MODE_CAR
	e.Maxspeed = byte(_GetTravelSpeed(str_type, tags.Get("maxspeed")))
	e.Oneway = oneway
	e.Reversed = reversed
	e.Name = tags.Get("name")
	e.TurnLanes = tags.Get("turn:lanes")
	return e
}

func _IsOneway(oneway string, junction string, str_type attr.RoadType) (bool, bool) {
	if oneway == "-1" {
		return true, true
	}
	if oneway == "yes" || oneway == "1" {
		return true, false
	}
	if oneway == "no" || oneway == "0" {
		return false, false
	}
	if str_type == attr.MOTORWAY || str_type == attr.TRUNK || str_type == attr.MOTORWAY_LINK || str_type == attr.TRUNK_LINK {
		return true, false
	}
	if junction == "roundabout" || junction == "circular" {
		return true, false
	}
	return false, false
}

func _GetTravelSpeed(streettype attr.RoadType, maxspeed string) int32 {
	var speed int32
	if maxspeed != "" {
		if maxspeed == "walk" {
			speed = 10
		} else if maxspeed == "none" {
			speed = 130
		} else {
			t, err := strconv.Atoi(maxspeed)
			if err != nil {
				speed = 20
			} else {
				speed = int32(t)
			}
		}
		return speed
	}
	switch streettype {
	case attr.MOTORWAY:
		speed = 100
	case attr.TRUNK:
		speed = 85
	case attr.MOTORWAY_LINK, attr.TRUNK_LINK:
		speed = 60
	case attr.PRIMARY:
		speed = 65
	case attr.SECONDARY:
		speed = 60
	case attr.TERTIARY:
		speed = 50
	case attr.PRIMARY_LINK, attr.SECONDARY_LINK:
		speed = 50
	case attr.TERTIARY_LINK:
		speed = 40
	case attr.UNCLASSIFIED:
		speed = 30
	case attr.RESIDENTIAL:
		speed = 30
	case attr.LIVING_STREET:
		speed = 10
	case attr.ROAD:
		speed = 20
	case attr.TRACK:
		speed = 15
	default:
		speed = 20
	}
	return speed
}
