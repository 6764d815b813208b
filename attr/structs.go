package attr

//*******************************************
// decoded attributes
//*******************************************

// EdgeAttribs is the decision record produced by the tag decoder for a
// traversable way. It is stored as-is, the extraction core never looks
// at raw tags itself.
type EdgeAttribs struct {
	Type      RoadType
	Mode      TravelMode
	Maxspeed  byte
	Oneway    bool
	Reversed  bool
	Name      string
	TurnLanes string
}

type NodeAttribs struct {
	Barrier       bool
	TrafficSignal bool
}
