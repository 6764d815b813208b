package geo

//*******************************************
// geometry types
//*******************************************

// Coord is (lon, lat). Coordinates are carried through the pipeline as
// opaque payload, no projection happens here.
type Coord [2]float32

type CoordArray []Coord

func (self Coord) Lon() float32 {
	return self[0]
}
func (self Coord) Lat() float32 {
	return self[1]
}
