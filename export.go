package main

import (
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	"github.com/ttpr0/go-extract/extract"
)

//**********************************************************
// geojson export
//**********************************************************

// ExportGeoJSON writes the normalized network as a feature collection,
// one line string per directed edge. Meant for visual inspection of
// extraction results, not as a routing input.
func ExportGeoJSON(containers *extract.Containers, file string) error {
	nodes := containers.Nodes()
	names := containers.Names()

	collection := geojson.NewFeatureCollection()
	for _, edge := range containers.Edges() {
		source := nodes.Get(int(edge.Source))
		target := nodes.Get(int(edge.Target))
		geometry := geojson.NewLineStringGeometry([][]float64{
			{float64(source.Loc.Lon()), float64(source.Loc.Lat())},
			{float64(target.Loc.Lon()), float64(target.Loc.Lat())},
		})
		feature := geojson.NewFeature(geometry)
		feature.SetProperty("type", edge.Attribs.Type.String())
		feature.SetProperty("maxspeed", int(edge.Attribs.Maxspeed))
		feature.SetProperty("name", names.Get(extract.NameRef{Offset: edge.Attribs.NameOffset, Length: edge.Attribs.NameLength}))
		collection.AddFeature(feature)
	}

	data, err := collection.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "failed to marshal geojson")
	}
	if err := os.WriteFile(file, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write geojson file")
	}
	return nil
}
