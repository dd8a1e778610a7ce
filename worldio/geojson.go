package worldio

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"motion-world/world"
)

// Feature kinds stored in the "kind" property
const (
	KindBounds = "bounds"
	KindBlock  = "block"
	KindStart  = "start"
	KindGoal   = "goal"
)

// Footprints projects the world onto the xy plane: one polygon per block and for the
// bounds, carrying the z interval as properties, and points for start and goal
func Footprints(w *world.World) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	bounds := boxFeature(KindBounds, w.Bounds())
	fc.Append(bounds)

	for i, b := range w.Blocks() {
		f := boxFeature(KindBlock, b.Extents)
		f.Properties["index"] = i
		if b.Color != nil {
			f.Properties["color"] = []float64{b.Color[0], b.Color[1], b.Color[2]}
		}
		fc.Append(f)
	}

	if p, ok := w.Start(); ok {
		fc.Append(pointFeature(KindStart, p.X, p.Y, p.Z))
	}
	if p, ok := w.Goal(); ok {
		fc.Append(pointFeature(KindGoal, p.X, p.Y, p.Z))
	}
	return fc
}

func boxFeature(kind string, e world.Extents) *geojson.Feature {
	ring := orb.Ring{
		{e.XMin, e.YMin},
		{e.XMax, e.YMin},
		{e.XMax, e.YMax},
		{e.XMin, e.YMax},
		{e.XMin, e.YMin},
	}
	f := geojson.NewFeature(orb.Polygon{ring})
	f.Properties["kind"] = kind
	f.Properties["zmin"] = e.ZMin
	f.Properties["zmax"] = e.ZMax
	return f
}

func pointFeature(kind string, x, y, z float64) *geojson.Feature {
	f := geojson.NewFeature(orb.Point{x, y})
	f.Properties["kind"] = kind
	f.Properties["z"] = z
	return f
}

// FromFootprints rebuilds a world from a footprint collection. Block polygons are
// reduced to their bounding box, so MultiPolygon and non-rectangular footprints are
// accepted too. Features of unknown kind are skipped.
func FromFootprints(fc *geojson.FeatureCollection) (*world.World, error) {
	var rec world.Record
	haveBounds := false
	skipped := 0

	for i, f := range fc.Features {
		kind, _ := f.Properties["kind"].(string)
		switch kind {
		case KindBounds, KindBlock:
			ext, err := featureExtents(f)
			if err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
			if kind == KindBounds {
				rec.Bounds = world.BoundsRecord{Extents: ext}
				haveBounds = true
				continue
			}
			br := world.BlockRecord{Extents: ext}
			if color, ok := f.Properties["color"]; ok {
				c, err := floats(color)
				if err != nil {
					return nil, fmt.Errorf("feature %d: color: %w", i, err)
				}
				br.Color = c
			}
			rec.Blocks = append(rec.Blocks, br)

		case KindStart, KindGoal:
			pt, ok := f.Geometry.(orb.Point)
			if !ok {
				return nil, fmt.Errorf("feature %d: %w: %s must be a Point", i, world.ErrInvalidRecord, kind)
			}
			z, err := number(f.Properties, "z")
			if err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
			p := []float64{pt.X(), pt.Y(), z}
			if kind == KindStart {
				rec.Start = p
			} else {
				rec.Goal = p
			}

		default:
			skipped++
		}
	}

	if skipped > 0 {
		log.Printf("⚠️  Skipped %d features without a known kind\n", skipped)
	}
	if !haveBounds {
		return nil, fmt.Errorf("%w: no %q feature", world.ErrInvalidRecord, KindBounds)
	}
	return world.FromRecord(rec)
}

func featureExtents(f *geojson.Feature) ([]float64, error) {
	if f.Geometry == nil {
		return nil, fmt.Errorf("%w: missing geometry", world.ErrInvalidRecord)
	}
	zmin, err := number(f.Properties, "zmin")
	if err != nil {
		return nil, err
	}
	zmax, err := number(f.Properties, "zmax")
	if err != nil {
		return nil, err
	}
	b := f.Geometry.Bound()
	return []float64{b.Min.X(), b.Max.X(), b.Min.Y(), b.Max.Y(), zmin, zmax}, nil
}

func number(props geojson.Properties, key string) (float64, error) {
	switch v := props[key].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	default:
		return 0, fmt.Errorf("%w: property %q must be a number", world.ErrInvalidRecord, key)
	}
}

func floats(v interface{}) ([]float64, error) {
	switch vs := v.(type) {
	case []float64:
		return vs, nil
	case []interface{}:
		out := make([]float64, 0, len(vs))
		for _, x := range vs {
			f, ok := x.(float64)
			if !ok {
				return nil, fmt.Errorf("%w: %v is not a number", world.ErrInvalidRecord, x)
			}
			out = append(out, f)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected a list of numbers", world.ErrInvalidRecord)
	}
}

// EncodeGeoJSON writes the footprint collection of a world
func EncodeGeoJSON(wr io.Writer, w *world.World) error {
	data, err := json.MarshalIndent(Footprints(w), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal footprints: %w", err)
	}
	_, err = wr.Write(data)
	return err
}

// DecodeGeoJSON parses a footprint collection and rebuilds the world
func DecodeGeoJSON(r io.Reader) (*world.World, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse footprints: %w", err)
	}
	return FromFootprints(fc)
}
