package model

// Box is an axis-aligned bounding rectangle from a recognition result.
type Box struct {
	X int
	Y int
	W int
	H int
}

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return float64(b.X) + float64(b.W)/2 }

// Detection is the structured result of one recognition call.
// Best is the highest-confidence match; All lists every match found.
type Detection struct {
	Hit  bool
	Best Box
	All  []Box
}
