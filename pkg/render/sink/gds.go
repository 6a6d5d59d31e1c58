package sink

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"github.com/matzehuels/maskcompo/pkg/errors"
	"github.com/matzehuels/maskcompo/pkg/render"
)

// GDSII record types (high byte) and data types (low byte).
const (
	gdsHeader   = 0x0002
	gdsBgnLib   = 0x0102
	gdsLibName  = 0x0206
	gdsUnits    = 0x0305
	gdsEndLib   = 0x0400
	gdsBgnStr   = 0x0502
	gdsStrName  = 0x0606
	gdsEndStr   = 0x0700
	gdsBoundary = 0x0800
	gdsLayer    = 0x0D02
	gdsDatatype = 0x0E02
	gdsXY       = 0x1003
	gdsEndEl    = 0x1100
)

// gdsMaxPoints is the largest vertex count of a BOUNDARY, closing point
// included.
const gdsMaxPoints = 8191

// GDSOption configures GDSII rendering.
type GDSOption func(*gdsRenderer)

type gdsRenderer struct {
	unit      float64 // meters per user unit
	precision float64 // meters per database unit
	layers    map[string]int
	stamp     time.Time
}

// WithGDSUnits sets the user unit and database precision in meters
// (default 1e-6 and 1e-9: micrometre drawing units on a nanometre grid).
func WithGDSUnits(unit, precision float64) GDSOption {
	return func(r *gdsRenderer) { r.unit, r.precision = unit, precision }
}

// WithGDSLayers assigns GDSII layer numbers to layer names. Layers missing
// from the map get the next free number after the largest one in use.
func WithGDSLayers(m map[string]int) GDSOption {
	return func(r *gdsRenderer) { r.layers = m }
}

// WithGDSTime sets the library and structure timestamps (default the Unix
// epoch, so output only depends on the geometry).
func WithGDSTime(t time.Time) GDSOption {
	return func(r *gdsRenderer) { r.stamp = t }
}

// RenderGDS writes the scene as a GDSII stream holding one structure named
// after the component, with one BOUNDARY per polygon.
func RenderGDS(s render.Scene, opts ...GDSOption) ([]byte, error) {
	r := gdsRenderer{unit: 1e-6, precision: 1e-9, stamp: time.Unix(0, 0).UTC()}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.unit > 0) || !(r.precision > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"gds units must be positive, got unit=%g precision=%g", r.unit, r.precision)
	}

	numbers, err := LayerNumbers(s, r.layers)
	if err != nil {
		return nil, err
	}
	name := s.Name
	if name == "" {
		name = "TOP"
	}

	w := gdsWriter{}
	w.int16s(gdsHeader, 600)
	w.int16s(gdsBgnLib, append(gdsStamp(r.stamp), gdsStamp(r.stamp)...)...)
	w.str(gdsLibName, name)
	w.reals(gdsUnits, r.precision/r.unit, r.precision)
	w.int16s(gdsBgnStr, append(gdsStamp(r.stamp), gdsStamp(r.stamp)...)...)
	w.str(gdsStrName, name)

	dbPerUnit := r.unit / r.precision
	for _, p := range s.Polygons {
		n := len(p.Points)
		if n < 3 {
			continue
		}
		if n+1 > gdsMaxPoints {
			return nil, errors.New(errors.ErrCodeUnsupported,
				"%s has %d vertices, gds allows %d; use a coarser arc step", p.Path, n, gdsMaxPoints-1)
		}
		xy := make([]int32, 0, 2*(n+1))
		for _, pt := range p.Points {
			x, y, err := toDB(pt.X*dbPerUnit, pt.Y*dbPerUnit)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", p.Path)
			}
			xy = append(xy, x, y)
		}
		xy = append(xy, xy[0], xy[1])

		w.record(gdsBoundary, nil)
		w.int16s(gdsLayer, int16(numbers[p.Layer]))
		w.int16s(gdsDatatype, 0)
		w.int32s(gdsXY, xy...)
		w.record(gdsEndEl, nil)
	}

	w.record(gdsEndStr, nil)
	w.record(gdsEndLib, nil)
	return w.buf.Bytes(), nil
}

// LayerNumbers resolves the GDSII layer number of every layer in the scene.
func LayerNumbers(s render.Scene, fixed map[string]int) (map[string]int, error) {
	out := make(map[string]int, len(s.Layers))
	next := 1
	for name, n := range fixed {
		if n < 0 || n > math.MaxInt16 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "gds layer %q: number %d out of range", name, n)
		}
		if n >= next {
			next = n + 1
		}
	}
	for _, l := range s.Layers {
		if n, ok := fixed[l.Name]; ok {
			out[l.Name] = n
			continue
		}
		if next > math.MaxInt16 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "gds layer numbers exhausted at %q", l.Name)
		}
		out[l.Name] = next
		next++
	}
	return out, nil
}

func toDB(x, y float64) (int32, int32, error) {
	rx, ry := math.Round(x), math.Round(y)
	if rx < math.MinInt32 || rx > math.MaxInt32 || ry < math.MinInt32 || ry > math.MaxInt32 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "coordinate (%g, %g) outside the gds grid", x, y)
	}
	return int32(rx), int32(ry), nil
}

func gdsStamp(t time.Time) []int16 {
	return []int16{
		int16(t.Year()), int16(t.Month()), int16(t.Day()),
		int16(t.Hour()), int16(t.Minute()), int16(t.Second()),
	}
}

// gdsReal encodes v as an excess-64 base-16 GDSII real.
func gdsReal(v float64) uint64 {
	if v == 0 {
		return 0
	}
	var sign uint64
	if v < 0 {
		sign = 1 << 63
		v = -v
	}
	exp := 64
	for v >= 1 {
		v /= 16
		exp++
	}
	for v < 1.0/16 {
		v *= 16
		exp--
	}
	mant := uint64(math.Ldexp(v, 56))
	return sign | uint64(exp)<<56 | mant
}

// gdsFloat decodes a GDSII real.
func gdsFloat(bits uint64) float64 {
	if bits&^(1<<63) == 0 {
		return 0
	}
	exp := int((bits>>56)&0x7f) - 64
	v := math.Ldexp(float64(bits&(1<<56-1)), -56) * math.Pow(16, float64(exp))
	if bits>>63 == 1 {
		return -v
	}
	return v
}

type gdsWriter struct {
	buf bytes.Buffer
}

func (w *gdsWriter) record(kind uint16, data []byte) {
	var head [4]byte
	binary.BigEndian.PutUint16(head[0:], uint16(4+len(data)))
	binary.BigEndian.PutUint16(head[2:], kind)
	w.buf.Write(head[:])
	w.buf.Write(data)
}

func (w *gdsWriter) int16s(kind uint16, vs ...int16) {
	data := make([]byte, 2*len(vs))
	for i, v := range vs {
		binary.BigEndian.PutUint16(data[2*i:], uint16(v))
	}
	w.record(kind, data)
}

func (w *gdsWriter) int32s(kind uint16, vs ...int32) {
	data := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.BigEndian.PutUint32(data[4*i:], uint32(v))
	}
	w.record(kind, data)
}

func (w *gdsWriter) reals(kind uint16, vs ...float64) {
	data := make([]byte, 8*len(vs))
	for i, v := range vs {
		binary.BigEndian.PutUint64(data[8*i:], gdsReal(v))
	}
	w.record(kind, data)
}

func (w *gdsWriter) str(kind uint16, s string) {
	data := []byte(s)
	if len(data)%2 == 1 {
		data = append(data, 0)
	}
	w.record(kind, data)
}
