package report

import (
	"math"

	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jwriter"
)

var (
	_ easyjson.Marshaler = (*Report)(nil)
	_ easyjson.Marshaler = (*Directory)(nil)
	_ easyjson.Marshaler = (*TagInfo)(nil)
	_ easyjson.Marshaler = (*Image)(nil)
)

// JSON encodes r with easyjson.
func (r *Report) JSON() ([]byte, error) {
	return easyjson.Marshal(r)
}

// MarshalJSON supports json.Marshaler interface
func (r *Report) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	r.MarshalEasyJSON(&w)
	return w.Buffer.BuildBytes(), w.Error
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (r *Report) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"path":`)
	w.String(r.Path)
	w.RawString(`,"version":`)
	w.String(r.Version)
	w.RawString(`,"byte_order":`)
	w.String(r.ByteOrder)
	w.RawString(`,"size":`)
	w.Int64(r.Size)
	w.RawString(`,"directories":[`)
	for i := range r.Dirs {
		if i > 0 {
			w.RawByte(',')
		}
		r.Dirs[i].MarshalEasyJSON(w)
	}
	w.RawString(`]}`)
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (d *Directory) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"index":`)
	w.Int(d.Index)
	w.RawString(`,"tags":[`)
	for i := range d.Tags {
		if i > 0 {
			w.RawByte(',')
		}
		d.Tags[i].MarshalEasyJSON(w)
	}
	w.RawByte(']')
	if d.Image != nil {
		w.RawString(`,"image":`)
		d.Image.MarshalEasyJSON(w)
	}
	if d.Error != "" {
		w.RawString(`,"error":`)
		w.String(d.Error)
	}
	w.RawByte('}')
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (t *TagInfo) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"tag":`)
	w.Uint16(t.Tag)
	w.RawString(`,"name":`)
	w.String(t.Name)
	w.RawString(`,"type":`)
	w.String(t.Type)
	w.RawString(`,"count":`)
	w.Uint64(t.Count)
	w.RawString(`,"inline":`)
	w.Bool(t.Inline)
	w.RawString(`,"value":`)
	w.String(t.Value)
	w.RawByte('}')
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (m *Image) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"width":`)
	w.Int(m.Width)
	w.RawString(`,"height":`)
	w.Int(m.Height)
	w.RawString(`,"bits_per_sample":`)
	w.Int(m.BitsPerSample)
	w.RawString(`,"samples_per_pixel":`)
	w.Int(m.SamplesPerPixel)
	w.RawString(`,"sample_format":`)
	w.String(m.SampleFormat)
	w.RawString(`,"compression":`)
	w.String(m.Compression)
	w.RawString(`,"tiled":`)
	w.Bool(m.Tiled)
	if m.Tiled {
		w.RawString(`,"tile_width":`)
		w.Int(m.TileWidth)
		w.RawString(`,"tile_height":`)
		w.Int(m.TileHeight)
	} else {
		w.RawString(`,"rows_per_strip":`)
		w.Int(m.RowsPerStrip)
	}
	w.RawString(`,"segments":`)
	w.Int(m.Segments)
	if m.Sample != nil {
		w.RawString(`,"sample":[`)
		for i, v := range m.Sample {
			if i > 0 {
				w.RawByte(',')
			}
			// JSON has no NaN or Inf.
			if math.IsNaN(v) || math.IsInf(v, 0) {
				w.RawString("null")
				continue
			}
			w.Float64(v)
		}
		w.RawByte(']')
	}
	w.RawByte('}')
}
