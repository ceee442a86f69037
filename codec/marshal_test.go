package codec

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/nanobit/errs"
	"github.com/arloliu/nanobit/value"
)

type point struct {
	X, Y  int32
	Label string
}

func (p *point) MarshalNano(enc *Encoder) error {
	enc.WriteStructLen(3)
	enc.WriteInt32(p.X)
	enc.WriteInt32(p.Y)

	return enc.WriteString(p.Label)
}

func (p *point) UnmarshalNano(dec *Decoder) error {
	if err := dec.ReadStructLen(3); err != nil {
		return err
	}

	var err error
	if p.X, err = dec.ReadInt32(); err != nil {
		return err
	}
	if p.Y, err = dec.ReadInt32(); err != nil {
		return err
	}
	if p.Label, err = dec.ReadString(); err != nil {
		return err
	}
	p.Label = strings.Clone(p.Label)

	return nil
}

// path is a Seq<point> with an optional name.
type path struct {
	Name   *string
	Points []point
}

func (p *path) MarshalNano(enc *Encoder) error {
	enc.WriteStructLen(2)
	if p.Name == nil {
		enc.WriteNone()
	} else {
		enc.WriteSome()
		if err := enc.WriteString(*p.Name); err != nil {
			return err
		}
	}

	enc.WriteSeqLen(len(p.Points))
	for i := range p.Points {
		if err := enc.Encode(&p.Points[i]); err != nil {
			return err
		}
	}

	return nil
}

func (p *path) UnmarshalNano(dec *Decoder) error {
	if err := dec.ReadStructLen(2); err != nil {
		return err
	}

	present, err := dec.ReadOption()
	if err != nil {
		return err
	}
	if present {
		name, err := dec.ReadString()
		if err != nil {
			return err
		}
		name = strings.Clone(name)
		p.Name = &name
	}

	n, err := dec.ReadSeqLen()
	if err != nil {
		return err
	}
	p.Points = make([]point, n)
	for i := range p.Points {
		if err := dec.Decode(&p.Points[i]); err != nil {
			return err
		}
	}

	return nil
}

func pointType() *value.Type {
	return value.StructOf("point",
		value.FieldType{Name: "x", Type: value.Prim(value.KindInt32)},
		value.FieldType{Name: "y", Type: value.Prim(value.KindInt32)},
		value.FieldType{Name: "label", Type: value.Prim(value.KindString)},
	)
}

func TestMarshalUnmarshal(t *testing.T) {
	name := "route"
	tests := []struct {
		name string
		in   path
	}{
		{"empty", path{Points: []point{}}},
		{"named", path{Name: &name, Points: []point{{X: 1, Y: -1, Label: "a"}, {X: 1 << 20, Y: 0, Label: ""}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal(&tt.in)
			require.NoError(t, err)

			var out path
			require.NoError(t, Unmarshal(data, &out))
			if diff := cmp.Diff(tt.in, out); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshal_MatchesValueEncoding(t *testing.T) {
	p := point{X: 3, Y: -4, Label: "p"}
	fromMarshaler, err := Marshal(&p)
	require.NoError(t, err)

	fromValue, err := Encode(value.Struct("point",
		value.Field{Name: "x", Value: value.Int32(3)},
		value.Field{Name: "y", Value: value.Int32(-4)},
		value.Field{Name: "label", Value: value.String("p")},
	))
	require.NoError(t, err)
	require.Equal(t, fromValue, fromMarshaler)

	v, err := Decode(fromMarshaler, pointType())
	require.NoError(t, err)
	label, ok := v.Field("label")
	require.True(t, ok)
	require.Equal(t, "p", label.Str())
}

func TestUnmarshal_Errors(t *testing.T) {
	data, err := Marshal(&point{X: 1, Y: 2, Label: "abc"})
	require.NoError(t, err)

	var p point
	require.ErrorIs(t, Unmarshal(data[:len(data)-1], &p), errs.ErrTruncated)
	require.ErrorIs(t, Unmarshal(append(data, 0), &p), errs.ErrInvalidFormat)
	require.ErrorIs(t, Unmarshal([]byte("JUNK!"), &p), errs.ErrInvalidFormat)
}

func TestEncoder_Reuse(t *testing.T) {
	enc, err := NewEncoder(WithInitialCapacity(16))
	require.NoError(t, err)
	require.Equal(t, EnvelopeSize, enc.Len())

	require.NoError(t, enc.Encode(&point{X: 1}))
	first := append([]byte(nil), enc.Finish()...)

	enc.Reset()
	require.Equal(t, EnvelopeSize, enc.Len())
	require.NoError(t, enc.Encode(&point{X: 1}))
	require.Equal(t, first, enc.Finish())
}

func TestEncoder_WriteStringRejectsInvalidUTF8(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	require.ErrorIs(t, enc.WriteString("\xff\xfe"), errs.ErrInvalidFormat)
	require.Equal(t, EnvelopeSize, enc.Len())

	require.NoError(t, enc.WriteString("héllo"))
	v, err := Decode(enc.Finish(), value.Prim(value.KindString))
	require.NoError(t, err)
	require.Equal(t, "héllo", v.Str())
}

func TestDecoder_Accessors(t *testing.T) {
	data, err := Encode(value.Uint16(7))
	require.NoError(t, err)

	dec, err := NewDecoder(data)
	require.NoError(t, err)
	require.Equal(t, Version, dec.Version())
	require.Equal(t, EnvelopeSize, dec.Offset())
	require.Equal(t, 2, dec.Remaining())
	require.Error(t, dec.Finish())

	v, err := dec.ReadUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(7), v)
	require.NoError(t, dec.Finish())
}

func TestSeqStream(t *testing.T) {
	points := []point{{X: 1, Label: "a"}, {X: 2, Label: "b"}, {X: 3, Label: "c"}}

	streamed, err := NewEncoder()
	require.NoError(t, err)

	s := streamed.StreamSeq()
	for i := range points {
		elem, err := s.Next()
		require.NoError(t, err)
		require.NoError(t, elem.Encode(&points[i]))
	}
	require.Equal(t, 3, s.Len())
	require.Equal(t, EnvelopeSize, streamed.Len())
	require.NoError(t, s.Close())

	direct, err := NewEncoder()
	require.NoError(t, err)
	direct.WriteSeqLen(len(points))
	for i := range points {
		require.NoError(t, direct.Encode(&points[i]))
	}

	require.Equal(t, direct.Finish(), streamed.Finish())

	v, err := Decode(streamed.Finish(), value.SeqOf(pointType()))
	require.NoError(t, err)
	require.Equal(t, 3, v.Len())
}

func TestSeqStream_Closed(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	s := enc.StreamSeq()
	require.NoError(t, s.Close())
	require.ErrorIs(t, s.Close(), errs.ErrStreamClosed)

	_, err = s.Next()
	require.ErrorIs(t, err, errs.ErrStreamClosed)

	// an empty stream is an empty sequence
	require.Equal(t, payload(0x00), enc.Finish())
}

func TestEncodeDecode_Concurrent(t *testing.T) {
	var g errgroup.Group
	g.SetLimit(8)

	for i := 0; i < 64; i++ {
		g.Go(func() error {
			in := point{X: int32(i), Y: int32(-i), Label: fmt.Sprintf("p%d", i)} //nolint:gosec
			data, err := Marshal(&in)
			if err != nil {
				return err
			}

			var out point
			if err := Unmarshal(data, &out); err != nil {
				return err
			}
			if out != in {
				return fmt.Errorf("goroutine %d: got %+v, want %+v", i, out, in)
			}

			return nil
		})
	}

	require.NoError(t, g.Wait())
}
