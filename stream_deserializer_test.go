package binfmt_test

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/binfmt"
	"github.com/grailbio/binfmt/bytestream"
)

func newDeserializer(data []byte, order binfmt.ByteOrder) *binfmt.StreamDeserializer {
	return binfmt.NewDeserializer(bytestream.NewFixed(data), order)
}

func TestDeserializeBool(t *testing.T) {
	d := newDeserializer([]byte{0, 1, 45}, binfmt.BigEndian)
	v, err := d.Bool()
	require.NoError(t, err)
	expect.EQ(t, v, false)
	v, err = d.Bool()
	require.NoError(t, err)
	expect.EQ(t, v, true)
	_, err = d.Bool()
	require.Equal(t, &binfmt.Error{Kind: binfmt.InvalidEnumVariant}, err)
}

func TestDeserializePrimitivesBigEndian(t *testing.T) {
	d := newDeserializer([]byte{
		0xDE,
		0xDE, 0xAD,
		0xDE, 0xAD, 0xBE, 0xEF,
		0xDE, 0xAD, 0xBE, 0xEF, 0xFE, 0xED, 0xDE, 0xAF,
	}, binfmt.BigEndian)
	u8, err := d.Uint8()
	require.NoError(t, err)
	expect.EQ(t, u8, uint8(0xDE))
	u16, err := d.Uint16()
	require.NoError(t, err)
	expect.EQ(t, u16, uint16(0xDEAD))
	u32, err := d.Uint32()
	require.NoError(t, err)
	expect.EQ(t, u32, uint32(0xDEADBEEF))
	u64, err := d.Uint64()
	require.NoError(t, err)
	expect.EQ(t, u64, uint64(0xDEADBEEF_FEEDDEAF))
	expect.EQ(t, d.Pos(), uint64(15))
}

func TestDeserializeSignedBigEndian(t *testing.T) {
	d := newDeserializer([]byte{
		0xDE,
		0xDE, 0xAD,
		0xDE, 0xAD, 0xBE, 0xEF,
		0xDE, 0xAD, 0xBE, 0xEF, 0xFE, 0xED, 0xDE, 0xAF,
	}, binfmt.BigEndian)
	i8, err := d.Int8()
	require.NoError(t, err)
	expect.EQ(t, i8, int8(-0x22))
	i16, err := d.Int16()
	require.NoError(t, err)
	expect.EQ(t, i16, int16(-0x2153))
	i32, err := d.Int32()
	require.NoError(t, err)
	expect.EQ(t, i32, int32(-0x21524111))
	i64, err := d.Int64()
	require.NoError(t, err)
	expect.EQ(t, i64, int64(-0x2152411001122151))
}

func TestDeserializePrimitivesLittleEndian(t *testing.T) {
	d := newDeserializer([]byte{
		0xAD, 0xDE,
		0xEF, 0xBE, 0xAD, 0xDE,
		0xAF, 0xDE, 0xED, 0xFE, 0xEF, 0xBE, 0xAD, 0xDE,
	}, binfmt.LittleEndian)
	u16, err := d.Uint16()
	require.NoError(t, err)
	expect.EQ(t, u16, uint16(0xDEAD))
	u32, err := d.Uint32()
	require.NoError(t, err)
	expect.EQ(t, u32, uint32(0xDEADBEEF))
	u64, err := d.Uint64()
	require.NoError(t, err)
	expect.EQ(t, u64, uint64(0xDEADBEEF_FEEDDEAF))
}

func TestDeserializeBytes(t *testing.T) {
	d := newDeserializer([]byte{0xAF, 0xDE, 0xED}, binfmt.BigEndian)
	dst := make([]byte, 3)
	require.NoError(t, d.Bytes(dst))
	expect.EQ(t, dst, []byte{0xAF, 0xDE, 0xED})
}

func TestDeserializeEOF(t *testing.T) {
	d := newDeserializer([]byte{0xAF}, binfmt.BigEndian)
	_, err := d.Uint16()
	require.Equal(t, &binfmt.Error{Kind: binfmt.UnexpectedEOF}, err)
}

func TestDeserializePad(t *testing.T) {
	d := newDeserializer([]byte{0xEE, 1, 2, 3, 0xAF}, binfmt.BigEndian)
	v, err := d.Uint8()
	require.NoError(t, err)
	expect.EQ(t, v, uint8(0xEE))
	// Padding bytes are discarded whatever their value.
	require.NoError(t, d.Pad(4))
	v, err = d.Uint8()
	require.NoError(t, err)
	expect.EQ(t, v, uint8(0xAF))
}

func TestDeserializePadExactLengthIsNoop(t *testing.T) {
	d := newDeserializer([]byte{1, 2}, binfmt.BigEndian)
	require.NoError(t, d.Bytes(make([]byte, 2)))
	require.NoError(t, d.Pad(2))
	expect.EQ(t, d.Pos(), uint64(2))
}

func TestDeserializePadLengthExceedsPadding(t *testing.T) {
	d := newDeserializer([]byte{1, 2, 3}, binfmt.BigEndian)
	require.NoError(t, d.Bytes(make([]byte, 3)))
	require.Equal(t, &binfmt.Error{Kind: binfmt.LengthExceedsPadding}, d.Pad(2))
}

func TestDeserializePadComposite(t *testing.T) {
	d := newDeserializer([]byte{0xAA, 0xBB, 0xCC, 0x01, 0x00, 0x00, 0x00, 0xAF}, binfmt.BigEndian)
	require.NoError(t, d.Bytes(make([]byte, 3)))
	require.NoError(t, d.Composite(func(d binfmt.Deserializer) error {
		v, err := d.Bool()
		require.NoError(t, err)
		expect.EQ(t, v, true)
		return d.Pad(4)
	}))
	v, err := d.Uint8()
	require.NoError(t, err)
	expect.EQ(t, v, uint8(0xAF))
}

func TestDeserializeAlign(t *testing.T) {
	d := newDeserializer([]byte{0x62, 0x85, 0x28, 0x75, 0x27, 0x00, 0x00, 0x00, 0x01}, binfmt.BigEndian)
	require.NoError(t, d.Bytes(make([]byte, 5)))
	require.NoError(t, d.Align(4))
	v, err := d.Bool()
	require.NoError(t, err)
	expect.EQ(t, v, true)
}

func TestDeserializeWithByteOrder(t *testing.T) {
	d := newDeserializer([]byte{0xEE, 0xFF, 0xBB, 0xAA, 0xFF, 0xEE}, binfmt.BigEndian)
	v, err := d.Uint16()
	require.NoError(t, err)
	expect.EQ(t, v, uint16(0xEEFF))
	require.NoError(t, d.WithByteOrder(binfmt.LittleEndian, func(d binfmt.Deserializer) error {
		v, err := d.Uint16()
		require.NoError(t, err)
		expect.EQ(t, v, uint16(0xAABB))
		return nil
	}))
	v, err = d.Uint16()
	require.NoError(t, err)
	expect.EQ(t, v, uint16(0xFFEE))
}

func TestDeserializeWithByteOrderKeepsOuterBase(t *testing.T) {
	// A byte-order scope keeps the enclosing composite's base: padding
	// inside it is still measured from the outer composite.
	d := newDeserializer([]byte{1, 2, 3, 4, 5, 6}, binfmt.BigEndian)
	require.NoError(t, d.Bytes(make([]byte, 2)))
	require.NoError(t, d.WithByteOrder(binfmt.LittleEndian, func(d binfmt.Deserializer) error {
		return d.Pad(5)
	}))
	expect.EQ(t, d.Pos(), uint64(5))
}

func TestDeserializeErrorDoesNotRollBack(t *testing.T) {
	d := newDeserializer([]byte{1, 2, 3}, binfmt.BigEndian)
	err := d.Composite(func(d binfmt.Deserializer) error {
		if err := d.Bytes(make([]byte, 2)); err != nil {
			return err
		}
		_, err := d.Uint16()
		return err
	})
	require.Equal(t, &binfmt.Error{Kind: binfmt.UnexpectedEOF}, err)
	// The two bytes consumed before the failure stay consumed.
	expect.EQ(t, d.Pos(), uint64(2))
	v, err := d.Uint8()
	require.NoError(t, err)
	expect.EQ(t, v, uint8(3))
}
