package bytestream

import (
	"io"
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func TestGrowingWriteAppends(t *testing.T) {
	s := NewGrowing()
	require.NoError(t, s.WriteFull([]byte{1, 2, 3}))
	require.NoError(t, s.WriteFull([]byte{4, 5}))
	expect.EQ(t, s.Bytes(), []byte{1, 2, 3, 4, 5})
}

func TestGrowingWritePastEndZeroFills(t *testing.T) {
	s := NewGrowing()
	require.NoError(t, s.WriteFull([]byte{1, 2}))
	_, err := s.Seek(5, io.SeekStart)
	require.NoError(t, err)
	require.NoError(t, s.WriteFull([]byte{9}))
	expect.EQ(t, s.Bytes(), []byte{1, 2, 0, 0, 0, 9})
}

func TestGrowingWriteOverlapsEnd(t *testing.T) {
	s := NewGrowingBytes([]byte{1, 2, 3})
	_, err := s.Seek(2, io.SeekStart)
	require.NoError(t, err)
	require.NoError(t, s.WriteFull([]byte{7, 8, 9}))
	expect.EQ(t, s.Bytes(), []byte{1, 2, 7, 8, 9})
}

func TestGrowingReadBoundedByLength(t *testing.T) {
	s := NewGrowingBytes([]byte{1, 2, 3})
	dst := make([]byte, 3)
	require.NoError(t, s.ReadFull(dst))
	expect.EQ(t, dst, []byte{1, 2, 3})
	require.Equal(t, io.ErrUnexpectedEOF, s.ReadFull(dst[:1]))
}

func TestGrowingReadAtSeekedPastEnd(t *testing.T) {
	s := NewGrowingBytes([]byte{1, 2, 3})
	_, err := s.Seek(5, io.SeekStart)
	require.NoError(t, err)
	require.Equal(t, io.ErrUnexpectedEOF, s.ReadFull(make([]byte, 1)))
}

func TestGrowingSeek(t *testing.T) {
	s := NewGrowingBytes([]byte{1, 2, 3})
	pos, err := s.Seek(10, io.SeekStart)
	require.NoError(t, err)
	expect.EQ(t, pos, int64(10))
	pos, err = s.Seek(-1, io.SeekEnd)
	require.NoError(t, err)
	expect.EQ(t, pos, int64(2))
	_, err = s.Seek(-5, io.SeekCurrent)
	require.Equal(t, io.ErrUnexpectedEOF, err)
	length, err := Length(s)
	require.NoError(t, err)
	expect.EQ(t, length, int64(3))
}

func TestGrowingBytesCopiesInput(t *testing.T) {
	data := []byte{1, 2, 3}
	s := NewGrowingBytes(data)
	require.NoError(t, s.WriteFull([]byte{9}))
	expect.EQ(t, data, []byte{1, 2, 3})
}
