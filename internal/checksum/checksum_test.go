package checksum

import (
	"hash/crc32"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum_ReferenceVectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
		want  uint32
	}{
		{"empty", nil, 0x00000000},
		{"empty slice", []byte{}, 0x00000000},
		{"check value", []byte("123456789"), 0xCBF43926},
		{"hello", []byte("hello"), 0x3610A686},
		{"single byte", []byte{0x00}, 0xD202EF8D},
		{"all ones", []byte{0xFF, 0xFF, 0xFF, 0xFF}, 0xFFFFFFFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Sum(tt.input))
		})
	}
}

func TestUpdate_Incremental(t *testing.T) {
	t.Parallel()

	data := []byte("123456789")
	for split := 0; split <= len(data); split++ {
		crc := Update(0, data[:split])
		crc = Update(crc, data[split:])
		require.Equal(t, uint32(0xCBF43926), crc, "split at %d", split)
	}
}

func TestSum_MatchesStdlib(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	for _, size := range []int{1, 7, 64, 255, 256, 4096, 1 << 16} {
		buf := make([]byte, size)
		_, err := rng.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, crc32.ChecksumIEEE(buf), Sum(buf), "size %d", size)
	}
}

func TestUpdate_MatchesStdlib(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(2))
	buf := make([]byte, 8192)
	_, err := rng.Read(buf)
	require.NoError(t, err)

	var got, want uint32
	for start := 0; start < len(buf); start += 1000 {
		end := min(start+1000, len(buf))
		got = Update(got, buf[start:end])
		want = crc32.Update(want, crc32.IEEETable, buf[start:end])
	}
	assert.Equal(t, want, got)
}

func BenchmarkSum(b *testing.B) {
	buf := make([]byte, 32*1024)
	for i := range buf {
		buf[i] = byte(i)
	}
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for range b.N {
		Sum(buf)
	}
}
