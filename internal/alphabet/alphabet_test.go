package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		seq     string
		want    OneHot
		wantErr bool
	}{
		{
			name: "identity block",
			seq:  "ACGT",
			want: OneHot{
				{1, 0, 0, 0},
				{0, 1, 0, 0},
				{0, 0, 1, 0},
				{0, 0, 0, 1},
			},
		},
		{
			name: "ignored base yields zero column",
			seq:  "ACNGT",
			want: OneHot{
				{1, 0, 0, 0, 0},
				{0, 1, 0, 0, 0},
				{0, 0, 0, 1, 0},
				{0, 0, 0, 0, 1},
			},
		},
		{
			name: "lowercase is normalized",
			seq:  "acgt",
			want: OneHot{
				{1, 0, 0, 0},
				{0, 1, 0, 0},
				{0, 0, 1, 0},
				{0, 0, 0, 1},
			},
		},
		{
			name: "empty sequence",
			seq:  "",
			want: OneHot{{}, {}, {}, {}},
		},
		{
			name:    "invalid base X",
			seq:     "ACXGT",
			wantErr: true,
		},
		{
			name:    "RNA base U is invalid",
			seq:     "ACGU",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Encode(tt.seq)

			if tt.wantErr {
				require.Error(t, err)
				assert.IsType(t, &InvalidBaseError{}, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, h)
		})
	}
}

func TestEncodeErrorPosition(t *testing.T) {
	_, err := Encode("ACGTX")
	require.Error(t, err)

	baseErr, ok := err.(*InvalidBaseError)
	require.True(t, ok)
	assert.Equal(t, 4, baseErr.Position)
	assert.Equal(t, 'X', baseErr.Found)
}

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		rc   string
	}{
		{"palindrome", "ACGT", "ACGT"},
		{"asymmetric", "AAACG", "CGTTT"},
		{"single base", "A", "T"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Encode(tt.seq)
			require.NoError(t, err)

			want, err := Encode(tt.rc)
			require.NoError(t, err)

			assert.Equal(t, want, h.ReverseComplement())
		})
	}
}

func TestReverseComplementInvolution(t *testing.T) {
	h, err := Encode("ACGTTGCAAC")
	require.NoError(t, err)

	assert.Equal(t, h, h.ReverseComplement().ReverseComplement())
}

func TestReverseComplementIgnoredColumn(t *testing.T) {
	h, err := Encode("ANG")
	require.NoError(t, err)

	rc := h.ReverseComplement()

	// rc("ANG") keeps the ignored base in the middle: "CNT"
	want, err := Encode("CNT")
	require.NoError(t, err)
	assert.Equal(t, want, rc)
}

func TestSymbolIndexes(t *testing.T) {
	h, err := Encode("ACNGT")
	require.NoError(t, err)

	assert.Equal(t, []int8{0, 1, -1, 2, 3}, h.SymbolIndexes())
}

func TestIndex(t *testing.T) {
	assert.Equal(t, 0, Index('A'))
	assert.Equal(t, 1, Index('C'))
	assert.Equal(t, 2, Index('G'))
	assert.Equal(t, 3, Index('T'))
	assert.Equal(t, -1, Index('N'))
	assert.Equal(t, -1, Index('X'))
}

func TestComplementPermutation(t *testing.T) {
	for a := 0; a < Size; a++ {
		assert.Equal(t, a, Complement[Complement[a]])
	}
	assert.Equal(t, byte('T'), Letters[Complement[Index('A')]])
	assert.Equal(t, byte('G'), Letters[Complement[Index('C')]])
}
