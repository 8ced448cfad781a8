package shard

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func seq(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func TestSplit_Coverage(t *testing.T) {
	tests := []struct {
		name   string
		length int
		count  int
		bounds [][2]int
	}{
		{"even", 9, 3, [][2]int{{0, 3}, {3, 6}, {6, 9}}},
		{"remainder to last", 10, 3, [][2]int{{0, 3}, {3, 6}, {6, 10}}},
		{"single shard", 5, 1, [][2]int{{0, 5}}},
		{"more shards than data", 3, 5, [][2]int{{0, 1}, {1, 2}, {2, 3}}},
		{"one element", 1, 1, [][2]int{{0, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := seq(tt.length)
			units, err := Split(data, tt.count)
			require.NoError(t, err)

			var got [][2]int
			var joined []float64
			for _, u := range units {
				got = append(got, [2]int{u.Start, u.End})
				joined = append(joined, u.Data...)
				assert.Len(t, u.Data, u.End-u.Start)
			}
			if diff := cmp.Diff(tt.bounds, got); diff != "" {
				t.Errorf("bounds mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, data, joined)
		})
	}
}

func TestSplit_Names(t *testing.T) {
	units, err := Split(seq(6), 3)
	require.NoError(t, err)
	require.Len(t, units, 3)
	assert.Equal(t, "nrc_target_phi_shard_0", units[0].Name)
	assert.Equal(t, "nrc_target_phi_shard_2", units[2].Name)
}

func TestSplit_Empty(t *testing.T) {
	units, err := Split(nil, 4)
	require.NoError(t, err)
	assert.Empty(t, units)
}

func TestSplit_InvalidCount(t *testing.T) {
	_, err := Split(seq(3), 0)
	assert.ErrorIs(t, err, ErrInvalidShardCount)
}

func TestSplit_CopiesData(t *testing.T) {
	data := seq(4)
	units, err := Split(data, 2)
	require.NoError(t, err)
	data[0] = 99
	assert.Equal(t, 0.0, units[0].Data[0])
}

func TestEncode_JSON(t *testing.T) {
	units, err := Split([]float64{1.5, 2.5}, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, units, "json"))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "nrc_target_phi_shard_1", decoded[1]["name"])
	assert.Equal(t, float64(1), decoded[1]["start_index"])
	assert.Equal(t, float64(2), decoded[1]["end_index"])
}

func TestEncode_YAML(t *testing.T) {
	units, err := Split(seq(4), 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, units, "yaml"))
	assert.Contains(t, buf.String(), "name: nrc_target_phi_shard_0")
	assert.Contains(t, buf.String(), "data: [2, 3]")

	var decoded []WorkUnit
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, units, decoded)
}

func TestEncode_UnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, nil, "xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFoldCount(t *testing.T) {
	folds, final, err := FoldCount(2048, 2048)
	require.NoError(t, err)
	assert.Zero(t, folds)
	assert.Equal(t, 2048.0, final)

	folds, final, err = FoldCount(4096, 2048)
	require.NoError(t, err)
	assert.Equal(t, 2, folds)
	assert.LessOrEqual(t, final, 2048.0)

	folds, _, err = FoldCount(1_000_000_000, 2048)
	require.NoError(t, err)
	assert.Equal(t, 28, folds)
	assert.InDelta(t, 27.2, TheoreticalFolds(1_000_000_000, 2048), 0.05)
}

func TestFoldCount_InvalidWidth(t *testing.T) {
	_, _, err := FoldCount(10, 0)
	assert.ErrorIs(t, err, ErrInvalidWidth)
}
