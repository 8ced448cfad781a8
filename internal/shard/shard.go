// Package shard splits a numeric workload into contiguous work units for
// distributed processing.
package shard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/roach88/nrcfold/internal/constants"
)

// NamePrefix prefixes every work unit name; the shard index follows it.
const NamePrefix = "nrc_target_phi_shard_"

var (
	// ErrInvalidShardCount is returned when fewer than one shard is requested.
	ErrInvalidShardCount = errors.New("shard: count must be >= 1")

	// ErrInvalidWidth is returned by FoldCount for a non-positive shard width.
	ErrInvalidWidth = errors.New("shard: width must be >= 1")

	// ErrUnknownFormat is returned by Encode for formats other than yaml and json.
	ErrUnknownFormat = errors.New("shard: unknown output format")
)

// WorkUnit is one contiguous slice [Start, End) of the input.
type WorkUnit struct {
	Name  string    `json:"name" yaml:"name"`
	Start int       `json:"start_index" yaml:"start_index"`
	End   int       `json:"end_index" yaml:"end_index"`
	Data  []float64 `json:"data" yaml:"data,flow"`
}

// Split divides data into at most count contiguous units of size
// max(1, len/count). The last unit absorbs the remainder and units that
// would be empty are dropped, so the result covers data exactly once.
func Split(data []float64, count int) ([]WorkUnit, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShardCount, count)
	}
	chunk := max(1, len(data)/count)

	units := make([]WorkUnit, 0, min(count, len(data)))
	for i := 0; i < count; i++ {
		start := i * chunk
		end := start + chunk
		if i == count-1 {
			end = len(data)
		}
		if start >= len(data) || end <= start {
			continue
		}
		end = min(end, len(data))
		units = append(units, WorkUnit{
			Name:  fmt.Sprintf("%s%d", NamePrefix, i),
			Start: start,
			End:   end,
			Data:  append([]float64(nil), data[start:end]...),
		})
	}
	return units, nil
}

// Encode writes units as a YAML sequence or a JSON array.
func Encode(w io.Writer, units []WorkUnit, format string) error {
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(units); err != nil {
			return fmt.Errorf("shard: encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(units); err != nil {
			return fmt.Errorf("shard: encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FoldCount returns how many φ⁻¹ contractions bring a sequence of length n
// down to at most width, and the effective size after the last fold.
func FoldCount(n, width int64) (folds int, final float64, err error) {
	if width < 1 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	phiInv := constants.PhiInverse().Float
	final = float64(n)
	for final > float64(width) {
		final *= phiInv
		folds++
	}
	return folds, final, nil
}

// TheoreticalFolds is log_φ(n/width), the continuous fold count.
func TheoreticalFolds(n, width int64) float64 {
	return math.Log(float64(n)/float64(width)) / math.Log(constants.Phi().Float)
}
