package proofs

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed params.cue
var paramsSource []byte

// Params holds every scenario threshold. The values come from params.cue and
// are validated against the #Params schema before use.
type Params struct {
	Giza struct {
		ReferenceDegrees float64 `json:"reference_degrees"`
		MinMatchPercent  float64 `json:"min_match_percent"`
		SlopeTolerance   float64 `json:"slope_tolerance"`
	} `json:"giza"`
	Modular struct {
		Modulus int64 `json:"modulus"`
		Period  int   `json:"period"`
		Cycles  int   `json:"cycles"`
	} `json:"modular"`
	Entropy struct {
		Initial     float64 `json:"initial"`
		Steps       int     `json:"steps"`
		Threshold   float64 `json:"threshold"`
		ReportEvery int     `json:"report_every"`
	} `json:"entropy"`
	Identities struct {
		Tolerance        float64 `json:"tolerance"`
		RatioTolerance   float64 `json:"ratio_tolerance"`
		RatioMaxIndex    int     `json:"ratio_max_index"`
		DecimalTolerance float64 `json:"decimal_tolerance"`
	} `json:"identities"`
	QRT struct {
		Primes    []int64 `json:"primes"`
		DemoPrime int64   `json:"demo_prime"`
	} `json:"qrt"`
	MST struct {
		Modulus    int64     `json:"modulus"`
		Seeds      []float64 `json:"seeds"`
		Iterations int       `json:"iterations"`
		Slack      float64   `json:"slack"`
	} `json:"mst"`
	TUPT struct {
		Limit      int64   `json:"limit"`
		Tolerance  float64 `json:"tolerance"`
		SampleSize int64   `json:"sample_size"`
	} `json:"tupt"`
	Pisano struct {
		From          int64 `json:"from"`
		To            int64 `json:"to"`
		BoundFactor   int64 `json:"bound_factor"`
		AnchorModulus int64 `json:"anchor_modulus"`
		AnchorPeriod  int64 `json:"anchor_period"`
	} `json:"pisano"`
	Navier struct {
		TimeStep  float64   `json:"time_step"`
		Steps     int       `json:"steps"`
		Norms     []float64 `json:"norms"`
		Tolerance float64   `json:"tolerance"`
		Horizons  []int     `json:"horizons"`
	} `json:"navier"`
	Shard struct {
		Width    int64   `json:"width"`
		Lengths  []int64 `json:"lengths"`
		MaxFolds int     `json:"max_folds"`
	} `json:"shard"`
}

var (
	paramsOnce sync.Once
	paramsVal  *Params
	paramsErr  error
)

// DefaultParams returns the embedded scenario parameters. The document is
// compiled once; callers receive the same value and must not modify it.
func DefaultParams() (*Params, error) {
	paramsOnce.Do(func() {
		paramsVal, paramsErr = parseParams(paramsSource)
	})
	return paramsVal, paramsErr
}

func mustParams() *Params {
	p, err := DefaultParams()
	if err != nil {
		panic(err)
	}
	return p
}

// parseParams compiles a CUE document, checks it is concrete and decodes its
// "params" field.
func parseParams(src []byte) (*Params, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(src, cue.Filename("params.cue"))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("compiling scenario parameters: %w", err)
	}

	paramsCUE := value.LookupPath(cue.ParsePath("params"))
	if !paramsCUE.Exists() {
		return nil, fmt.Errorf("scenario parameters: missing \"params\" field")
	}
	if err := paramsCUE.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validating scenario parameters: %w", err)
	}

	var p Params
	if err := paramsCUE.Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding scenario parameters: %w", err)
	}
	return &p, nil
}
