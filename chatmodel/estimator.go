package chatmodel

import (
	"github.com/pkg/errors"
	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the tiktoken encoding used for budget estimation. It is
// fixed so that retries of the same conversation produce comparable counts.
const DefaultEncoding = "cl100k_base"

// Estimator approximates how many model-context tokens a piece of text will
// consume. Implementations must be deterministic: the same text always yields
// the same count.
type Estimator interface {
	Estimate(text string) int
}

// TiktokenEstimator estimates token counts using a tiktoken BPE codec loaded
// once at construction. Safe for concurrent use.
type TiktokenEstimator struct {
	codec *tiktoken.Tiktoken
}

// NewTiktokenEstimator loads the named encoding. Use DefaultEncoding unless
// the serving model requires another codec.
func NewTiktokenEstimator(encoding string) (*TiktokenEstimator, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	codec, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, errors.Wrapf(err, "loading tiktoken encoding %q", encoding)
	}
	return &TiktokenEstimator{codec: codec}, nil
}

// Estimate returns the number of tokens in text. Pure function of the input;
// never fails for well-formed text.
func (e *TiktokenEstimator) Estimate(text string) int {
	return len(e.codec.Encode(text, nil, nil))
}
