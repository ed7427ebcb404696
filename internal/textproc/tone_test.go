package textproc_test

import (
	"testing"

	"github.com/avendel/textamend/internal/textproc"
)

func TestToneFromPolarity(t *testing.T) {
	tests := []struct {
		name     string
		polarity float64
		want     textproc.Tone
	}{
		{"clearly positive", 0.8, textproc.TonePositive},
		{"just above threshold", 0.21, textproc.TonePositive},
		{"exactly positive threshold", 0.2, textproc.ToneNeutral},
		{"zero", 0, textproc.ToneNeutral},
		{"exactly negative threshold", -0.2, textproc.ToneNeutral},
		{"just below threshold", -0.21, textproc.ToneNegative},
		{"clearly negative", -0.9, textproc.ToneNegative},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := textproc.ToneFromPolarity(tc.polarity); got != tc.want {
				t.Fatalf("ToneFromPolarity(%v) = %s, want %s", tc.polarity, got, tc.want)
			}
		})
	}
}
