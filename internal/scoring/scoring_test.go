package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreBaseline(t *testing.T) {
	c := Score(Input{Name: "reconcileLedgerDrift"})
	assert.Equal(t, 1.0, c)
}

func TestScoreGenericNamePenalty(t *testing.T) {
	c := Score(Input{Name: "findOrderById"})
	assert.InDelta(t, 0.7, c, 1e-9)
}

func TestScoreExternalImportsPenalty(t *testing.T) {
	c := Score(Input{Name: "reconcileLedgerDrift", HasExternalImports: true})
	assert.InDelta(t, 0.9, c, 1e-9)
}

func TestScoreDynamicDensityTiers(t *testing.T) {
	cases := []struct {
		density int
		want    float64
	}{
		{0, 1.0},
		{1, 0.85},
		{2, 0.7},
		{4, 0.7},
		{5, 0.5},
		{9, 0.5},
		{10, 0.3},
		{50, 0.3},
	}
	for _, tc := range cases {
		c := Score(Input{Name: "reconcileLedgerDrift", DynamicDensity: tc.density})
		assert.InDelta(t, tc.want, c, 1e-9, "density %d", tc.density)
	}
}

func TestScoreFuzzyMatchBonus(t *testing.T) {
	without := Score(Input{Name: "reconcileLedgerDrift", DynamicDensity: 2})
	with := Score(Input{Name: "reconcileLedgerDrift", DynamicDensity: 2, HasFuzzyMatch: true})
	assert.InDelta(t, 0.1, with-without, 1e-9)
}

func TestScoreFuzzyBonusClampedAtCeiling(t *testing.T) {
	c := Score(Input{Name: "reconcileLedgerDrift", HasFuzzyMatch: true})
	assert.Equal(t, 1.0, c)
}

func TestScoreShortNamePenalty(t *testing.T) {
	c := Score(Input{Name: "qux"})
	assert.InDelta(t, 0.8, c, 1e-9)
}

func TestScoreNeverBelowFloor(t *testing.T) {
	c := Score(Input{Name: "get", DynamicDensity: 20, HasExternalImports: true})
	assert.Equal(t, 0.1, c)
}

func TestScoreCombined(t *testing.T) {
	// generic name in a file with external imports and mild dynamic usage
	c := Score(Input{
		Name:               "getUserData",
		DynamicDensity:     1,
		HasExternalImports: true,
		HasFuzzyMatch:      true,
	})
	// (1.0 - 0.3 - 0.1) * 0.85 + 0.1
	assert.InDelta(t, 0.61, c, 1e-9)
}
