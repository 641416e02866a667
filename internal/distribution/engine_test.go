package distribution

import (
	"math"
	"strconv"
	"testing"

	"github.com/KirkDiggler/rollem/internal/ast"
	"github.com/KirkDiggler/rollem/internal/dice"
	"github.com/KirkDiggler/rollem/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluate(t *testing.T, expression string) (*Distribution, error) {
	t.Helper()
	node, err := parser.Parse(expression)
	require.NoError(t, err)
	return NewEngine(nil).Evaluate(node)
}

func mustEvaluate(t *testing.T, expression string) *Distribution {
	t.Helper()
	d, err := evaluate(t, expression)
	require.NoError(t, err)
	return d
}

func TestEvaluate_SingleDieIsUniform(t *testing.T) {
	for _, sides := range []int{1, 4, 6, 20} {
		d := mustEvaluate(t, "1d"+strconv.Itoa(sides))

		assert.Equal(t, sides, d.Len())
		assert.Equal(t, 1.0, d.Min())
		assert.Equal(t, float64(sides), d.Max())
		for v := 1; v <= sides; v++ {
			assert.InDelta(t, 1.0/float64(sides), d.Get(float64(v)), 1e-9)
		}
		assert.Equal(t, 0.0, d.Get(0))
		assert.Equal(t, 0.0, d.Get(float64(sides+1)))
	}
}

func TestEvaluate_MassSumsToOne(t *testing.T) {
	expressions := []string{
		"1d6",
		"4d4",
		"4d6kh3",
		"4d6mi3",
		"3d6 + 2*1d4 - 4",
		"(1d4 + 1) * 2",
		"2d6 % 3",
	}
	for _, expression := range expressions {
		d := mustEvaluate(t, expression)

		var sum float64
		for _, outcome := range d.Outcomes() {
			sum += d.Get(outcome)
		}
		assert.InDelta(t, 1.0, sum, 1e-6, expression)
	}
}

func TestEvaluate_FourD4Reference(t *testing.T) {
	d := mustEvaluate(t, "4d4")

	assert.InDelta(t, 0.0039, d.Get(4), 1e-4)
	assert.InDelta(t, 0.1719, d.Get(10), 1e-4)

	// Symmetric about the mean of 10.
	assert.InDelta(t, d.Get(8), d.Get(12), 1e-12)
	assert.InDelta(t, d.Get(4), d.Get(16), 1e-12)
	assert.InDelta(t, 10.0, d.Mean(), 1e-9)
}

func TestEvaluate_MeanAndStdDevReference(t *testing.T) {
	d := mustEvaluate(t, "3d6 + 2*1d4 - 4")

	assert.InDelta(t, 11.5, d.Mean(), 1e-9)
	assert.InDelta(t, 3.71, d.StdDev(), 5e-3)
}

func TestEvaluate_LiteralsAndUnary(t *testing.T) {
	d := mustEvaluate(t, "2.5")
	assert.Equal(t, 1.0, d.Get(2.5))

	d = mustEvaluate(t, "-1d2")
	assert.InDelta(t, 0.5, d.Get(-1), 1e-9)
	assert.InDelta(t, 0.5, d.Get(-2), 1e-9)
	assert.Equal(t, -2.0, d.Min())
}

func TestEvaluate_KeepHighest(t *testing.T) {
	// 2d2kh1: only (1,1) keeps a 1.
	d := mustEvaluate(t, "2d2kh1")

	assert.InDelta(t, 0.25, d.Get(1), 1e-9)
	assert.InDelta(t, 0.75, d.Get(2), 1e-9)
}

func TestEvaluate_MinimumShiftsMass(t *testing.T) {
	// 1d6mi3: 1 and 2 fold onto 3.
	d := mustEvaluate(t, "1d6mi3")

	assert.Equal(t, 0.0, d.Get(1))
	assert.Equal(t, 0.0, d.Get(2))
	assert.InDelta(t, 0.5, d.Get(3), 1e-9)
	assert.InDelta(t, 1.0/6.0, d.Get(4), 1e-9)
}

func TestEvaluate_FloorDivision(t *testing.T) {
	// 1d4 / 2 floors: {0: 1/4, 1: 1/2, 2: 1/4}.
	d := mustEvaluate(t, "1d4 / 2")

	assert.InDelta(t, 0.25, d.Get(0), 1e-9)
	assert.InDelta(t, 0.5, d.Get(1), 1e-9)
	assert.InDelta(t, 0.25, d.Get(2), 1e-9)
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	_, err := evaluate(t, "1d6 / 0")
	assert.ErrorIs(t, err, ast.ErrDivisionByZero)

	// A divisor distribution containing 0 anywhere fails too.
	_, err = evaluate(t, "1d6 / (1d2 - 1)")
	assert.ErrorIs(t, err, ast.ErrDivisionByZero)
}

func TestEvaluate_DiceSizeCeiling(t *testing.T) {
	_, err := evaluate(t, "400d400")
	assert.ErrorIs(t, err, ErrSizeExceeded)

	// 101 sides and 101 dice is exactly at the ceiling.
	d := mustEvaluate(t, "2d100")
	assert.Equal(t, 2.0, d.Min())
	assert.Equal(t, 200.0, d.Max())
}

func TestEvaluate_OperationCeiling(t *testing.T) {
	// 6^6 outcomes exceed the ceiling; 6^4 fit.
	_, err := evaluate(t, "6d6mi3")
	assert.ErrorIs(t, err, ErrSizeExceeded)

	d := mustEvaluate(t, "4d6mi3")
	assert.Equal(t, 12.0, d.Min())
	assert.Equal(t, 24.0, d.Max())
}

func TestEvaluate_UnsupportedModifiers(t *testing.T) {
	for _, expression := range []string{"1d6rr1", "1d6ro1", "1d6e6", "1d6ra6"} {
		_, err := evaluate(t, expression)
		assert.ErrorIs(t, err, ErrUnsupportedOperation, expression)
	}
}

func TestEvaluate_ZeroDice(t *testing.T) {
	d := mustEvaluate(t, "0d0")
	assert.Equal(t, 1.0, d.Get(0))
	assert.Equal(t, 1, d.Len())
}

func TestEvaluate_ZeroSides(t *testing.T) {
	_, err := evaluate(t, "1d0")
	assert.ErrorIs(t, err, dice.ErrInvalidSides)
}

func TestEvaluate_ConfiguredCeilings(t *testing.T) {
	engine := NewEngine(&Config{MaxDiceUnits: 10, MaxOperationUnits: 10})

	node, err := parser.Parse("3d4")
	require.NoError(t, err)
	_, err = engine.Evaluate(node)
	assert.ErrorIs(t, err, ErrSizeExceeded)

	node, err = parser.Parse("2d4kh1")
	require.NoError(t, err)
	_, err = engine.Evaluate(node)
	assert.ErrorIs(t, err, ErrSizeExceeded)
}

func TestEvaluate_ModuloDistribution(t *testing.T) {
	// 1d4 % 2: {1: 1/2, 0: 1/2}.
	d := mustEvaluate(t, "1d4 % 2")

	assert.InDelta(t, 0.5, d.Get(0), 1e-9)
	assert.InDelta(t, 0.5, d.Get(1), 1e-9)
	assert.True(t, math.Abs(d.Mean()-0.5) < 1e-9)
}
