package parser

import (
	"testing"

	"github.com/KirkDiggler/rollem/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DiceWithModifiers(t *testing.T) {
	node, err := Parse("4d6kh3+2")
	require.NoError(t, err)

	binary, ok := node.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, binary.Op)

	dice, ok := binary.Left.(*ast.Dice)
	require.True(t, ok)
	assert.Equal(t, 4, dice.Count)
	assert.Equal(t, 6, dice.Sides)
	require.Len(t, dice.Ops, 1)
	assert.Equal(t, ast.OperationKeep, dice.Ops[0].Kind)
	assert.Equal(t, ast.SelectorHighest, dice.Ops[0].Selector.Mode)
	assert.Equal(t, 3, dice.Ops[0].Selector.Value)

	literal, ok := binary.Right.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, 2.0, literal.Value)
}

func TestParse_ModifierChain(t *testing.T) {
	node, err := Parse("6d6mi2kh5pl3")
	require.NoError(t, err)

	dice, ok := node.(*ast.Dice)
	require.True(t, ok)
	require.Len(t, dice.Ops, 3)
	assert.Equal(t, ast.OperationMinimum, dice.Ops[0].Kind)
	assert.Equal(t, ast.OperationKeep, dice.Ops[1].Kind)
	assert.Equal(t, ast.OperationDrop, dice.Ops[2].Kind)
	assert.Equal(t, ast.SelectorLowest, dice.Ops[2].Selector.Mode)
}

func TestParse_SelectorPrefixes(t *testing.T) {
	node, err := Parse("4d6rr<3e>5ro1")
	require.NoError(t, err)

	dice := node.(*ast.Dice)
	require.Len(t, dice.Ops, 3)
	assert.Equal(t, ast.SelectorLessThan, dice.Ops[0].Selector.Mode)
	assert.Equal(t, ast.SelectorGreaterThan, dice.Ops[1].Selector.Mode)
	assert.Equal(t, ast.SelectorExact, dice.Ops[2].Selector.Mode)
	assert.Equal(t, 1, dice.Ops[2].Selector.Value)
}

func TestParse_CountDefaultsToOne(t *testing.T) {
	node, err := Parse("d20")
	require.NoError(t, err)

	dice, ok := node.(*ast.Dice)
	require.True(t, ok)
	assert.Equal(t, 1, dice.Count)
	assert.Equal(t, 20, dice.Sides)
}

func TestParse_ZeroDice(t *testing.T) {
	node, err := Parse("0d0")
	require.NoError(t, err)

	dice := node.(*ast.Dice)
	assert.Equal(t, 0, dice.Count)
	assert.Equal(t, 0, dice.Sides)
}

func TestParse_DecimalLiteral(t *testing.T) {
	node, err := Parse("2.5")
	require.NoError(t, err)

	literal, ok := node.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, 2.5, literal.Value)
}

func TestParse_Precedence(t *testing.T) {
	node, err := Parse("1+2*3")
	require.NoError(t, err)

	binary := node.(*ast.Binary)
	assert.Equal(t, ast.OpAdd, binary.Op)

	right, ok := binary.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, right.Op)
}

func TestParse_UnaryBindsTighterThanMul(t *testing.T) {
	node, err := Parse("6 * -3")
	require.NoError(t, err)

	binary := node.(*ast.Binary)
	assert.Equal(t, ast.OpMul, binary.Op)
	_, ok := binary.Right.(*ast.Unary)
	assert.True(t, ok)
}

func TestParse_CanonicalRoundTrip(t *testing.T) {
	cases := map[string]string{
		"4d6kh3+2":             "4d6kh3 + 2",
		" 1d6+2 ":              "1d6 + 2",
		"3 * 5 + 6 * (-3) / 4": "3 * 5 + 6 * (-3) / 4",
		"2d20rol1":             "2d20rol1",
		"d8":                   "1d8",
	}
	for input, want := range cases {
		node, err := Parse(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, node.String(), input)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []string{
		"",
		"1d6 +",
		"1d6 xyz",
		"(1d6",
		"4d",
		"4d6k",
		"4d6mz1",
		"4d6rz1",
		"1..5",
		"*3",
		"4d6 kh3",
	}
	for _, input := range cases {
		_, err := Parse(input)
		require.Error(t, err, "%q", input)

		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, "%q", input)
	}
}

func TestParse_InvalidModifierSelector(t *testing.T) {
	// Structurally invalid modifier combinations surface the modifier
	// error, not a generic parse error.
	_, err := Parse("4d6rrh1")
	assert.ErrorIs(t, err, ast.ErrInvalidSelector)

	_, err = Parse("4d6mih3")
	assert.ErrorIs(t, err, ast.ErrInvalidSelector)
}
