package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDueDate(t *testing.T) {
	// Due day already passed this month rolls forward.
	due, err := NextDueDate(3, "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-03", due)

	// Due day still ahead stays in the reference month.
	due, err = NextDueDate(31, "2026-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-31", due)

	// Short months clamp to their last day.
	due, err = NextDueDate(31, "2026-02-10")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", due)

	// December rolls into the next year.
	due, err = NextDueDate(5, "2026-12-20")
	require.NoError(t, err)
	assert.Equal(t, "2027-01-05", due)

	_, err = NextDueDate(0, "2026-01-01")
	require.Error(t, err)
	_, err = NextDueDate(32, "2026-01-01")
	require.Error(t, err)
}

func TestStatementClosingDate(t *testing.T) {
	// Cutoff after due day closes the month before the payment.
	closing, err := StatementClosingDate(28, 3, "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-28", closing)

	// Cutoff before due day closes in the payment month.
	closing, err = StatementClosingDate(2, 7, "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-02", closing)

	// Rolling back across January lands in the previous year.
	closing, err = StatementClosingDate(28, 5, "2026-01-02")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-28", closing)
}

func TestInCurrentStatement(t *testing.T) {
	// Closing 2026-01-28: the end-of-month purchase belongs to the next
	// statement.
	in, err := InCurrentStatement("2026-01-31", 28, 3, "2026-01-31")
	require.NoError(t, err)
	assert.False(t, in)

	// Closing 2026-02-02: the same purchase still falls inside.
	in, err = InCurrentStatement("2026-01-31", 2, 7, "2026-01-31")
	require.NoError(t, err)
	assert.True(t, in)

	// The closing date itself is inclusive.
	in, err = InCurrentStatement("2026-01-28", 28, 3, "2026-01-31")
	require.NoError(t, err)
	assert.True(t, in)

	in, err = InCurrentStatement("2026-01-29", 28, 3, "2026-01-31")
	require.NoError(t, err)
	assert.False(t, in)

	_, err = InCurrentStatement("31.01.2026", 28, 3, "2026-01-31")
	require.Error(t, err)
}
