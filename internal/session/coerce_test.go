package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequiredInt(t *testing.T) {
	t.Parallel()

	n, err := RequiredInt("row index", " 5 ")
	require.NoError(t, err)
	require.Equal(t, 5, n)

	_, err = RequiredInt("row index", "")
	require.EqualError(t, err, "row index is required")

	_, err = RequiredInt("row index", "abc")
	require.EqualError(t, err, "row index must be a whole number")

	_, err = RequiredInt("row index", "2.5")
	require.EqualError(t, err, "row index must be a whole number")
}

func TestRequiredNonNegativeInt(t *testing.T) {
	t.Parallel()

	n, err := RequiredNonNegativeInt("row index", "0")
	require.NoError(t, err)
	require.Equal(t, 0, n)

	_, err = RequiredNonNegativeInt("row index", "-1")
	require.EqualError(t, err, "row index must not be negative")
}

func TestRequiredPositiveInt(t *testing.T) {
	t.Parallel()

	_, err := RequiredPositiveInt("accommodates", "0")
	require.EqualError(t, err, "accommodates must be at least 1")

	_, err = RequiredPositiveInt("accommodates", "")
	require.EqualError(t, err, "accommodates is required")
}

func TestPositiveIntOrDefault(t *testing.T) {
	t.Parallel()

	n, err := PositiveIntOrDefault("minimum nights", "", 1)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = PositiveIntOrDefault("minimum nights", "3", 1)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, err = PositiveIntOrDefault("minimum nights", "x", 1)
	require.EqualError(t, err, "minimum nights must be a whole number")

	_, err = PositiveIntOrDefault("minimum nights", "0", 1)
	require.EqualError(t, err, "minimum nights must be at least 1")

	_, err = PositiveIntOrDefault("minimum nights", "-3", 1)
	require.EqualError(t, err, "minimum nights must be at least 1")
}

func TestOptionalFields(t *testing.T) {
	t.Parallel()

	f, err := OptionalFloat("bathrooms", "")
	require.NoError(t, err)
	require.Nil(t, f)

	f, err = OptionalFloat("bathrooms", "1.5")
	require.NoError(t, err)
	require.Equal(t, 1.5, *f)

	_, err = OptionalFloat("bathrooms", "one")
	require.EqualError(t, err, "bathrooms must be a number")

	n, err := OptionalInt("number of reviews", " ")
	require.NoError(t, err)
	require.Nil(t, n)

	n, err = OptionalInt("number of reviews", "10")
	require.NoError(t, err)
	require.Equal(t, 10, *n)

	require.Nil(t, OptionalString("  "))
	require.Equal(t, "House", *OptionalString(" House "))
}

func TestRequiredDate(t *testing.T) {
	t.Parallel()

	d, err := RequiredDate("start date", "2024-06-01")
	require.NoError(t, err)
	require.Equal(t, "2024-06-01", d)

	_, err = RequiredDate("start date", "")
	require.EqualError(t, err, "start date is required")

	_, err = RequiredDate("start date", "01/06/2024")
	require.EqualError(t, err, "start date must be a date like 2006-01-02")
}
