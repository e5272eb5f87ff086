package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 3, 10, 9, 5, 42, 0, time.UTC))
	assert.Equal(t, TimeString("09:05"), ts)
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("14:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("14:30"), ts)

	for _, bad := range []string{"", "2pm", "14:60", "25:00", "9:00", "14-30"} {
		_, err := NewTimeStringFromString(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeString, bad)
	}
}

func TestMinutes(t *testing.T) {
	m, err := TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = TimeString("14:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 870, m)

	_, err = TimeString("bogus").Minutes()
	assert.Error(t, err)
}

func TestAddMinutes(t *testing.T) {
	t.Run("shifts forward", func(t *testing.T) {
		got, err := TimeString("14:30").AddMinutes(45)
		require.NoError(t, err)
		assert.Equal(t, TimeString("15:15"), got)
	})

	t.Run("caps at end of day", func(t *testing.T) {
		got, err := TimeString("23:30").AddMinutes(60)
		require.NoError(t, err)
		assert.Equal(t, TimeString("23:59"), got)
	})

	t.Run("negative shift floors at midnight", func(t *testing.T) {
		got, err := TimeString("00:10").AddMinutes(-30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("00:00"), got)
	})
}

func TestCompare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestScan(t *testing.T) {
	t.Run("time column with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("10:00:00"))
		assert.Equal(t, TimeString("10:00"), ts)
	})

	t.Run("bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("14:30:00")))
		assert.Equal(t, TimeString("14:30"), ts)
	})

	t.Run("time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2026, 3, 10, 18, 45, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("18:45"), ts)
	})

	t.Run("nil clears the value", func(t *testing.T) {
		ts := TimeString("10:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("non padded value is rejected", func(t *testing.T) {
		var ts TimeString
		assert.Error(t, ts.Scan("9:00"))
	})

	t.Run("unsupported type", func(t *testing.T) {
		var ts TimeString
		assert.Error(t, ts.Scan(42))
	})
}

func TestValue(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bogus").Value()
	assert.Error(t, err)
}
