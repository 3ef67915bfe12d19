package landcalc_test

import (
	"testing"

	"survey-booking/services/landcalc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArea_RectangularPlot(t *testing.T) {
	res, err := landcalc.Area(100, 100, 50, 50)
	require.NoError(t, err)

	assert.Equal(t, 5000.0, res.AreaSqFt)
	assert.InDelta(t, 6.9444, res.AreaKatha, 0.0001)
	assert.InDelta(t, 11.4784, res.AreaDecimal, 0.0001)
}

func TestArea_IrregularPlot(t *testing.T) {
	// ((80+100)/2) * ((42.5+40)/2) = 90 * 41.25 = 3712.5
	res, err := landcalc.Area(80, 100, 42.5, 40)
	require.NoError(t, err)

	assert.Equal(t, 3712.5, res.AreaSqFt)
	assert.InDelta(t, 3712.5/landcalc.SqFtPerKatha, res.AreaKatha, 0.0001)
	assert.InDelta(t, 3712.5/landcalc.SqFtPerDecimal, res.AreaDecimal, 0.0001)
}

func TestArea_SqFtRoundedToTwoPlaces(t *testing.T) {
	// ((33.33+33.33)/2) * ((10+10)/2) = 333.3 exactly after rounding
	res, err := landcalc.Area(33.333, 33.333, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 333.33, res.AreaSqFt)
}

func TestArea_RejectsNonPositiveSides(t *testing.T) {
	cases := []struct {
		name       string
		n, s, e, w float64
	}{
		{"zero side", 0, 100, 50, 50},
		{"negative side", 100, -1, 50, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := landcalc.Area(tc.n, tc.s, tc.e, tc.w)
			require.Error(t, err)
		})
	}
}
