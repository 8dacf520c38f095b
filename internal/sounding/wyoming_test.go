package sounding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleListing = `
72210 TBW Tampa Bay Area Observations at 12Z 29 Aug 2026

-----------------------------------------------------------------------------
   PRES   HGHT   TEMP   DWPT   RELH   MIXR   DRCT   SKNT   THTA   THTE   THTV
    hPa     m      C      C      %    g/kg    deg   knot     K      K      K
-----------------------------------------------------------------------------
 1013.0     13   26.4   24.1     87  19.20    140      4  298.8  354.5  302.2
 1000.0    130   25.8   23.6     88  18.87    150      6  299.3  354.2  302.7
  925.0    812   22.0   20.5     91  17.22    175     12  302.1  353.3  305.2
  925.0    812   22.0   20.5     91  17.22    175     12  302.1  353.3  305.2
  850.0   1547   18.2   15.1     82  13.24    200     15  305.6  346.1  308.0
  700.0   3192    9.0    ***     **    ***    240     18  313.4    ***  313.4
  500.0   5890   -6.5  -21.5     30   1.23    265     25  322.2  326.6  322.5
 1500.0    100   99.0   99.0     99  99.00    999     99  999.0  999.0  999.0

Station information and sounding indices

                         Station identifier: TBW
             Convective Available Potential Energy: 1432.10
                  Convective Inhibition: -28.40
`

func TestParseWyomingText(t *testing.T) {
	rows := ParseWyomingText(sampleListing)

	require.Len(t, rows, 5)
	assert.InDelta(t, 1013.0, rows[0].PressureHPa, 1e-9)
	assert.InDelta(t, 26.4, rows[0].TempC, 1e-9)
	assert.InDelta(t, 24.1, rows[0].DewpointC, 1e-9)
	assert.InDelta(t, 500.0, rows[4].PressureHPa, 1e-9)

	// Duplicate 925 hPa level and the missing-dewpoint 700 hPa row are
	// dropped, as is the out-of-range 1500 hPa row.
	for i := 1; i < len(rows); i++ {
		assert.Less(t, rows[i].PressureHPa, rows[i-1].PressureHPa)
	}
}

func TestParseWyomingText_NoHeader(t *testing.T) {
	rows := ParseWyomingText(" 1000.0 130 25.8 23.6\n 925.0 812 22.0 20.5\n")
	assert.Empty(t, rows)
}

func TestParseIndices(t *testing.T) {
	cape, cin := ParseIndices(sampleListing)
	assert.InDelta(t, 1432.10, cape, 1e-9)
	assert.InDelta(t, -28.40, cin, 1e-9)
}

func TestParseIndices_Missing(t *testing.T) {
	cape, cin := ParseIndices("no indices here")
	assert.Zero(t, cape)
	assert.Zero(t, cin)
}
