package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMeasurements(t *testing.T) {
	output := `
Note: some ngspice banner

trise  =  1.234e-09
tfall=5.67e-10 targ= 2.0e-08 trig= 1.9e-08
 power_avg   = 3.3e-03
`

	values := ExtractMeasurements(output, []string{"trise", "tfall", "power_avg", "missing"})
	assert.Equal(t, "1.234e-09", values["trise"])
	assert.Equal(t, "5.67e-10", values["tfall"])
	assert.Equal(t, "3.3e-03", values["power_avg"])
	assert.Equal(t, SentinelMissing, values["missing"])
}

func TestExtractMeasurementsFirstMatchWins(t *testing.T) {
	output := "tpd = 1.0e-9\ntpd = 2.0e-9\n"
	values := ExtractMeasurements(output, []string{"tpd"})
	assert.Equal(t, "1.0e-9", values["tpd"])
}

func TestExtractMeasurementsCaseInsensitive(t *testing.T) {
	values := ExtractMeasurements("TPD = 4.2e-9\n", []string{"tpd"})
	assert.Equal(t, "4.2e-9", values["tpd"])
}

func TestExtractMeasurementsNameMustStartLine(t *testing.T) {
	// The name must be the first token on the line, not a substring hit.
	values := ExtractMeasurements("measured tpd = 1.0\n", []string{"tpd"})
	assert.Equal(t, SentinelMissing, values["tpd"])
}

func TestExtractMeasurementsEmptyMeasures(t *testing.T) {
	values := ExtractMeasurements("anything\n", nil)
	assert.Empty(t, values)
}
