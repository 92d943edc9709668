package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdMessage(t *testing.T) {
	t.Run("effort", func(t *testing.T) {
		body, err := ThresholdMessage("Ada Lovelace", "Widget Analysis", ThresholdEffort, 25, 12)
		require.NoError(t, err)
		expected := "\nDear Ada Lovelace,\n\n" +
			"The project Widget Analysis has 25% effort left (12 days).\n" +
			"Please check the project status and update your time spent on it.\n\n" +
			"Best regards,\nProCAT\n"
		assert.Equal(t, expected, body)
	})

	t.Run("weeks", func(t *testing.T) {
		body, err := ThresholdMessage("Ada Lovelace", "Widget Analysis", ThresholdWeeks, 50, 8)
		require.NoError(t, err)
		assert.Contains(t, body, "The project Widget Analysis has 50% weeks left (8 weeks).")
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := ThresholdMessage("Ada Lovelace", "Widget Analysis", "budget", 50, 8)
		require.Error(t, err)
		assert.Equal(t, "Invalid threshold type provided.", err.Error())
	})
}

func TestThresholdSubject(t *testing.T) {
	assert.Equal(t, "[Project Status Update] Widget Analysis", ThresholdSubject("Widget Analysis"))
}

func TestLoggedDaysLine(t *testing.T) {
	assert.Equal(t, "Widget Analysis: 1.5 days", LoggedDaysLine("Widget Analysis", 10.5))
	assert.Equal(t, "Gadget Pipeline: 0.7 days", LoggedDaysLine("Gadget Pipeline", 5))
}

func TestMonthlySummaryMessage(t *testing.T) {
	lines := []string{
		"Widget Analysis: 1.5 days",
		"Gadget Pipeline: 0.7 days",
	}
	body := MonthlySummaryMessage("Ada Lovelace", "April", "May", lines, 10.1)

	expected := "\nDear Ada Lovelace,\n\n" +
		"This is your monthly summary of project work. In April you have logged:\n\n" +
		"Widget Analysis: 1.5 days\n" +
		"Gadget Pipeline: 0.7 days\n\n" +
		"You have invested on project work approximately 10.1% of your time.\n\n" +
		"If you have more time to log for April, please do so by the 10th of\n" +
		"May in [Clockify](https://clockify.me/).\n\n" +
		"Best wishes,\nProCAT\n"
	assert.Equal(t, expected, body)
}

func TestTimeLoggedPercentage(t *testing.T) {
	april := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	may := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		hours    float64
		expected float64
	}{
		{name: "five hours", hours: 5, expected: 3.9},
		{name: "thirteen hours", hours: 13, expected: 10.1},
		{name: "nothing logged", hours: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, TimeLoggedPercentage(tt.hours, april, may), 1e-9)
		})
	}
}

func TestChargesReportFilename(t *testing.T) {
	assert.Equal(t, "charges_report_4-2025.csv",
		ChargesReportFilename(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "charges_report_12-2024.csv",
		ChargesReportFilename(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCrossedThreshold(t *testing.T) {
	tests := []struct {
		percentLeft float64
		threshold   int
		crossed     bool
	}{
		{percentLeft: 80, crossed: false},
		{percentLeft: 50.1, crossed: false},
		{percentLeft: 50, threshold: 50, crossed: true},
		{percentLeft: 25, threshold: 25, crossed: true},
		{percentLeft: 24, threshold: 25, crossed: true},
		{percentLeft: 9.5, threshold: 10, crossed: true},
		{percentLeft: 0, threshold: 10, crossed: true},
	}

	for _, tt := range tests {
		threshold, crossed := crossedThreshold(tt.percentLeft)
		assert.Equal(t, tt.crossed, crossed, "percent left %v", tt.percentLeft)
		if tt.crossed {
			assert.Equal(t, tt.threshold, threshold, "percent left %v", tt.percentLeft)
		}
	}
}
