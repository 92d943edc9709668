package tasks

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/procat-rse/procatsrv/internal/apperrors"
	"github.com/procat-rse/procatsrv/internal/types"
)

var (
	ErrTasks                apperrors.Error = apperrors.New("error in background task")
	ErrInvalidThresholdType apperrors.Error = ErrTasks.New("Invalid threshold type provided.")
)

// Threshold types a project lead can be notified about.
const (
	ThresholdEffort = "effort"
	ThresholdWeeks  = "weeks"
)

// ThresholdSubject is the subject line of a project status notification.
func ThresholdSubject(projectName string) string {
	return fmt.Sprintf("[Project Status Update] %s", projectName)
}

// ThresholdMessage is the body of the notification sent to a project lead
// when the effort or weeks left drops below a threshold.
func ThresholdMessage(lead, projectName, thresholdType string, threshold, value int) (string, error) {
	var status string
	switch thresholdType {
	case ThresholdEffort:
		status = fmt.Sprintf("The project %s has %d%% effort left (%d days).", projectName, threshold, value)
	case ThresholdWeeks:
		status = fmt.Sprintf("The project %s has %d%% weeks left (%d weeks).", projectName, threshold, value)
	default:
		return "", ErrInvalidThresholdType
	}
	return fmt.Sprintf(
		"\nDear %s,\n\n%s\nPlease check the project status and update your time spent on it.\n\nBest regards,\nProCAT\n",
		lead, status,
	), nil
}

// LoggedDaysLine is one project's total in the monthly summary.
func LoggedDaysLine(projectName string, hours float64) string {
	return fmt.Sprintf("%s: %.1f days", projectName, hours/types.HoursPerDay)
}

// MonthlySummarySubject is the subject of a user's monthly time logged
// summary.
func MonthlySummarySubject(monthName string) string {
	return fmt.Sprintf("Your Project Time Logged Summary for %s", monthName)
}

// MonthlySummaryMessage is the body of a user's monthly time logged
// summary. summaryLines holds one LoggedDaysLine per project.
func MonthlySummaryMessage(fullName, lastMonthName, currentMonthName string, summaryLines []string, percentage float64) string {
	return fmt.Sprintf(
		"\nDear %s,\n\n"+
			"This is your monthly summary of project work. In %s you have logged:\n\n"+
			"%s\n\n"+
			"You have invested on project work approximately %.1f%% of your time.\n\n"+
			"If you have more time to log for %s, please do so by the 10th of\n"+
			"%s in [Clockify](https://clockify.me/).\n\n"+
			"Best wishes,\nProCAT\n",
		fullName, lastMonthName, strings.Join(summaryLines, "\n"), percentage, lastMonthName, currentMonthName,
	)
}

// TimeLoggedPercentage approximates the share of a user's working time
// the logged hours represent: five working days out of seven per calendar
// day, six loggable hours each, rounded to one decimal place.
func TimeLoggedPercentage(totalHours float64, monthStart, nextMonthStart time.Time) float64 {
	days := nextMonthStart.Sub(monthStart).Hours() / 24
	workingHours := days * 5 / 7 * 6
	if workingHours == 0 {
		return 0
	}
	return math.Round(totalHours/workingHours*1000) / 10
}

// ChargesReportSubject is the subject of the monthly charges report mail
// to the admin.
func ChargesReportSubject(monthName string) string {
	return fmt.Sprintf("Charges report for %s", monthName)
}

// ChargesReportMessage is the body of the monthly charges report mail.
func ChargesReportMessage(adminName, monthName string) string {
	return fmt.Sprintf(
		"\nDear %s,\n\nPlease find attached the charges report for the last month: %s.\n\nBest regards,\nProCAT\n",
		adminName, monthName,
	)
}

// ChargesReportFilename names the CSV attached to the report mail.
func ChargesReportFilename(month time.Time) string {
	return fmt.Sprintf("charges_report_%d-%d.csv", int(month.Month()), month.Year())
}
