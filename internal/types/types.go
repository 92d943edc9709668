package types

type ProjectStatus string

const (
	ProjectDraft      ProjectStatus = "Draft"
	ProjectNotStarted ProjectStatus = "Not started"
	ProjectActive     ProjectStatus = "Active"
	ProjectCompleted  ProjectStatus = "Completed"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectDraft, ProjectNotStarted, ProjectActive, ProjectCompleted:
		return true
	}
	return false
}

type ChargingMethod string

const (
	ChargingActual  ChargingMethod = "Actual"
	ChargingProRata ChargingMethod = "Pro-rata"
	ChargingManual  ChargingMethod = "Manual"
)

func (c ChargingMethod) IsValid() bool {
	switch c {
	case ChargingActual, ChargingProRata, ChargingManual:
		return true
	}
	return false
}

type ProjectNature string

const (
	NatureSupport  ProjectNature = "Support"
	NatureStandard ProjectNature = "Standard"
)

func (n ProjectNature) IsValid() bool {
	return n == NatureSupport || n == NatureStandard
}

type FundingSource string

const (
	FundingInternal FundingSource = "Internal"
	FundingExternal FundingSource = "External"
)

func (f FundingSource) IsValid() bool {
	return f == FundingInternal || f == FundingExternal
}

type Faculty string

const (
	FacultyEngineering     Faculty = "Faculty of Engineering"
	FacultyMedicine        Faculty = "Faculty of Medicine"
	FacultyNaturalSciences Faculty = "Faculty of Natural Sciences"
	FacultyBusinessSchool  Faculty = "Imperial Business School"
	FacultyOther           Faculty = "Other"
)

func (f Faculty) IsValid() bool {
	switch f {
	case FacultyEngineering, FacultyMedicine, FacultyNaturalSciences, FacultyBusinessSchool, FacultyOther:
		return true
	}
	return false
}

type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// HoursPerDay is the number of working hours assumed per workday when
// converting logged time to days of effort.
const HoursPerDay = 7.0
