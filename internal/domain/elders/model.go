package elders

import (
	"time"

	"care-companion/internal/domain/accounts"
)

// Gender
// @Enum Male, Female, Other
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Frequency de una medicación; define qué franjas del día se esperan.
type Frequency string

const (
	FrequencyOnceADay    Frequency = "Once a day"
	FrequencyTwiceADay   Frequency = "Twice a day"
	FrequencyEvery4Hours Frequency = "Every 4 hours"
	FrequencyEvery8Hours Frequency = "Every 8 hours"
	FrequencyAsNeeded    Frequency = "As needed"
)

// Duration del tratamiento.
type Duration string

const (
	Duration7Days   Duration = "7 days"
	Duration14Days  Duration = "14 days"
	Duration30Days  Duration = "30 days"
	DurationOngoing Duration = "Ongoing"

	DefaultDuration = Duration7Days
)

func (d Duration) Valid() bool {
	switch d {
	case Duration7Days, Duration14Days, Duration30Days, DurationOngoing:
		return true
	}
	return false
}

// TimeOfDay es la etiqueta de una toma. Vacía = "as needed".
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "Morning"
	TimeAfternoon TimeOfDay = "Afternoon"
	TimeEvening   TimeOfDay = "Evening"
	TimeNight     TimeOfDay = "Night"
	TimeAsNeeded  TimeOfDay = ""
)

// ScheduleEntry: hora de reloj "HH:MM" sin fecha ni zona.
type ScheduleEntry struct {
	TimeOfDay TimeOfDay `json:"timeOfDay"`
	Time      string    `json:"time"`
}

type Medication struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Dosage    string          `json:"dosage"`
	Frequency Frequency       `json:"frequency"`
	Duration  Duration        `json:"duration"`
	Schedule  []ScheduleEntry `json:"schedule"`
}

type EmergencyContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// HealthProfile se persiste como documento (jsonb en postgres).
type HealthProfile struct {
	Age              int              `json:"age"`
	Gender           Gender           `json:"gender"`
	Medications      []Medication     `json:"medications"`
	Allergies        []string         `json:"allergies"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
}

// Elder es una cuenta elderly + su perfil de salud.
type Elder struct {
	Account accounts.Account
	Health  HealthProfile
}

const DefaultRelationship = "Parent"

// Link: referencia débil caregiver -> persona. Solo se agregan, nunca se borran.
type Link struct {
	CaregiverID  string
	PersonID     string
	Relationship string
	CreatedAt    time.Time
}

// LinkedPerson es el resumen que ve un caregiver en su lista.
type LinkedPerson struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Relationship string        `json:"relation"`
	Health       HealthProfile `json:"healthData"`
}
