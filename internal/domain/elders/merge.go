package elders

// HealthPatch: nil = no tocar.
// Listas (medications, allergies) se reemplazan completas cuando vienen;
// emergencyContact se mergea campo a campo.
type HealthPatch struct {
	Age              *int                   `json:"age"`
	Gender           *Gender                `json:"gender"`
	Medications      *[]Medication          `json:"medications"`
	Allergies        *[]string              `json:"allergies"`
	EmergencyContact *EmergencyContactPatch `json:"emergencyContact"`
}

type EmergencyContactPatch struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// ApplyHealthPatch devuelve un perfil nuevo; no modifica hp.
func ApplyHealthPatch(hp HealthProfile, p HealthPatch) HealthProfile {
	out := cloneHealth(hp)

	if p.Age != nil {
		out.Age = *p.Age
	}
	if p.Gender != nil {
		out.Gender = *p.Gender
	}
	if p.Medications != nil {
		out.Medications = cloneMedications(*p.Medications)
	}
	if p.Allergies != nil {
		out.Allergies = append([]string{}, (*p.Allergies)...)
	}
	if p.EmergencyContact != nil {
		if p.EmergencyContact.Name != nil {
			out.EmergencyContact.Name = *p.EmergencyContact.Name
		}
		if p.EmergencyContact.Phone != nil {
			out.EmergencyContact.Phone = *p.EmergencyContact.Phone
		}
	}
	return out
}

func cloneHealth(hp HealthProfile) HealthProfile {
	out := hp
	out.Medications = cloneMedications(hp.Medications)
	out.Allergies = append([]string{}, hp.Allergies...)
	return out
}

func cloneMedications(in []Medication) []Medication {
	out := make([]Medication, 0, len(in))
	for _, m := range in {
		m.Schedule = append([]ScheduleEntry{}, m.Schedule...)
		out = append(out, m)
	}
	return out
}
