package careplan

import (
	"fmt"
	"strings"
)

const briefingSystemPrompt = `You are a home-care coordinator preparing a caregiver for a first visit to an elderly patient. Write plainly and respectfully. Never give a diagnosis or change medication.`

func buildBriefingUserMessage(input Input) string {
	r := input.Record
	o := input.Outcome

	var b strings.Builder
	fmt.Fprintf(&b, "Age: %d\n", r.Age)
	fmt.Fprintf(&b, "Chronic conditions: %d\n", r.ChronicConditions)
	fmt.Fprintf(&b, "Appointment accompaniment requests per month: %d\n", r.AccompanimentRequests)
	fmt.Fprintf(&b, "Medication pickup requests per month: %d\n", r.MedicationRequests)
	fmt.Fprintf(&b, "Appointment requests per month: %d\n", r.AppointmentRequests)
	fmt.Fprintf(&b, "Shopping assistance requests per month: %d\n", r.ShoppingRequests)
	if r.FamilySupport {
		b.WriteString("Family support: yes\n")
	} else {
		b.WriteString("Family support: no, lives alone\n")
	}

	fmt.Fprintf(&b, "\nRisk of needing home care: %.1f%%\n", o.Probability*100)
	if q := o.Quote; q != nil {
		fmt.Fprintf(&b, "Assigned caregiver: %s (%s)\n", q.Profile.Name, q.Profile.Specialty)
		fmt.Fprintf(&b, "Shift length: %d hours\n", q.RequestedHours)
	}

	b.WriteString(`
Instructions:
1. Summarize the patient's situation in 2-3 sentences, mentioning what drove the assignment.
2. List 2-4 concrete priorities for the caregiver's first week. Each must be an action, not a diagnosis.
3. Write a short, reassuring note for the family explaining what the caregiver will do.
4. Do not invent medical history beyond the figures above.`)

	return b.String()
}
