package domain

// Attribute identifies one collected patient attribute.
type Attribute string

const (
	AttrGenderIdentity Attribute = "gender_identity"
	AttrAge            Attribute = "age"
	AttrEthnicity      Attribute = "ethnicity"
	AttrHealth         Attribute = "health"
	AttrInteraction    Attribute = "interaction"
)

// Attributes lists the collected attributes in conversation order.
var Attributes = []Attribute{
	AttrGenderIdentity,
	AttrAge,
	AttrEthnicity,
	AttrHealth,
	AttrInteraction,
}

// PatientProfile holds the free-text answers collected by the wizard.
// A field counts as set once it is non-empty; answers are stored verbatim.
type PatientProfile struct {
	GenderIdentity string
	Age            string
	Ethnicity      string
	Health         string
	Interaction    string
}

// Get returns the value of the named attribute.
func (p *PatientProfile) Get(attr Attribute) string {
	switch attr {
	case AttrGenderIdentity:
		return p.GenderIdentity
	case AttrAge:
		return p.Age
	case AttrEthnicity:
		return p.Ethnicity
	case AttrHealth:
		return p.Health
	case AttrInteraction:
		return p.Interaction
	}
	return ""
}

// Set writes the value of the named attribute.
func (p *PatientProfile) Set(attr Attribute, value string) {
	switch attr {
	case AttrGenderIdentity:
		p.GenderIdentity = value
	case AttrAge:
		p.Age = value
	case AttrEthnicity:
		p.Ethnicity = value
	case AttrHealth:
		p.Health = value
	case AttrInteraction:
		p.Interaction = value
	}
}

// Complete reports whether every attribute is non-empty.
func (p *PatientProfile) Complete() bool {
	for _, attr := range Attributes {
		if p.Get(attr) == "" {
			return false
		}
	}
	return true
}
