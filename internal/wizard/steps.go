package wizard

import "github.com/carescene/carescene/internal/domain"

// Step pairs one profile attribute with the question that elicits it.
// The whole conversation flow is this slice; adding a step here is all
// it takes to extend the wizard.
type Step struct {
	Attr     domain.Attribute
	Question string
}

// DefaultSteps is the fixed five-question flow, in collection order.
var DefaultSteps = []Step{
	{
		Attr:     domain.AttrGenderIdentity,
		Question: "Hi! Let's start by describing the patient's gender identity and sexual orientation.",
	},
	{
		Attr:     domain.AttrAge,
		Question: "Great! Now, what is the patient's age group (child, adolescent, adult, elderly)?",
	},
	{
		Attr:     domain.AttrEthnicity,
		Question: "Thanks! Please describe the patient's racial or ethnic background (e.g., Black, White, Hispanic, Asian, Indigenous).",
	},
	{
		Attr:     domain.AttrHealth,
		Question: "Now, what is the patient's health condition and appearance? (e.g., healthy, chronic illness, recovering from injury, etc.)",
	},
	{
		Attr:     domain.AttrInteraction,
		Question: "Finally, how is the patient interacting with the doctor? (e.g., body language, facial expressions)",
	},
}
