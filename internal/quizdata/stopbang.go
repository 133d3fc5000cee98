package quizdata

import "counting-sheep-service/internal/domain"

// StopBang returns the STOP-BANG obstructive sleep apnea screen: eight yes/no
// items, one point per yes.
func StopBang() domain.Quiz {
	return domain.Quiz{
		Slug:        SlugStopBang,
		Title:       "STOP-BANG Questionnaire",
		Description: "Screens for risk factors of obstructive sleep apnea.",
		Questions: []domain.Question{
			yesNo("snoring", "Do you snore loudly (louder than talking or loud enough to be heard through closed doors)?"),
			yesNo("tired", "Do you often feel tired, fatigued, or sleepy during daytime?"),
			yesNo("observed", "Has anyone observed you stop breathing during your sleep?"),
			yesNo("pressure", "Do you have or are you being treated for high blood pressure?"),
			yesNo("bmi", "Is your BMI more than 35 kg/m²?"),
			yesNo("age", "Are you older than 50 years?"),
			yesNo("neck", "Is your neck circumference greater than 40 cm (15.75 inches)?"),
			yesNo("gender", "Are you male?"),
		},
	}
}
