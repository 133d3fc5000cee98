package quizdata

import "counting-sheep-service/internal/domain"

var frequencyLabels = []string{
	"Not during the past month",
	"Less than once a week",
	"Once or twice a week",
	"Three or more times a week",
}

func selectQuestion(id, prompt string, values, labels []string) domain.Question {
	opts := make([]domain.Option, len(values))
	for i := range values {
		opts[i] = domain.Option{Value: domain.StringValue(values[i]), Label: labels[i]}
	}
	return domain.Question{ID: id, Prompt: prompt, Kind: domain.KindSelect, Options: opts, Required: true}
}

// PSQI returns the simplified Pittsburgh Sleep Quality Index used here: scored
// 0-3 frequency items plus unscored bedtime/wake-time selects, banded to 0-21.
func PSQI() domain.Quiz {
	return domain.Quiz{
		Slug:        SlugPSQI,
		Title:       "Pittsburgh Sleep Quality Index",
		Description: "Assesses sleep quality and disturbances over the past month.",
		Questions: []domain.Question{
			selectQuestion("bedtime",
				"During the past month, what time have you usually gone to bed at night?",
				[]string{"before_9pm", "9pm_10pm", "10pm_11pm", "11pm_12am", "after_12am"},
				[]string{"Before 9:00 PM", "9:00 PM - 10:00 PM", "10:00 PM - 11:00 PM", "11:00 PM - 12:00 AM", "After 12:00 AM"}),
			radioScale("sleep_latency",
				"During the past month, how long (in minutes) has it usually taken you to fall asleep each night?",
				[]string{"≤15 minutes", "16-30 minutes", "31-60 minutes", ">60 minutes"}),
			selectQuestion("wake_time",
				"During the past month, what time have you usually gotten up in the morning?",
				[]string{"before_5am", "5am_6am", "6am_7am", "7am_8am", "after_8am"},
				[]string{"Before 5:00 AM", "5:00 AM - 6:00 AM", "6:00 AM - 7:00 AM", "7:00 AM - 8:00 AM", "After 8:00 AM"}),
			radioScale("sleep_duration",
				"During the past month, how many hours of actual sleep did you get at night?",
				[]string{">7 hours", "6-7 hours", "5-6 hours", "<5 hours"}),
			radioScale("cannot_sleep_30min",
				"During the past month, how often have you had trouble sleeping because you cannot get to sleep within 30 minutes?",
				frequencyLabels),
			radioScale("wake_middle_night",
				"During the past month, how often have you had trouble sleeping because you wake up in the middle of the night or early morning?",
				frequencyLabels),
			radioScale("bathroom",
				"During the past month, how often have you had trouble sleeping because you have to get up to use the bathroom?",
				frequencyLabels),
			radioScale("breathe_comfortably",
				"During the past month, how often have you had trouble sleeping because you cannot breathe comfortably?",
				frequencyLabels),
			radioScale("cough_snore",
				"During the past month, how often have you had trouble sleeping because you cough or snore loudly?",
				frequencyLabels),
			radioScale("too_cold",
				"During the past month, how often have you had trouble sleeping because you feel too cold?",
				frequencyLabels),
			radioScale("too_hot",
				"During the past month, how often have you had trouble sleeping because you feel too hot?",
				frequencyLabels),
			radioScale("bad_dreams",
				"During the past month, how often have you had trouble sleeping because you had bad dreams?",
				frequencyLabels),
			radioScale("pain",
				"During the past month, how often have you had trouble sleeping because you have pain?",
				frequencyLabels),
			radioScale("sleep_quality",
				"During the past month, how would you rate your sleep quality overall?",
				[]string{"Very good", "Fairly good", "Fairly bad", "Very bad"}),
			radioScale("sleep_medication",
				"During the past month, how often have you taken medicine to help you sleep (prescribed or over the counter)?",
				frequencyLabels),
			radioScale("stay_awake",
				"During the past month, how often have you had trouble staying awake while driving, eating meals, or engaging in social activity?",
				frequencyLabels),
			radioScale("enthusiasm",
				"During the past month, how much of a problem has it been for you to keep up enthusiasm to get things done?",
				[]string{"No problem at all", "Only a very slight problem", "Somewhat of a problem", "A very big problem"}),
		},
	}
}
