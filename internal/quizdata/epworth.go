package quizdata

import "counting-sheep-service/internal/domain"

var dozingLabels = []string{
	"Would never doze",
	"Slight chance of dozing",
	"Moderate chance of dozing",
	"High chance of dozing",
}

// Epworth returns the Epworth Sleepiness Scale: eight situations rated 0-3,
// total 0-24.
func Epworth() domain.Quiz {
	return domain.Quiz{
		Slug:        SlugEpworth,
		Title:       "Epworth Sleepiness Scale",
		Description: "Rates your chance of dozing off in eight everyday situations.",
		Questions: []domain.Question{
			radioScale("sitting_reading", "How likely are you to doze off or fall asleep while sitting and reading?", dozingLabels),
			radioScale("watching_tv", "How likely are you to doze off or fall asleep while watching TV?", dozingLabels),
			radioScale("sitting_inactive", "How likely are you to doze off while sitting inactive in a public place (theater, meeting)?", dozingLabels),
			radioScale("passenger_car", "How likely are you to doze off as a passenger in a car for an hour without a break?", dozingLabels),
			radioScale("lying_down", "How likely are you to doze off when lying down to rest in the afternoon?", dozingLabels),
			radioScale("sitting_talking", "How likely are you to doze off while sitting and talking to someone?", dozingLabels),
			radioScale("after_lunch", "How likely are you to doze off while sitting quietly after lunch without alcohol?", dozingLabels),
			radioScale("in_car_traffic", "How likely are you to doze off in a car while stopped for a few minutes in traffic?", dozingLabels),
		},
	}
}
