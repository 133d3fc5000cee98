// Package recommend resolves post-submission guidance: admin-managed rules
// first, the static fallback table second.
package recommend

import (
	"counting-sheep-service/internal/domain"
	"counting-sheep-service/internal/quizdata"
)

type band struct {
	min, max int
	rec      domain.Recommendation
}

// defaultBands covers the full score range of every clinical quiz so a
// submission always has guidance even with an empty rules table.
var defaultBands = map[string][]band{
	quizdata.SlugEpworth: {
		{0, 7, domain.Recommendation{
			Title: "Normal Daytime Sleepiness",
			Tips: []string{
				"Maintain a consistent sleep schedule (same bedtime and wake time).",
				"Aim for 7-9 hours of sleep per night as needed.",
				"Limit caffeine after mid-afternoon and keep your bedroom dark and cool.",
			},
		}},
		{8, 10, domain.Recommendation{
			Title: "Mild Excessive Sleepiness",
			Tips: []string{
				"Review sleep duration and consistency for the last 2 weeks.",
				"Reduce late-night screens; try a 30-minute wind-down routine.",
				"If symptoms persist, discuss with a clinician.",
			},
		}},
		{11, 15, domain.Recommendation{
			Title: "Moderate Excessive Sleepiness",
			Tips: []string{
				"Consider a clinical evaluation for possible sleep disorders (e.g., OSA, narcolepsy).",
				"Avoid driving when drowsy; schedule short, strategic naps if appropriate.",
				"Track daytime sleepiness and triggers to share with a provider.",
			},
		}},
		{16, 24, domain.Recommendation{
			Title: "Severe Excessive Sleepiness",
			Tips: []string{
				"Seek prompt medical assessment for significant daytime sleepiness.",
				"Avoid safety-critical tasks (driving, operating machinery) until evaluated.",
				"Consider a sleep study as advised by a clinician.",
			},
		}},
	},
	quizdata.SlugStopBang: {
		{0, 2, domain.Recommendation{
			Title: "Low Risk for Obstructive Sleep Apnea",
			Tips: []string{
				"Maintain healthy weight and regular exercise.",
				"Sleep on your side and limit alcohol close to bedtime.",
				"Monitor snoring or witnessed apneas if they arise.",
			},
		}},
		{3, 4, domain.Recommendation{
			Title: "Intermediate Risk for Obstructive Sleep Apnea",
			Tips: []string{
				"Discuss symptoms (snoring, witnessed apneas, fatigue) with a clinician.",
				"Consider home sleep apnea testing if recommended.",
				"Elevate head of bed; avoid sedatives unless prescribed.",
			},
		}},
		{5, 8, domain.Recommendation{
			Title: "High Risk for Obstructive Sleep Apnea",
			Tips: []string{
				"Seek evaluation by a sleep specialist; a sleep study may be indicated.",
				"If diagnosed, treatment (e.g., CPAP) can improve health and daytime alertness.",
				"Avoid driving while drowsy and limit alcohol before bed.",
			},
		}},
	},
	quizdata.SlugPSQI: {
		{0, 5, domain.Recommendation{
			Title: "Good Sleep Quality",
			Tips: []string{
				"Keep a consistent sleep schedule and bedtime routine.",
				"Continue healthy habits (light exposure by day, dark quiet bedroom at night).",
				"Reassess if sleep quality changes or daytime fatigue increases.",
			},
		}},
		{6, 10, domain.Recommendation{
			Title: "Moderate Sleep Quality Issues",
			Tips: []string{
				"Audit caffeine, alcohol, and late-evening meals; adjust as needed.",
				"Try relaxation techniques (breathing exercises, gentle stretching).",
				"Consider a brief sleep diary to identify patterns to improve.",
			},
		}},
		{11, 21, domain.Recommendation{
			Title: "Poor Sleep Quality",
			Tips: []string{
				"Consult a clinician or sleep specialist for persistent issues.",
				"Cognitive Behavioral Therapy for Insomnia (CBT-I) is highly effective.",
				"Evaluate for conditions such as sleep apnea, anxiety, or restless legs.",
			},
		}},
	},
}

// Defaults returns the static fallback recommendation for a quiz and score.
// Scores above a quiz's last band clamp to that band so out-of-range totals
// still resolve. The second return is false for unsupported slugs.
func Defaults(slug string, score int) (domain.Recommendation, bool) {
	bands, ok := defaultBands[slug]
	if !ok {
		// Accept the storage spelling of STOP-BANG too.
		if slug == quizdata.StorageSlug(quizdata.SlugStopBang) {
			bands = defaultBands[quizdata.SlugStopBang]
		} else {
			return domain.Recommendation{}, false
		}
	}
	for _, b := range bands {
		if score >= b.min && score <= b.max {
			return b.rec, true
		}
	}
	return bands[len(bands)-1].rec, true
}
