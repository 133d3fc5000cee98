package quizdata

import (
	"strconv"

	"counting-sheep-service/internal/domain"
)

// LikertMin and LikertMax bound the agreement scale of the personality quiz.
const (
	LikertMin = 1
	LikertMax = 5
)

var likertLabels = map[int]string{
	1: "Strongly Disagree",
	2: "Disagree",
	3: "Neutral",
	4: "Agree",
	5: "Strongly Agree",
}

// Statement is one personality item. Evening-polarity statements are
// reverse-scored; Weight discounts less diagnostic items.
type Statement struct {
	ID      int
	Text    string
	Evening bool
	Weight  float64
}

// Category is a chronotype band over the normalized 0-100 score.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

// PersonalityStatements lists the twenty chronotype items in presentation order.
func PersonalityStatements() []Statement {
	return []Statement{
		{ID: 1, Text: "Even if I don't have to, I'm the kind who wakes up at sunrise."},
		{ID: 2, Text: "If I need to sleep early, I'll still be tossing around forever.", Evening: true},
		{ID: 3, Text: "Mornings are when my brain is sharpest and brightest."},
		{ID: 4, Text: "I'd call myself more of an \"early bird\" than a \"night owl.\""},
		{ID: 5, Text: "Waking up leaves me refreshed and ready to go."},
		{ID: 6, Text: "My weekend sleep schedule looks nothing like my weekday one.", Evening: true, Weight: 0.5},
		{ID: 7, Text: "Sometimes I skip plans or events because I just can't stay up late."},
		{ID: 8, Text: "I feel a burst of energy in the evening, not the morning.", Evening: true},
		{ID: 9, Text: "Staying awake past 1 am is pretty normal for me.", Evening: true},
		{ID: 10, Text: "My eyelids always get heavy in the afternoon.", Evening: true},
		{ID: 11, Text: "If I had to do my best work, I'd pick the afternoon or evening.", Evening: true},
		{ID: 12, Text: "I keep hitting snooze (even when I know I shouldn't).", Evening: true},
		{ID: 13, Text: "I fall asleep in random places — bus rides, couches, anywhere.", Evening: true},
		{ID: 14, Text: "People around me say I'm definitely a \"night person.\"", Evening: true},
		{ID: 15, Text: "If my alarm says 6 or 7 am, I'll be grumpy about it.", Evening: true},
		{ID: 16, Text: "Being late to school/work because I overslept has happened before.", Evening: true},
		{ID: 17, Text: "As soon as I wake up, I feel fully alert (no warm-up needed)."},
		{ID: 18, Text: "If nobody stopped me, I'd probably sleep till noon.", Evening: true},
		{ID: 19, Text: "I feel at my best in the late afternoon or evening.", Evening: true},
		{ID: 20, Text: "Falling asleep at 1 am (or later) is super common for me.", Evening: true},
	}
}

// PersonalityCategories returns the chronotype bands, lowest (most evening)
// first. The bands cover the full 0-100 range.
func PersonalityCategories() []Category {
	return []Category{
		{ID: "night-owl", Name: "Night Owl", Emoji: "🌙", Min: 0, Max: 24},
		{ID: "late-hummingbird", Name: "Late Hummingbird", Emoji: "🌌", Min: 25, Max: 43},
		{ID: "balanced-hummingbird", Name: "Balanced Hummingbird", Emoji: "🐦", Min: 44, Max: 68},
		{ID: "early-hummingbird", Name: "Early Hummingbird", Emoji: "☀️", Min: 69, Max: 86},
		{ID: "morning-lark", Name: "Morning Lark", Emoji: "🌄", Min: 87, Max: 100},
	}
}

// Personality returns the sleep personality quiz as a renderable definition.
// Likert options carry no table weight; chronotype scoring handles reverse
// items and weights itself.
func Personality() domain.Quiz {
	statements := PersonalityStatements()
	questions := make([]domain.Question, len(statements))
	for i, s := range statements {
		opts := make([]domain.Option, 0, LikertMax-LikertMin+1)
		for v := LikertMin; v <= LikertMax; v++ {
			opts = append(opts, domain.Option{Value: domain.IntValue(v), Label: likertLabels[v]})
		}
		questions[i] = domain.Question{
			ID:       strconv.Itoa(s.ID),
			Prompt:   s.Text,
			Kind:     domain.KindRadio,
			Options:  opts,
			Required: true,
		}
	}
	return domain.Quiz{
		Slug:        SlugPersonality,
		Title:       "What Kind of Sleeper Are You?",
		Description: "20 quick statements. Rate how much you agree. We'll map you to a chronotype.",
		Questions:   questions,
	}
}
