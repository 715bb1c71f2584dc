package quiz

import (
	"github.com/pkg/errors"
)

var ErrUnknownQuestion = errors.New("unknown question")

// Question is a single multiple-choice item. CorrectIndex and
// Explanation are never serialized towards an in-progress session.
type Question struct {
	ID           int      `json:"id"`
	Prompt       string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"-"`
	Explanation  string   `json:"-"`
}

var catalog = []Question{
	{
		ID:     1,
		Prompt: "What is the primary focus of Tai Chi practice?",
		Options: []string{
			"Building muscle strength",
			"Harmonizing mind, body, and breath",
			"Competitive performance",
			"Rapid weight loss",
		},
		CorrectIndex: 1,
		Explanation:  "Tai Chi focuses on harmonizing mind, body, and breath through slow, flowing movements and meditation.",
	},
	{
		ID:     2,
		Prompt: "Which philosophical tradition is Tai Chi rooted in?",
		Options: []string{
			"Buddhism",
			"Confucianism",
			"Daoism",
			"Hinduism",
		},
		CorrectIndex: 2,
		Explanation:  "Tai Chi is deeply rooted in Daoist philosophy, emphasizing balance, natural flow, and harmony with nature.",
	},
	{
		ID:     3,
		Prompt: "What does the concept of Yin-Yang represent in Tai Chi?",
		Options: []string{
			"Good versus evil",
			"Complementary opposites in balance",
			"Light and darkness",
			"Strength and weakness",
		},
		CorrectIndex: 1,
		Explanation:  "Yin-Yang represents complementary opposites that create balance and harmony when unified.",
	},
	{
		ID:     4,
		Prompt: "How should breathing be coordinated in Tai Chi practice?",
		Options: []string{
			"Hold breath during movements",
			"Breathe rapidly and deeply",
			"Synchronize breath with movement naturally",
			"Focus only on exhaling",
		},
		CorrectIndex: 2,
		Explanation:  "Breathing should be natural and synchronized with movements, creating a flowing meditation.",
	},
	{
		ID:     5,
		Prompt: "What is the best approach to building a consistent Tai Chi practice?",
		Options: []string{
			"Practice for hours every day",
			"Only practice when you feel like it",
			"Start small and build gradually",
			"Focus on perfect technique from the beginning",
		},
		CorrectIndex: 2,
		Explanation:  "Building consistency starts with small, manageable practices that gradually develop into a sustainable routine.",
	},
}

// Questions returns all quiz questions in order, as a copy.
func Questions() []Question {
	questions := make([]Question, len(catalog))
	copy(questions, catalog)
	return questions
}

// QuestionCount returns the number of questions in the quiz.
func QuestionCount() int {
	return len(catalog)
}
