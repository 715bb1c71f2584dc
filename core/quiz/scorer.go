package quiz

// Unanswered marks a question the learner never answered.
// An unanswered question counts as incorrect.
const Unanswered = -1

// PassMark is the minimum percentage to pass the quiz.
const PassMark = 70.0

type (
	// Result is a graded quiz.
	Result struct {
		Correct    int      `json:"correct"`
		Total      int      `json:"total"`
		Percentage float64  `json:"percentage"`
		Reviews    []Review `json:"reviews"`
	}

	// Review explains one question of a graded quiz. The option texts
	// are carried along so the review screen can render without access
	// to the grading data the catalog withholds.
	Review struct {
		QuestionID   int    `json:"question_id"`
		Selected     int    `json:"selected"`
		SelectedText string `json:"selected_text,omitempty"`
		Correct      int    `json:"correct"`
		CorrectText  string `json:"correct_text"`
		IsCorrect    bool   `json:"is_correct"`
		Explanation  string `json:"explanation"`
	}
)

func (r Result) Passed() bool {
	return r.Percentage >= PassMark
}

// Grade scores the answers against the questions.
// answers maps question ID to the selected option index; missing
// entries grade as Unanswered.
func Grade(questions []Question, answers map[int]int) Result {
	res := Result{Total: len(questions), Reviews: make([]Review, 0, len(questions))}
	for _, q := range questions {
		selected, ok := answers[q.ID]
		if !ok {
			selected = Unanswered
		}
		correct := selected == q.CorrectIndex
		if correct {
			res.Correct++
		}
		var selectedText string
		if selected >= 0 && selected < len(q.Options) {
			selectedText = q.Options[selected]
		}
		res.Reviews = append(res.Reviews, Review{
			QuestionID:   q.ID,
			Selected:     selected,
			SelectedText: selectedText,
			Correct:      q.CorrectIndex,
			CorrectText:  q.Options[q.CorrectIndex],
			IsCorrect:    correct,
			Explanation:  q.Explanation,
		})
	}
	if res.Total > 0 {
		res.Percentage = float64(res.Correct) / float64(res.Total) * 100
	}
	return res
}
