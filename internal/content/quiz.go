package content

import (
	"fmt"
	"math/rand"
)

// QuizQuestion is a multiple-choice question about one word's meaning.
type QuizQuestion struct {
	ID           string
	WordID       string
	Question     string
	Options      []string
	CorrectIndex int
}

const quizOptionCount = 4

// BuildQuiz generates up to count questions from the word list. Each
// question mixes the word's meaning with three wrong meanings drawn from
// the rest of the list, shuffled.
func BuildQuiz(rng *rand.Rand, words []Word, count int) []QuizQuestion {
	if count > len(words) {
		count = len(words)
	}

	questions := make([]QuizQuestion, 0, count)
	for _, w := range words[:count] {
		options := append([]string{w.Meaning}, wrongOptions(rng, words, w.Meaning)...)
		shuffled := shuffle(rng, options)

		correct := 0
		for i, opt := range shuffled {
			if opt == w.Meaning {
				correct = i
				break
			}
		}

		questions = append(questions, QuizQuestion{
			ID:           "q-" + w.ID,
			WordID:       w.ID,
			Question:     fmt.Sprintf("What does %q mean?", w.Word),
			Options:      shuffled,
			CorrectIndex: correct,
		})
	}
	return questions
}

func wrongOptions(rng *rand.Rand, words []Word, correctMeaning string) []string {
	var others []string
	for _, w := range words {
		if w.Meaning != correctMeaning {
			others = append(others, w.Meaning)
		}
	}
	others = shuffle(rng, others)
	if len(others) > quizOptionCount-1 {
		others = others[:quizOptionCount-1]
	}
	return others
}

func shuffle(rng *rand.Rand, in []string) []string {
	out := append([]string(nil), in...)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
