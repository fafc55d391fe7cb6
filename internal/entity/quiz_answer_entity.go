package entity

// QuizAnswer is the hidden half of a generated quiz question. It lives only
// in the server-side answer cache and is never serialized into the quiz
// payload sent to callers.
type QuizAnswer struct {
	CorrectIndex int
	Explanation  string
}
