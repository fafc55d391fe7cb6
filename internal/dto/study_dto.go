package dto

type GenerateFlashcardsRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Count     int    `json:"count" validate:"omitempty,min=1,max=50"`
}

type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type GenerateFlashcardsResponse struct {
	Flashcards []Flashcard `json:"flashcards"`
}

type GenerateQuizRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Count     int    `json:"count" validate:"omitempty,min=1,max=20"`
}

// QuizQuestion deliberately omits the correct index and blanks the
// explanation. Both stay in the server-side answer cache until the answer
// is checked.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Explanation string   `json:"explanation"`
}

type GenerateQuizResponse struct {
	Questions []QuizQuestion `json:"questions"`
}

type CheckAnswerRequest struct {
	SessionId     string `json:"session_id" validate:"required"`
	QuestionIndex *int   `json:"question_index" validate:"required,min=0"`
	SelectedIndex *int   `json:"selected_index" validate:"required,min=0"`
}

type CheckAnswerResponse struct {
	Correct      bool   `json:"correct"`
	CorrectIndex int    `json:"correct_index"`
	Explanation  string `json:"explanation"`
}
