package constant

// Source types stored alongside chunks.
const (
	SourceTypeVideo = "video"
	SourceTypePdf   = "pdf"
)

// Generation defaults and budgets.
const (
	DefaultFlashcardCount = 10
	DefaultQuizCount      = 5

	// ContextChunkLimit caps how many chunks feed structured generation.
	ContextChunkLimit = 60
	// MaxContentChars bounds the prompt context (~3000 tokens).
	MaxContentChars = 12000
	// MaxHistoryTurns caps replayed chat history; older turns are dropped.
	MaxHistoryTurns = 10

	FlashcardMaxTokens = 2000
	QuizMaxTokens      = 2500
	ChatMaxTokens      = 1000

	ChatTemperature = 0.7
)

// ContextSeparator joins retrieved chunks inside the chat context block.
const ContextSeparator = "\n\n---\n\n"

// NoRelevantContentPlaceholder replaces an empty retrieval result so the
// model never receives a silently empty context.
const NoRelevantContentPlaceholder = "(No relevant content found in the uploaded document for this query.)"

// FlashcardPromptTemplate expects (count, content).
const FlashcardPromptTemplate = `You are an expert educator. Based on the following content, generate exactly %d flashcards.

Return ONLY a valid JSON array with no additional text, no markdown fences, and no commentary.
Each object must have:
- "front": A clear, concise question or term (max 20 words)
- "back": A clear, concise answer or definition (max 60 words)

Focus on key concepts, definitions, and important facts.
Vary the question types (what, why, how, who, when).

Content:
%s`

// QuizPromptTemplate expects (count, content).
const QuizPromptTemplate = `You are an expert educator. Based on the following content, generate exactly %d multiple-choice questions.

Return ONLY a valid JSON array with no additional text, no markdown fences, and no commentary.
Each object must have:
- "question": The question text
- "options": An array of exactly 4 strings
- "correct_index": Integer 0-3 indicating the correct option
- "explanation": A brief explanation of why the answer is correct (max 50 words)

Make distractors plausible but clearly wrong upon reflection.
Vary difficulty: easy, medium, and harder questions.

Content:
%s`

// ChatSystemPromptTemplate expects (context). The refusal directive keeps
// answers grounded in retrieved content instead of model priors.
const ChatSystemPromptTemplate = `You are a helpful learning assistant. Your job is to answer the user's questions based on the provided context from their uploaded document or video (including any source metadata tags like Title or Date).

If the answer is definitely not found in the context, say clearly: "I don't have enough information from the provided content to answer that."

Be concise, accurate, and educational in your responses.

Context:
%s`
