package rag

import "fmt"

const (
	answerSystemPrompt = "You are an intelligent assistant specialized in answering based only on provided documents. " +
		"If the context is insufficient, clearly state that. Always stay factual and concise."

	expansionSystemPrompt = "You improve search coverage by adding relevant terms."

	summarySystemPrompt = "You summarize content precisely and factually."

	keywordSystemPrompt = "You extract concise and relevant keywords."

	evalSystemPrompt = "You are an impartial evaluator."
)

func answerPrompt(query, context string) string {
	return fmt.Sprintf(`
You are a document-based reasoning assistant.

Context:
%s

User Question:
%s

Instructions:
- Answer the question using ONLY the provided documents.
- Mention which document(s) support your response.
- If information is missing, clearly state that.
- Be concise yet coherent and logically structured.

Final Answer:
`, context, query)
}

func expansionPrompt(query string) string {
	return fmt.Sprintf("Generate a few related terms and synonyms for this query: '%s'. Keep it concise.", query)
}

func summaryPrompt(context string) string {
	return fmt.Sprintf("Summarize the following documents concisely:\n\n%s\n\nSummary:", context)
}

func keywordPrompt(query string) string {
	return fmt.Sprintf("Extract 3-6 important keywords or key phrases from this query:\n\n'%s'", query)
}

func evalPrompt(reference, answer string) string {
	return fmt.Sprintf(`
You are an evaluator grading an answer's quality.

Question Reference:
%s

Model Answer:
%s

Evaluate coherence, factuality, and completeness on a scale of 0 to 10.
Return only the numeric score.
`, reference, answer)
}
