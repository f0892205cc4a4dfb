package backend

import "fmt"

const systemPrompt = `You summarize live meeting transcripts. Write a short, neutral summary of what has been discussed so far: main topics, decisions and open action items. Use plain prose, at most five sentences. Do not invent details that are not in the transcript.`

const userPromptTemplate = `Transcript so far:
---
%s
---`

func buildPrompt(text string) string {
	return fmt.Sprintf(userPromptTemplate, text)
}
