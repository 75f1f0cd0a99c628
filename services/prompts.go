package services

import "fmt"

const GenerationSystemPrompt = `You are a smart mock interview generator. You must respond with ONLY valid JSON: a top-level array of objects, each shaped like {"question": "Sample question?", "answer": "A strong reference answer."}. Do not wrap the array inside any object like "questions_and_answers". Do not add markdown, code fences, or explanations.`

const ScoringSystemPrompt = `You are an interview coach scoring a candidate's spoken answer. You must respond with ONLY valid JSON: an object with a numeric "rating" between 0 and 10 and a string "feedback" of 3-5 lines. Do not add markdown, code fences, or explanations.`

func GenerationPrompt(jobPosition, jobDescription, yearsExperience string, questionCount int) string {
	return fmt.Sprintf(`Job Position: %s
Job Description: %s
Years of Experience: %s

Give me %d mock interview questions with reference answers as a JSON array.`,
		jobPosition, jobDescription, yearsExperience, questionCount)
}

func ScoringPrompt(question, userAnswer string) string {
	return fmt.Sprintf(`Question: %s
User answer: %s

Give a JSON object with "rating" and "feedback" (3-5 lines only).`,
		question, userAnswer)
}
