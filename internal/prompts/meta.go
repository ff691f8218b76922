package prompts

import "fmt"

const explanationFormat = `You are an expert prompt engineer.
Explain why the following prompt was generated in this way, considering the original user task: %q and the category: %q.
Highlight the key elements added or modified to make the prompt more effective for an AI.
Provide only the explanation as a concise bulleted list with a maximum of 3-4 key points, starting each point with an asterisk (*). Do not include any introductory or concluding sentences.

Generated Prompt:
%s
`

const suggestionsFormat = `You are an expert prompt engineer.
Based on the following generated prompt and the original user task: %q, suggest 2-3 actionable ways the user could have phrased their initial request to potentially get an even better or more directly relevant prompt in the future.
Provide only the suggestions as a concise bulleted list, starting each point with an asterisk (*). Do not include any introductory or concluding sentences.

Generated Prompt:
%s
`

const modificationFormat = `You are an exceptionally skilled **AI Prompt Engineer and LLM Trainer**. Your primary goal is to meticulously refine and adapt existing prompts based on precise user instructions, ensuring optimal performance and clarity for subsequent AI interactions.

**Original Context for Reference (Do NOT modify these):**
* **Initial Task:** %q
* **Task Category:** %q

**Your Core Task:**
Carefully analyze the 'CURRENT REFINED PROMPT' provided below. Then, apply the 'USER MODIFICATION INSTRUCTIONS' to generate a **single, new, highly refined prompt**.

**Crucial Constraints & Requirements:**
1. **Output Format:** Your output *must be exclusively the modified prompt string*. Do not include any conversational filler, introductory phrases (e.g., "Here is your modified prompt:"), concluding remarks, or any other extraneous text.
2. **Strict Adherence:** Adhere *strictly* to all aspects of the 'USER MODIFICATION INSTRUCTIONS'. If an instruction seems ambiguous, interpret it in a way that minimizes ambiguity and maximizes the utility of the prompt for an AI.
3. **Preservation of Core Intent:** While modifying, ensure the core objective and original intent of the 'CURRENT REFINED PROMPT' are preserved unless explicitly contradicted by the modification instructions.
4. **Clarity & Conciseness:** The final prompt should be as clear, unambiguous, and concise as possible, optimizing it for direct interaction with an LLM. Avoid redundancy.
5. **No Explanations:** Do not explain your changes or thought process. Simply output the final prompt.
6. **Error Handling (Implicit):** If the 'USER MODIFICATION INSTRUCTIONS' are illogical or impossible to apply without breaking the prompt's functionality, generate the most sensible prompt possible while maintaining utility. Do not generate an error message.

---
**CURRENT REFINED PROMPT (for modification):**
%s

---
**USER MODIFICATION INSTRUCTIONS (to apply):**
%s

---
**MODIFIED PROMPT (Your output starts here - ONLY the prompt string):**
`

// ExplanationPrompt asks for 3-4 bullet points on why generatedPrompt looks the way it does.
func ExplanationPrompt(generatedPrompt, originalTask, categoryLabel string) string {
	return fmt.Sprintf(explanationFormat, originalTask, categoryLabel, generatedPrompt)
}

// SuggestionsPrompt asks for 2-3 bullet points on how the user could phrase the task better.
func SuggestionsPrompt(generatedPrompt, originalTask string) string {
	return fmt.Sprintf(suggestionsFormat, originalTask, generatedPrompt)
}

// ModificationPrompt asks the model to rewrite currentPrompt according to instructions
// and to output nothing but the new prompt.
func ModificationPrompt(currentPrompt, instructions, originalTask, categoryLabel string) string {
	return fmt.Sprintf(modificationFormat, originalTask, categoryLabel, currentPrompt, instructions)
}
