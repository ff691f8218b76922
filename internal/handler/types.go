package handler

import (
	"prompt-refiner/internal/ai"
	"prompt-refiner/internal/models"
)

// --- Request/Response Structs ---

type generatePromptRequest struct {
	TaskDescription string `json:"task_description" binding:"required,notblank"`
	Category        string `json:"category"`
}

type modifyPromptRequest struct {
	CurrentRefinedPrompt            string `json:"current_refined_prompt"`
	UserModificationInstructions    string `json:"user_modification_instructions" binding:"required,notblank"`
	OriginalTaskForContext          string `json:"original_task_for_context"`
	OriginalCategoryLabelForContext string `json:"original_category_label_for_context"`
	CurrentCategoryID               string `json:"current_category_id"`
}

func (r modifyPromptRequest) toModel() models.ModificationRequest {
	return models.ModificationRequest{
		CurrentRefinedPrompt:  r.CurrentRefinedPrompt,
		UserInstructions:      r.UserModificationInstructions,
		OriginalTask:          r.OriginalTaskForContext,
		OriginalCategoryLabel: r.OriginalCategoryLabelForContext,
		CurrentCategoryID:     r.CurrentCategoryID,
	}
}

// refinementResponse is returned by both /api/generate-prompt and /api/modify-prompt.
type refinementResponse struct {
	OptimizedPrompt             string   `json:"optimized_prompt"`
	Explanation                 []string `json:"explanation"`
	Suggestions                 []string `json:"suggestions"`
	OriginalTaskForMod          string   `json:"original_task_for_mod"`
	OriginalCategoryLabelForMod string   `json:"original_category_label_for_mod"`
	CurrentCategoryID           string   `json:"current_category_id"`
}

func newRefinementResponse(res *models.RefinementResult) refinementResponse {
	return refinementResponse{
		OptimizedPrompt:             res.OptimizedPrompt,
		Explanation:                 nonNil(res.Explanation),
		Suggestions:                 nonNil(res.Suggestions),
		OriginalTaskForMod:          res.OriginalTask,
		OriginalCategoryLabelForMod: res.OriginalCategoryLabel,
		CurrentCategoryID:           res.CurrentCategoryID,
	}
}

// nonNil keeps empty lists encoded as [] instead of null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type chatMessagePart struct {
	Text string `json:"text"`
}

type chatMessage struct {
	Role  string            `json:"role" binding:"required,notblank"`
	Parts []chatMessagePart `json:"parts" binding:"required"`
}

type chatRequest struct {
	History []chatMessage `json:"history" binding:"required,dive"`
}

func (r chatRequest) turns() []ai.Turn {
	turns := make([]ai.Turn, 0, len(r.History))
	for _, m := range r.History {
		parts := make([]ai.Part, 0, len(m.Parts))
		for _, p := range m.Parts {
			parts = append(parts, ai.Part{Text: p.Text})
		}
		turns = append(turns, ai.Turn{Role: m.Role, Parts: parts})
	}
	return turns
}

type chatResponse struct {
	ModelResponse string `json:"model_response"`
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type meResponse struct {
	Email     string `json:"email"`
	ExpiresAt string `json:"expires_at"`
}

type healthResponse struct {
	Status string `json:"status"`
}
