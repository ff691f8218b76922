package models

// RefinementResult is produced by both the refinement and the modification flows.
// The Original* and CurrentCategoryID fields are echoed back so the client can
// send them with the next modification request.
type RefinementResult struct {
	OptimizedPrompt       string
	Explanation           []string
	Suggestions           []string
	OriginalTask          string
	OriginalCategoryLabel string
	CurrentCategoryID     string
}

// ModificationRequest describes one instruction-guided rewrite of a refined prompt.
type ModificationRequest struct {
	CurrentRefinedPrompt  string
	UserInstructions      string
	OriginalTask          string
	OriginalCategoryLabel string
	CurrentCategoryID     string
}

// Analysis holds the bullet lists generated for a refined prompt.
type Analysis struct {
	Explanation []string
	Suggestions []string
}
