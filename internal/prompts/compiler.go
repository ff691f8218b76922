package prompts

import "strings"

// Compile fills the template of the category resolved by Lookup(categoryID)
// with userInput. The input is inserted verbatim: it goes to a generative model,
// so nothing is escaped.
func (r *Registry) Compile(categoryID, userInput string) string {
	return Fill(r.Lookup(categoryID), userInput)
}

// Fill substitutes userInput into the marker of c.Template.
func Fill(c Category, userInput string) string {
	return strings.Replace(c.Template, Marker, userInput, 1)
}
