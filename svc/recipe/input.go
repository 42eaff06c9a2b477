package recipe

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/recipebox/pkg/validator"
)

const (
	maxTitleLen = 200
	maxTipLen   = 2000
	maxNameLen  = 100
)

// SplitTags splits a comma separated list, trimming blanks and dropping empties.
func SplitTags(s string) []string {
	tags := []string{}
	for t := range strings.SplitSeq(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ParseIngredientLines reads one ingredient per line as "name | amount | unit".
// Amount and unit are optional.
func ParseIngredientLines(text string) []Ingredient {
	var out []Ingredient
	for line := range strings.Lines(text) {
		parts := strings.Split(line, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if parts[0] == "" {
			continue
		}
		ing := Ingredient{Name: parts[0]}
		if len(parts) > 1 {
			ing.Amount = Amount(parts[1])
		}
		if len(parts) > 2 {
			ing.Unit = parts[2]
		}
		out = append(out, ing)
	}
	return out
}

// ParseStepLines reads one step per non-blank line.
func ParseStepLines(text string) []Step {
	var out []Step
	for line := range strings.Lines(text) {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, Step{Description: line})
		}
	}
	return out
}

func (in CreateRecipeInput) Validate() error {
	rules := []validator.Rule{
		validator.Required("title", in.Title),
		validator.MaxLen("title", in.Title, maxTitleLen),
		validator.Required("recipeAuthor", in.AuthorID),
		validator.ValidURL("videoUrl", in.VideoURL),
		validator.ValidLink("imageUrl", in.ImageURL),
		validator.MinNum("serving", in.Serving, 1),
		validator.RequiredSlice("ingredients", in.Ingredients),
		validator.RequiredSlice("steps", in.Steps),
		validator.MaxLen("tip", in.Tip, maxTipLen),
	}
	for i, ing := range in.Ingredients {
		rules = append(rules, validator.Required(fmt.Sprintf("ingredients[%d].name", i), ing.Name))
	}
	for i, s := range in.Steps {
		rules = append(rules, validator.Required(fmt.Sprintf("steps[%d].description", i), s.Description))
	}
	return validator.Apply(rules...)
}

func (in CreateAuthorInput) Validate() error {
	return validator.Apply(
		validator.Required("name", in.Name),
		validator.MaxLen("name", in.Name, maxNameLen),
		validator.ValidLink("imageUrl", in.ImageURL),
		validator.ValidURL("youtubeUrl", in.YoutubeURL),
	)
}
