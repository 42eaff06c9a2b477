package recipe

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Amount is an ingredient quantity. Numeric amounts are written to JSON as
// numbers; free text such as "a pinch" stays a string.
type Amount string

func (a Amount) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(a), 64); err == nil {
		return []byte(a), nil
	}
	return json.Marshal(string(a))
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

type Ingredient struct {
	Name   string `json:"name"`
	Amount Amount `json:"amount"`
	Unit   string `json:"unit"`
}

type AuthorRef struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

type Recipe struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	AuthorID     string       `json:"authorId"`
	YoutubeURL   string       `json:"youtubeUrl,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
	Steps        []string     `json:"steps"`
	Tags         []string     `json:"tags"`
	ThumbnailURL string       `json:"thumbnailUrl,omitempty"`
	Serving      int          `json:"serving"`
	ViewCount    int          `json:"viewCount"`
	Tip          string       `json:"tip"`
	Likes        int          `json:"likes"`
	Author       AuthorRef    `json:"author"`
	UserID       string       `json:"userId"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Summary is the card shape used by lists.
type Summary struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	Tags         []string `json:"tags"`
	Serving      int      `json:"serving"`
	ViewCount    int      `json:"viewCount"`
	Tip          string   `json:"tip"`
	AuthorName   string   `json:"authorName"`
	Likes        int      `json:"likes"`
}

func (r Recipe) Summary() Summary {
	return Summary{
		ID:           r.ID,
		Title:        r.Title,
		ThumbnailURL: r.ThumbnailURL,
		Tags:         r.Tags,
		Serving:      r.Serving,
		ViewCount:    r.ViewCount,
		Tip:          r.Tip,
		AuthorName:   r.Author.Name,
		Likes:        r.Likes,
	}
}

type Author struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	YoutubeURL  string    `json:"youtubeUrl,omitempty"`
	YoutubeID   string    `json:"youtubeId,omitempty"`
	RecipeCount int       `json:"recipeCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Page is one slice of an author's recipes, newest first.
type Page struct {
	Recipes    []Summary `json:"recipes"`
	NextCursor *string   `json:"nextCursor"`
	HasMore    bool      `json:"hasMore"`
}

// Home is the landing page payload.
type Home struct {
	Recipes      []Summary `json:"recipes"`
	Authors      []Author  `json:"authors"`
	TotalRecipes int       `json:"totalRecipes"`
}

type Step struct {
	Description string `json:"description"`
}

// CreateRecipeInput mirrors the upload form and the JSON API body.
type CreateRecipeInput struct {
	Title       string       `json:"title" form:"title"`
	AuthorID    string       `json:"recipeAuthor" form:"recipe_author"`
	VideoURL    string       `json:"videoUrl" form:"video_url"`
	ImageURL    string       `json:"imageUrl" form:"image_url"`
	Serving     int          `json:"serving" form:"serving"`
	Tags        string       `json:"tags" form:"tags"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
	Tip         string       `json:"tip" form:"tip"`
}

type CreateAuthorInput struct {
	Name       string `json:"name" form:"name"`
	ImageURL   string `json:"imageUrl" form:"image_url"`
	YoutubeURL string `json:"youtubeUrl" form:"youtube_url"`
	YoutubeID  string `json:"youtubeId" form:"youtube_id"`
}
