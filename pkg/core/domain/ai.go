package domain

// ListingTagCount is the number of tags Etsy allows on a listing
const ListingTagCount = 13

type KeywordIdeas struct {
	RelatedKeywords []string `json:"relatedKeywords"`
}

type ListingDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type TagSuggestions struct {
	Tags []string `json:"tags"`
}

type NicheIdea struct {
	Niche       string   `json:"niche"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

type NicheIdeas struct {
	Niches []NicheIdea `json:"niches"`
}

type ListingSummary struct {
	Summary string `json:"summary"`
}

// GeneratedImage carries the image as a data URI (data:image/png;base64,...)
type GeneratedImage struct {
	ImageURL string `json:"imageUrl"`
}
