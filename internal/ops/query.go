package ops

// SearchQuery is one of DirectReference, ChapterRequest or FreeText.
type SearchQuery interface {
	searchQuery()
}

// DirectReference asks for the preview of an already-resolved chapter.
type DirectReference struct {
	Book    string
	Chapter int
}

// ChapterRequest asks for a whole chapter, unsliced.
type ChapterRequest struct {
	Book    string
	Chapter int
}

// FreeText is a user query. The filters restrict topic and text results only.
type FreeText struct {
	Query          string
	BookFilter     string
	CategoryFilter string
}

func (DirectReference) searchQuery() {}
func (ChapterRequest) searchQuery()  {}
func (FreeText) searchQuery()        {}
