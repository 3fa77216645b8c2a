package trackapi

// Track is a learning track as returned by the REST API.
type Track struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	AuthorID      string  `json:"authorId"`
	Thumbnail     *string `json:"thumbnail"`
	Length        *int32  `json:"length"` // Duration in seconds
	ModulesCount  *int32  `json:"modulesCount"`
	Description   *string `json:"description"`
	NumberOfViews *int32  `json:"numberOfViews"`
}

// Author is the creator of a track.
type Author struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Photo *string `json:"photo"`
}

// Module is a single lesson within a track.
type Module struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Length   *int32  `json:"length"`
	Content  *string `json:"content"`
	VideoURL *string `json:"videoUrl"`
}
