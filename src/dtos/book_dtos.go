package dtos

// BookRequestDTO is the payload for creating or updating a book. Creating a
// book whose (title, author) already exists merges copies into the existing
// record instead.
type BookRequestDTO struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author" binding:"required"`
	Category    string `json:"category" binding:"required"`
	TotalCopies int    `json:"totalCopies" binding:"required,min=1"`
}

// BookImportResult summarizes a bulk import from a spreadsheet.
type BookImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}
