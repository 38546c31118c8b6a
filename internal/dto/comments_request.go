package dto

type CreateCommentDto struct {
	Text      string `json:"text" binding:"required"`
	VerseID   *int64 `json:"verse_id"`
	RecipeID  *int64 `json:"recipe_id"`
	NoteID    *int64 `json:"note_id"`
	PictureID *int64 `json:"picture_id"`
}

// ParentCount reports how many parent foreign keys are set.
func (d CreateCommentDto) ParentCount() int {
	n := 0
	for _, id := range []*int64{d.VerseID, d.RecipeID, d.NoteID, d.PictureID} {
		if id != nil {
			n++
		}
	}
	return n
}

type EditCommentDto struct {
	Text string `json:"text" binding:"required"`
}
