package model

type ParentKind string

const (
	ParentVerse   ParentKind = "Verse"
	ParentRecipe  ParentKind = "Recipe"
	ParentNote    ParentKind = "Note"
	ParentPicture ParentKind = "Picture"
)

// Parent is the single entity a comment is attached to. The zero value means
// the comment has no parent.
type Parent struct {
	Kind ParentKind `json:"kind"`
	ID   int64      `json:"id"`
}

func (p Parent) IsZero() bool {
	return p.Kind == ""
}

// ResolveParent picks the first non-nil foreign key in verse, recipe, note,
// picture order.
func ResolveParent(verseID, recipeID, noteID, pictureID *int64) Parent {
	switch {
	case verseID != nil:
		return Parent{Kind: ParentVerse, ID: *verseID}
	case recipeID != nil:
		return Parent{Kind: ParentRecipe, ID: *recipeID}
	case noteID != nil:
		return Parent{Kind: ParentNote, ID: *noteID}
	case pictureID != nil:
		return Parent{Kind: ParentPicture, ID: *pictureID}
	}
	return Parent{}
}

// ParentColumns is the column form of a Parent: at most one field is set.
type ParentColumns struct {
	VerseID   *int64
	RecipeID  *int64
	NoteID    *int64
	PictureID *int64
}

func (p Parent) Columns() ParentColumns {
	var cols ParentColumns
	if p.IsZero() {
		return cols
	}
	id := p.ID
	switch p.Kind {
	case ParentVerse:
		cols.VerseID = &id
	case ParentRecipe:
		cols.RecipeID = &id
	case ParentNote:
		cols.NoteID = &id
	case ParentPicture:
		cols.PictureID = &id
	}
	return cols
}
