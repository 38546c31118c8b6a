package model

import "time"

type Comment struct {
	ID        int64     `json:"id"`
	SiteID    int64     `json:"site_id"`
	PersonID  int64     `json:"person_id"`
	Text      string    `json:"text"`
	Parent    Parent    `json:"parent"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Comment) Summary() CommentSummary {
	return CommentSummary{
		ID:        c.ID,
		PersonID:  c.PersonID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

type FullComment struct {
	Comment Comment      `json:"comment"`
	Author  PersonAuthor `json:"author"`
	Name    string       `json:"name"`
}

// CommentName builds the display label of a comment from its parent's name.
func CommentName(parentName string, ok bool) string {
	if !ok {
		return "Comment on ?"
	}
	return "Comment on " + parentName
}
