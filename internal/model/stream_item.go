package model

import (
	"encoding/json"
	"time"
)

const StreamableAlbum = "Album"

type StreamItem struct {
	ID             int64         `json:"id"`
	SiteID         int64         `json:"site_id"`
	PersonID       *int64        `json:"person_id"`
	StreamableType string        `json:"streamable_type"`
	StreamableID   int64         `json:"streamable_id"`
	Context        StreamContext `json:"context"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type CommentSummary struct {
	ID        int64     `json:"id"`
	PersonID  int64     `json:"person_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// StreamTarget identifies the stream items a parent's comments are copied to.
type StreamTarget struct {
	Type string
	ID   int64
}

// TargetFor maps a parent to its stream target. Pictures are streamed as part
// of their album, so albumID is only read for picture parents.
func TargetFor(parent Parent, albumID int64) StreamTarget {
	if parent.Kind == ParentPicture {
		return StreamTarget{Type: StreamableAlbum, ID: albumID}
	}
	return StreamTarget{Type: string(parent.Kind), ID: parent.ID}
}

// StreamContext is the cached payload of a stream item. Keys other than
// picture_ids and comments are kept in Extra and written back unchanged.
type StreamContext struct {
	PictureIDs []int64
	Comments   []CommentSummary
	Extra      map[string]json.RawMessage
}

func (c StreamContext) HasPicture(id int64) bool {
	for _, pictureID := range c.PictureIDs {
		if pictureID == id {
			return true
		}
	}
	return false
}

// WithComment returns a copy of c with summary appended to its comments.
func (c StreamContext) WithComment(summary CommentSummary) StreamContext {
	comments := make([]CommentSummary, 0, len(c.Comments)+1)
	comments = append(comments, c.Comments...)
	c.Comments = append(comments, summary)
	return c
}

// WithoutComment returns a copy of c with every summary of commentID removed.
// The result always carries a non-nil comments list.
func (c StreamContext) WithoutComment(commentID int64) StreamContext {
	comments := make([]CommentSummary, 0, len(c.Comments))
	for _, summary := range c.Comments {
		if summary.ID != commentID {
			comments = append(comments, summary)
		}
	}
	c.Comments = comments
	return c
}

func (c StreamContext) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+2)
	for k, v := range c.Extra {
		out[k] = v
	}
	if c.PictureIDs != nil {
		out["picture_ids"] = c.PictureIDs
	}
	if c.Comments != nil {
		out["comments"] = c.Comments
	}
	return json.Marshal(out)
}

func (c *StreamContext) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = StreamContext{}
	if v, ok := raw["picture_ids"]; ok {
		if err := json.Unmarshal(v, &c.PictureIDs); err != nil {
			return err
		}
		delete(raw, "picture_ids")
	}
	if v, ok := raw["comments"]; ok {
		if err := json.Unmarshal(v, &c.Comments); err != nil {
			return err
		}
		delete(raw, "comments")
	}
	if len(raw) > 0 {
		c.Extra = raw
	}

	return nil
}
