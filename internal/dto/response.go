package dto

import (
	"time"

	"github.com/BloggingApp/community-service/internal/model"
)

type BasicResponse struct {
	Ok        bool      `json:"ok"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBasicResponse(ok bool, details string) BasicResponse {
	return BasicResponse{
		Ok:        ok,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// StreamResponse lists the stream items attached to one streamable.
type StreamResponse struct {
	StreamableType string              `json:"streamable_type"`
	StreamableID   int64               `json:"streamable_id"`
	Items          []*model.StreamItem `json:"items"`
}

func NewStreamResponse(target model.StreamTarget, items []*model.StreamItem) StreamResponse {
	if items == nil {
		items = []*model.StreamItem{}
	}
	return StreamResponse{
		StreamableType: target.Type,
		StreamableID:   target.ID,
		Items:          items,
	}
}
