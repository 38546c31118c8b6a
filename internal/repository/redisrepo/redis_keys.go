package redisrepo

import "fmt"

const (
	COMMENT_KEY = "comment:%d:%d"   // <siteID>:<commentID>
	STREAM_KEY  = "stream:%d:%s:%d" // <siteID>:<streamableType>:<streamableID>
)

func CommentKey(siteID int64, commentID int64) string {
	return fmt.Sprintf(COMMENT_KEY, siteID, commentID)
}

func StreamKey(siteID int64, streamableType string, streamableID int64) string {
	return fmt.Sprintf(STREAM_KEY, siteID, streamableType, streamableID)
}
