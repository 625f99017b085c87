package msgstore

// missingText is used when neither the text column nor the attributedBody
// blob yields any content.
const missingText = "[message content not available]"

// MessageRecord is one message as returned by the list operations.
// Timestamp is UTC at second precision, or "" when the archive never
// recorded a date.
type MessageRecord struct {
	Text      string `json:"text"`
	Timestamp string `json:"date"`
	IsFromMe  bool   `json:"is_from_me"`
	Handle    string `json:"handle"`
	IsGroup   bool   `json:"is_group"`
	GroupID   string `json:"group_id,omitempty"`
}

// CorrespondentCount pairs an address with its message count.
type CorrespondentCount struct {
	Address string `json:"address"`
	Count   int    `json:"count"`
}

// ConversationStats aggregates message activity over a window of days.
// Each field is computed by its own query; a field keeps its zero value
// when its query fails, so partial results are still usable.
type ConversationStats struct {
	TotalMessages     int                  `json:"total_messages"`
	SentCount         int                  `json:"sent_count"`
	ReceivedCount     int                  `json:"received_count"`
	AvgDailyMessages  float64              `json:"avg_daily_messages"`
	BusiestHour       *int                 `json:"busiest_hour"`
	BusiestDay        string               `json:"busiest_day,omitempty"`
	AttachmentCount   int                  `json:"attachment_count"`
	ReactionCount     int                  `json:"reaction_count"`
	TopCorrespondents []CorrespondentCount `json:"top_correspondents,omitempty"`
}

// FollowUpItem is a conversation flagged as needing attention.
// Reason is one of ReasonStale or ReasonUnanswered.
type FollowUpItem struct {
	Phone  string `json:"phone"`
	Text   string `json:"text"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// Follow-up reasons.
const (
	ReasonStale      = "stale_conversation"
	ReasonUnanswered = "unanswered_question"
)
