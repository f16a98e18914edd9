package models

// VoiceAttemptResult scores a reading-practice recording against the passage
// the learner was asked to read.
type VoiceAttemptResult struct {
	PassageID  string  `json:"passageId"`
	Transcript string  `json:"transcript"`
	WordsRead  int     `json:"wordsRead"`
	WordsTotal int     `json:"wordsTotal"`
	Accuracy   float64 `json:"accuracy"` // 0..1 matched words over passage words
	XPAwarded  int64   `json:"xpAwarded"`
}

// VoicePassage is a short text learners read aloud.
type VoicePassage struct {
	ID       string `bson:"id" json:"id"`
	Title    string `bson:"title" json:"title"`
	Text     string `bson:"text" json:"text"`
	MinLevel int    `bson:"minLevel" json:"minLevel"`
	Active   bool   `bson:"active" json:"active"`
}
