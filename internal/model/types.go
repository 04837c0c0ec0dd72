package model

import "time"

// ApiQuota is the per-user request allowance. SecretKey doubles as the
// bearer credential used to resolve the owning user.
type ApiQuota struct {
	UserID       string `json:"userId"`
	SecretKey    string `json:"secretKey"`
	RequestsUsed int    `json:"requestsUsed"`
	MaxRequests  int    `json:"maxRequests"`
}

// Remaining returns how many requests the user can still make this period.
func (q *ApiQuota) Remaining() int {
	if q.MaxRequests < q.RequestsUsed {
		return 0
	}
	return q.MaxRequests - q.RequestsUsed
}

// VideoFile links an uploaded blob to its owner. Key is both the record
// identifier and the blob-store address. Analyzed flips false -> true
// exactly once, when an inference call succeeds.
type VideoFile struct {
	Key          string    `json:"key"`
	UserID       string    `json:"userId"`
	Analyzed     bool      `json:"analyzed"`
	CreationTime time.Time `json:"creationTime"`
}

// Score is a single (label, confidence) pair produced by the model.
type Score struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Utterance is one analyzed speech segment.
type Utterance struct {
	StartTime  float64 `json:"start_time"`
	EndTime    float64 `json:"end_time"`
	Text       string  `json:"text"`
	Emotions   []Score `json:"emotions"`
	Sentiments []Score `json:"sentiments"`
}

// Analysis is the normalized inference result. It is owned by the
// request/response cycle and never persisted.
type Analysis struct {
	Utterances []Utterance `json:"utterances"`
}

// UploadTicket is returned by the upload-url endpoint: a server-minted
// identifier plus the blob key the client must upload against.
type UploadTicket struct {
	FileID       string `json:"fileId"`
	Key          string `json:"key"`
	FileType     string `json:"fileType"`
	UploadMethod string `json:"uploadMethod"`
}
