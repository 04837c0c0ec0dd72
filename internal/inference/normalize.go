package inference

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/wreckster1507/sentiment-analysis/internal/model"
)

// The model server returns one of two shapes:
//
//  1. an utterances array already matching the Analysis shape, or
//  2. a whole-video summary: emotion/sentiment objects carrying a
//     prediction label and a probabilities map.
//
// Normalize resolves the union by the presence of the utterances field
// and is total over any well-formed JSON object: missing fields become
// empty slices, never an error.

type rawSummary struct {
	Prediction    string             `json:"prediction"`
	Probabilities map[string]float64 `json:"probabilities"`
}

type rawUtterance struct {
	StartTime  float64       `json:"start_time"`
	EndTime    float64       `json:"end_time"`
	Text       string        `json:"text"`
	Emotions   []model.Score `json:"emotions"`
	Sentiments []model.Score `json:"sentiments"`
}

type rawResponse struct {
	Utterances []rawUtterance `json:"utterances"`
	Emotion    *rawSummary    `json:"emotion"`
	Sentiment  *rawSummary    `json:"sentiment"`
}

// Normalize converts a raw predict response body into an Analysis.
func Normalize(body []byte) (*model.Analysis, error) {
	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode predict response: %w", err)
	}

	if raw.Utterances != nil {
		out := &model.Analysis{Utterances: make([]model.Utterance, 0, len(raw.Utterances))}
		for _, u := range raw.Utterances {
			out.Utterances = append(out.Utterances, model.Utterance{
				StartTime:  u.StartTime,
				EndTime:    u.EndTime,
				Text:       u.Text,
				Emotions:   ensureScores(u.Emotions),
				Sentiments: ensureScores(u.Sentiments),
			})
		}
		return out, nil
	}

	if raw.Emotion == nil && raw.Sentiment == nil {
		return &model.Analysis{Utterances: []model.Utterance{}}, nil
	}

	// Summary shape: synthesize a single whole-video utterance.
	u := model.Utterance{
		Text: fmt.Sprintf("Overall video analysis - Primary emotion: %s, Primary sentiment: %s",
			predictionOrUnknown(raw.Emotion), predictionOrUnknown(raw.Sentiment)),
		Emotions:   scoresFromProbabilities(raw.Emotion),
		Sentiments: scoresFromProbabilities(raw.Sentiment),
	}
	return &model.Analysis{Utterances: []model.Utterance{u}}, nil
}

func predictionOrUnknown(s *rawSummary) string {
	if s == nil || s.Prediction == "" {
		return "unknown"
	}
	return s.Prediction
}

// scoresFromProbabilities orders the label->confidence map by descending
// confidence (label ascending on ties) so output is deterministic.
func scoresFromProbabilities(s *rawSummary) []model.Score {
	if s == nil || len(s.Probabilities) == 0 {
		return []model.Score{}
	}
	out := make([]model.Score, 0, len(s.Probabilities))
	for label, conf := range s.Probabilities {
		out = append(out, model.Score{Label: label, Confidence: conf})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func ensureScores(s []model.Score) []model.Score {
	if s == nil {
		return []model.Score{}
	}
	return s
}
