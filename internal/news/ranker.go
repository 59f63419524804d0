package news

import "context"

// Ranker is the interface for the model ranking backend.
type Ranker interface {
	Rank(ctx context.Context, req *RankRequest) (*RankResponse, error)
}

// RankRequest carries the candidate articles for one ranking call.
type RankRequest struct {
	// Instrument is optional context, e.g. "Gold (XAU/USD)".
	Instrument string
	Candidates []RankCandidate
}

// RankCandidate is one article as presented to the model, identified by
// its index in the request.
type RankCandidate struct {
	Index       int
	Title       string
	Description string
	Source      string
	PublishedAt string
}

// RankResponse is the model's structured ranking output.
type RankResponse struct {
	Model  string
	Scores []RankScore
}

// RankScore is the model's judgement for one candidate.
type RankScore struct {
	Index  int     `json:"index"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}
