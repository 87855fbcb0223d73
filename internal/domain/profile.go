package domain

import "context"

// ProfileSummary holds the general account information scraped from a
// user's public practice page. Absent upstream fields keep their zero
// value, except LongestStreak which upstream placeholders as "00".
type ProfileSummary struct {
	UserName            string `json:"userName"`
	FullName            string `json:"fullName"`
	ProfilePicture      string `json:"profilePicture"`
	Institute           string `json:"institute"`
	InstituteRank       string `json:"instituteRank"`
	LongestStreak       string `json:"longestStreak"`
	CodingScore         int    `json:"codingScore"`
	MonthlyScore        int    `json:"monthlyScore"`
	CurrentRating       int    `json:"currentRating"`
	UserGlobalRank      int    `json:"userGlobalRank"`
	Level               int    `json:"level"`
	TotalProblemsSolved int    `json:"totalProblemsSolved"`
}

// QuestionRef is a single solved problem: its display name plus a link
// to the practice page.
type QuestionRef struct {
	Question    string `json:"question"`
	QuestionURL string `json:"questionUrl"`
}

// DifficultyStats groups the solved problems of one difficulty bucket.
type DifficultyStats struct {
	Count     int           `json:"count"`
	Questions []QuestionRef `json:"questions"`
}

// SolvedStats maps a lowercased difficulty label ("easy", "medium", ...)
// to the problems solved at that difficulty. Problems keep the order the
// upstream page lists them in.
type SolvedStats map[string]DifficultyStats

// ProfileResult is the full payload served for a profile lookup.
type ProfileResult struct {
	Info        ProfileSummary `json:"info"`
	SolvedStats SolvedStats    `json:"solvedStats"`
}

type ProfileUsecase interface {
	Fetch(ctx context.Context, username string) (*ProfileResult, error)
}
