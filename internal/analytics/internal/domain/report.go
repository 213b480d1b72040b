// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package domain

import "time"

// BasicInfo 用户基础信息加总提交数
type BasicInfo struct {
	Handle           string `json:"username"`
	Email            string `json:"email,omitempty"`
	Rating           int    `json:"rating"`
	MaxRating        int    `json:"max_rating"`
	Country          string `json:"country,omitempty"`
	University       string `json:"university,omitempty"`
	ProblemCount     int    `json:"problem_count"`
	RatingTitle      string `json:"rating_title"`
	TotalSubmissions int64  `json:"total_submissions"`
}

// SolvedStats 过题画像。没有任何过题时全部字段都是零值
type SolvedStats struct {
	ProblemCount int `json:"problem_count"`
	// AvgRating 按通过的提交算均值，同一道题过两次就计两次
	AvgRating     float64 `json:"average_rating"`
	HighestRating int     `json:"highest_rating"`
	// FirstAttemptPct 一发入魂的题占过题数的百分比
	FirstAttemptPct float64 `json:"first_attempt_percentage"`
}

type TagCount struct {
	Tag string `json:"tag_name"`
	// Count 该标签下通过的不同题目数
	Count int64 `json:"problem_count"`
}

type RatingBucket struct {
	Rating int   `json:"diff_rating"`
	Count  int64 `json:"solved_count"`
}

// VerdictCounts 按题去重后的四类测评结果分布
type VerdictCounts struct {
	Accepted          int64 `json:"Accepted"`
	WrongAnswer       int64 `json:"Wrong Answer"`
	TimeLimitExceeded int64 `json:"Time Limit Exceeded"`
	Others            int64 `json:"Others"`
}

type MonthlyCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"problem_count"`
}

type RecentSubmission struct {
	ID           int64  `json:"submission_id"`
	ProblemID    string `json:"problem_id"`
	Handle       string `json:"username"`
	Verdict      string `json:"verdict"`
	ExecTimeMs   int    `json:"execution_time"`
	MemoryKB     int64  `json:"memory_used"`
	Language     string `json:"language_used"`
	ProblemTitle string `json:"problem_title"`
	DiffRating   int    `json:"diff_rating"`
	ContestName  string `json:"contest_name"`
}

type RatingPoint struct {
	ContestDate  time.Time `json:"contest_date"`
	ContestName  string    `json:"contest_name"`
	RatingChange int       `json:"rating_change"`
	FinalRating  int       `json:"final_rating"`
}

type ContestCard struct {
	ContestName    string `json:"contest_name"`
	Rank           int    `json:"contest_rank"`
	RatingChange   int    `json:"rating_change"`
	Penalty        int    `json:"penalty"`
	ProblemsSolved int64  `json:"problems_solved"`
}

// ContestSummary 参赛场次和最好最差名次。没打过比赛时场次为 0，名次为零值
type ContestSummary struct {
	ContestCount      int64 `json:"contest_count"`
	BestRank          int   `json:"best_rank"`
	BestRankContestID int64 `json:"best_rank_contest_id"`
	WorstRank         int   `json:"worst_rank"`
	WorstRankContest  int64 `json:"worst_rank_contest_id"`
}

// UserReport 一个用户的全量分析
type UserReport struct {
	BasicInfo     BasicInfo          `json:"basic_info"`
	SolvedStats   SolvedStats        `json:"solved_stats"`
	Tags          []TagCount         `json:"problem_tags_count"`
	ByRating      []RatingBucket     `json:"problem_count_by_rating"`
	ByVerdict     VerdictCounts      `json:"submissions_by_verdict"`
	Monthly       []MonthlyCount     `json:"monthly_problem_count"`
	Recent        []RecentSubmission `json:"last_10_submissions"`
	Unsolved      []string           `json:"unsolved_problems"`
	RatingHistory []RatingPoint      `json:"user_rating_history"`
	ContestCards  []ContestCard      `json:"contest_cards"`
	ContestStats  ContestSummary     `json:"contest_summary"`
}

// VerdictCount 单题维度的测评结果直方图条目
type VerdictCount struct {
	Verdict string `json:"verdict"`
	Count   int64  `json:"error_count"`
}

type TitleCount struct {
	RatingTitle string `json:"rating_title"`
	UserCount   int64  `json:"user_count"`
}

// DifficultyPerception 没有任何通过时 AvgSolverRating 为 nil
type DifficultyPerception struct {
	AvgSolverRating *float64 `json:"average_user_rating"`
	SolvedCount     int64    `json:"successful_submission_count"`
}

// ProblemAnalysis 一道题的全量分析，空数据时各字段取文档约定的零值
type ProblemAnalysis struct {
	ProblemID      string               `json:"problem_id"`
	ActualRating   int                  `json:"actual_rating"`
	AcceptanceRate float64              `json:"acceptance_rate"`
	CommonErrors   []VerdictCount       `json:"common_errors"`
	Perception     DifficultyPerception `json:"difficulty_perception"`
	UniqueUsers    int64                `json:"unique_user_interactions"`
	SolversByTitle []TitleCount         `json:"submissions_by_rating_title"`
	AvgSubsToSolve float64              `json:"average_submissions_to_solve"`
}

// UserSnapshot 对比里单边的用户画像
type UserSnapshot struct {
	Handle        string  `json:"username"`
	Rating        int     `json:"rating"`
	MaxRating     int     `json:"max_rating"`
	ProblemCount  int     `json:"problem_count"`
	TotalContests int64   `json:"total_contests"`
	AvgSubsPerPrb float64 `json:"avg_submissions"`
}

type CommonContest struct {
	ContestID   int64  `json:"contest_id"`
	ContestName string `json:"contest_name"`
	FirstRank   int    `json:"first_rank"`
	SecondRank  int    `json:"second_rank"`
}

// Comparison 两个用户的对比结果
type Comparison struct {
	First          UserSnapshot          `json:"first"`
	Second         UserSnapshot          `json:"second"`
	CommonContests []CommonContest       `json:"common_contests"`
	Tags           map[string][]TagCount `json:"tags_comparison"`
}

// RecommendedProblem 推荐候选：在用户近期过题难度带内、共享标签且还没过的题
type RecommendedProblem struct {
	ProblemID  string `json:"problem_id"`
	Title      string `json:"title"`
	DiffRating int    `json:"diff_rating"`
}
