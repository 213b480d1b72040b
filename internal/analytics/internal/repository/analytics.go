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

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ecodeclub/cpinsight/internal/analytics/internal/domain"
	"github.com/ecodeclub/cpinsight/internal/analytics/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

var ErrUserNotFound = errors.New("用户不存在")
var ErrProblemNotFound = errors.New("题目不存在")

//go:generate mockgen -source=./analytics.go -package=repomocks -destination=mocks/analytics.mock.go AnalyticsRepository
type AnalyticsRepository interface {
	BasicInfo(ctx context.Context, handle string) (domain.BasicInfo, error)
	UserSubmissions(ctx context.Context, handle string) ([]domain.UserSubmission, error)
	TagDistribution(ctx context.Context, handle string) ([]domain.TagCount, error)
	ProblemCountByRating(ctx context.Context, handle string) ([]domain.RatingBucket, error)
	VerdictCounts(ctx context.Context, handle string) (domain.VerdictCounts, error)
	MonthlySolved(ctx context.Context, handle string) ([]domain.MonthlyCount, error)
	LastSubmissions(ctx context.Context, handle string, limit int) ([]domain.RecentSubmission, error)
	UnsolvedProblems(ctx context.Context, handle string) ([]string, error)
	RatingHistory(ctx context.Context, handle string) ([]domain.RatingPoint, error)
	ContestCards(ctx context.Context, handle string) ([]domain.ContestCard, error)
	ContestSummary(ctx context.Context, handle string) (domain.ContestSummary, error)
	AvgSubmissionsPerProblem(ctx context.Context, handle string) (float64, error)
	CommonContests(ctx context.Context, first, second string) ([]domain.CommonContest, error)

	ProblemAnalysis(ctx context.Context, problemID string) (domain.ProblemAnalysis, error)

	RecentSolved(ctx context.Context, handle string, limit int) ([]domain.SolvedProblem, error)
	CandidateProblems(ctx context.Context, f domain.CandidateFilter) ([]domain.RecommendedProblem, error)

	ContestBalanceStats(ctx context.Context) ([]domain.BalanceStats, error)
	UpdateContestBalance(ctx context.Context, contestID int64, balanced bool) error
}

type analyticsRepository struct {
	dao dao.AnalyticsDAO
}

func NewAnalyticsRepository(d dao.AnalyticsDAO) AnalyticsRepository {
	return &analyticsRepository{dao: d}
}

func (r *analyticsRepository) BasicInfo(ctx context.Context, handle string) (domain.BasicInfo, error) {
	row, err := r.dao.UserByHandle(ctx, handle)
	if errors.Is(err, dao.ErrDataNotFound) {
		return domain.BasicInfo{}, ErrUserNotFound
	}
	if err != nil {
		return domain.BasicInfo{}, err
	}
	total, err := r.dao.TotalSubmissions(ctx, handle)
	if err != nil {
		return domain.BasicInfo{}, err
	}
	return domain.BasicInfo{
		Handle:           row.Handle,
		Email:            row.Email,
		Rating:           row.Rating,
		MaxRating:        row.MaxRating,
		Country:          row.Country,
		University:       row.University,
		ProblemCount:     row.ProblemCount,
		RatingTitle:      row.RatingTitle,
		TotalSubmissions: total,
	}, nil
}

func (r *analyticsRepository) UserSubmissions(ctx context.Context, handle string) ([]domain.UserSubmission, error) {
	rows, err := r.dao.UserSubmissions(ctx, handle)
	if err != nil {
		return nil, err
	}
	return slice.Map(rows, func(_ int, src dao.SubmissionRow) domain.UserSubmission {
		return domain.UserSubmission{
			ProblemID: src.ProblemId,
			Verdict:   src.Verdict,
			Rating:    src.Rating,
		}
	}), nil
}

func (r *analyticsRepository) TagDistribution(ctx context.Context, handle string) ([]domain.TagCount, error) {
	rows, err := r.dao.TagDistribution(ctx, handle)
	if err != nil {
		return nil, err
	}
	return slice.Map(rows, func(_ int, src dao.TagRow) domain.TagCount {
		return domain.TagCount{Tag: src.TagName, Count: src.ProblemCount}
	}), nil
}

func (r *analyticsRepository) ProblemCountByRating(ctx context.Context, handle string) ([]domain.RatingBucket, error) {
	rows, err := r.dao.ProblemCountByRating(ctx, handle)
	if err != nil {
		return nil, err
	}
	return slice.Map(rows, func(_ int, src dao.RatingRow) domain.RatingBucket {
		return domain.RatingBucket{Rating: src.DiffRating, Count: src.SolvedCount}
	}), nil
}

func (r *analyticsRepository) VerdictCounts(ctx context.Context, handle string) (domain.VerdictCounts, error) {
	rows, err := r.dao.CountByVerdict(ctx, handle)
	if err != nil {
		return domain.VerdictCounts{}, err
	}
	var res domain.VerdictCounts
	for _, row := range rows {
		switch row.Verdict {
		case "Accepted":
			res.Accepted = row.Cnt
		case "Wrong Answer", "WRONG_ANSWER":
			res.WrongAnswer = row.Cnt
		case "Time Limit Exceeded", "TIME_LIMIT_EXCEEDED":
			res.TimeLimitExceeded = row.Cnt
		default:
			res.Others += row.Cnt
		}
	}
	return res, nil
}

func (r *analyticsRepository) MonthlySolved(ctx context.Context, handle string) ([]domain.MonthlyCount, error) {
	rows, err := r.dao.MonthlySolved(ctx, handle)
	if err != nil {
		return nil, err
	}
	return slice.Map(rows, func(_ int, src dao.MonthRow) domain.MonthlyCount {
		return domain.MonthlyCount{Year: src.Year, Month: src.Month, Count: src.ProblemCount}
	}), nil
}

func (r *analyticsRepository) LastSubmissions(ctx context.Context, handle string, limit int) ([]domain.RecentSubmission, error) {
	rows, err := r.dao.LastSubmissions(ctx, handle, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(rows, func(_ int, src dao.RecentRow) domain.RecentSubmission {
		return domain.RecentSubmission{
			ID:           src.Id,
			ProblemID:    src.ProblemId,
			Handle:       src.Handle,
			Verdict:      src.Verdict,
			ExecTimeMs:   src.ExecTimeMs,
			MemoryKB:     src.MemoryKB,
			Language:     src.Language,
			ProblemTitle: src.ProblemTitle,
			DiffRating:   src.DiffRating,
			ContestName:  src.ContestName,
		}
	}), nil
}

func (r *analyticsRepository) UnsolvedProblems(ctx context.Context, handle string) ([]string, error) {
	ids, err := r.dao.UnsolvedProblems(ctx, handle)
	if err != nil {
		return nil, err
	}
	// Pluck 没扫到行会留下 nil，导出成 JSON 就成了 null
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (r *analyticsRepository) RatingHistory(ctx context.Context, handle string) ([]domain.RatingPoint, error) {
	rows, err := r.dao.RatingHistory(ctx, handle)
	if err != nil {
		return nil, err
	}
	// 按 (日期, 比赛名) 去重，保留时间序
	type key struct {
		t    int64
		name string
	}
	seen := make(map[key]struct{}, len(rows))
	res := make([]domain.RatingPoint, 0, len(rows))
	for _, row := range rows {
		k := key{t: row.StartTime, name: row.ContestName}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		res = append(res, domain.RatingPoint{
			ContestDate:  time.UnixMilli(row.StartTime),
			ContestName:  row.ContestName,
			RatingChange: row.RatingChange,
			FinalRating:  row.FinalRating,
		})
	}
	return res, nil
}

func (r *analyticsRepository) ContestCards(ctx context.Context, handle string) ([]domain.ContestCard, error) {
	rows, err := r.dao.ContestCards(ctx, handle)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(rows))
	res := make([]domain.ContestCard, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.ContestName]; ok {
			continue
		}
		seen[row.ContestName] = struct{}{}
		res = append(res, domain.ContestCard{
			ContestName:    row.ContestName,
			Rank:           row.ContestRank,
			RatingChange:   row.RatingChange,
			Penalty:        row.Penalty,
			ProblemsSolved: row.ProblemsSolved,
		})
	}
	return res, nil
}

func (r *analyticsRepository) ContestSummary(ctx context.Context, handle string) (domain.ContestSummary, error) {
	row, err := r.dao.ContestSummary(ctx, handle)
	if err != nil {
		return domain.ContestSummary{}, err
	}
	return domain.ContestSummary{
		ContestCount:      row.ContestCount,
		BestRank:          int(row.BestRank.Int64),
		BestRankContestID: row.BestRankContestId.Int64,
		WorstRank:         int(row.WorstRank.Int64),
		WorstRankContest:  row.WorstRankContest.Int64,
	}, nil
}

func (r *analyticsRepository) AvgSubmissionsPerProblem(ctx context.Context, handle string) (float64, error) {
	avg, err := r.dao.AvgSubmissionsPerProblem(ctx, handle)
	if err != nil {
		return 0, err
	}
	return domain.Round2(avg), nil
}

func (r *analyticsRepository) CommonContests(ctx context.Context, first, second string) ([]domain.CommonContest, error) {
	rows, err := r.dao.CommonContests(ctx, first, second)
	if err != nil {
		return nil, err
	}
	return slice.Map(rows, func(_ int, src dao.CommonContestRow) domain.CommonContest {
		return domain.CommonContest{
			ContestID:   src.ContestId,
			ContestName: src.ContestName,
			FirstRank:   src.FirstRank,
			SecondRank:  src.SecondRank,
		}
	}), nil
}

func (r *analyticsRepository) ProblemAnalysis(ctx context.Context, problemID string) (domain.ProblemAnalysis, error) {
	rating, err := r.dao.ProblemRating(ctx, problemID)
	if errors.Is(err, dao.ErrDataNotFound) {
		return domain.ProblemAnalysis{}, ErrProblemNotFound
	}
	if err != nil {
		return domain.ProblemAnalysis{}, err
	}
	res := domain.ProblemAnalysis{
		ProblemID:    problemID,
		ActualRating: rating,
	}
	rate, err := r.dao.AcceptanceRate(ctx, problemID)
	if err != nil {
		return res, err
	}
	res.AcceptanceRate = domain.Round2(rate)

	hist, err := r.dao.VerdictHistogram(ctx, problemID)
	if err != nil {
		return res, err
	}
	res.CommonErrors = slice.Map(hist, func(_ int, src dao.VerdictRow) domain.VerdictCount {
		return domain.VerdictCount{Verdict: src.Verdict, Count: src.Cnt}
	})

	perception, err := r.dao.DifficultyPerception(ctx, problemID)
	if err != nil {
		return res, err
	}
	if perception.AvgRating.Valid {
		avg := perception.AvgRating.Float64
		res.Perception = domain.DifficultyPerception{
			AvgSolverRating: &avg,
			SolvedCount:     perception.SolvedCount,
		}
	}

	res.UniqueUsers, err = r.dao.UniqueAttempters(ctx, problemID)
	if err != nil {
		return res, err
	}

	titles, err := r.dao.SolversByTitle(ctx, problemID)
	if err != nil {
		return res, err
	}
	res.SolversByTitle = slice.Map(titles, func(_ int, src dao.TitleRow) domain.TitleCount {
		return domain.TitleCount{RatingTitle: src.RatingTitle, UserCount: src.UserCount}
	})

	avgSubs, err := r.dao.AvgSubmissionsToSolve(ctx, problemID)
	if err != nil {
		return res, err
	}
	res.AvgSubsToSolve = domain.Round2(avgSubs)
	return res, nil
}

func (r *analyticsRepository) RecentSolved(ctx context.Context, handle string, limit int) ([]domain.SolvedProblem, error) {
	rows, err := r.dao.RecentSolved(ctx, handle, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(rows, func(_ int, src dao.SolvedProblemRow) domain.SolvedProblem {
		return domain.SolvedProblem{
			ProblemID:  src.ProblemId,
			DiffRating: src.DiffRating,
			TagID:      src.TagId,
		}
	}), nil
}

func (r *analyticsRepository) CandidateProblems(ctx context.Context, f domain.CandidateFilter) ([]domain.RecommendedProblem, error) {
	rows, err := r.dao.CandidateProblems(ctx, dao.CandidateQuery{
		Handle:    f.Handle,
		MinRating: f.MinRating,
		MaxRating: f.MaxRating,
		TagIds:    f.TagIDs,
	})
	if err != nil {
		return nil, err
	}
	return slice.Map(rows, func(_ int, src dao.CandidateRow) domain.RecommendedProblem {
		return domain.RecommendedProblem{
			ProblemID:  src.ProblemId,
			Title:      src.Title,
			DiffRating: src.DiffRating,
		}
	}), nil
}

func (r *analyticsRepository) ContestBalanceStats(ctx context.Context) ([]domain.BalanceStats, error) {
	rows, err := r.dao.ContestBalanceStats(ctx)
	if err != nil {
		return nil, err
	}
	return slice.Map(rows, func(_ int, src dao.BalanceRow) domain.BalanceStats {
		return domain.BalanceStats{
			ContestID:  src.ContestId,
			Stddev:     src.Stddev.Float64,
			TagVariety: src.TagVariety,
		}
	}), nil
}

func (r *analyticsRepository) UpdateContestBalance(ctx context.Context, contestID int64, balanced bool) error {
	return r.dao.UpdateContestBalance(ctx, contestID, balanced)
}
