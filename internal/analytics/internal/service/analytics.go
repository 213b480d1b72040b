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

package service

import (
	"context"

	"github.com/ecodeclub/cpinsight/internal/analytics/internal/domain"
	"github.com/ecodeclub/cpinsight/internal/analytics/internal/repository"
	"github.com/ecodeclub/cpinsight/internal/analytics/internal/repository/cache"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

// recentSolvedLimit 推荐只看最近过的这些题
const recentSolvedLimit = 10

//go:generate mockgen -source=./analytics.go -package=svcmocks -destination=mocks/analytics.mock.go Service
type Service interface {
	// UserReport 一个用户的全量分析，优先走缓存
	UserReport(ctx context.Context, handle string) (domain.UserReport, error)
	// RefreshUserReport 同步之后重算并回填缓存
	RefreshUserReport(ctx context.Context, handle string) (domain.UserReport, error)
	ProblemAnalysis(ctx context.Context, problemID string) (domain.ProblemAnalysis, error)
	Recommendations(ctx context.Context, handle string) ([]domain.RecommendedProblem, error)
	Compare(ctx context.Context, first, second string) (domain.Comparison, error)
	// LabelContests 全量扫一遍比赛，落均衡标注
	LabelContests(ctx context.Context) (int, error)
}

type service struct {
	repo  repository.AnalyticsRepository
	cache cache.ReportCache
	// ratingWindow 推荐候选的难度带半径
	ratingWindow int
	logger       *elog.Component
}

func NewService(repo repository.AnalyticsRepository,
	c cache.ReportCache,
	ratingWindow int) Service {
	return &service{
		repo:         repo,
		cache:        c,
		ratingWindow: ratingWindow,
		logger:       elog.DefaultLogger,
	}
}

func (s *service) UserReport(ctx context.Context, handle string) (domain.UserReport, error) {
	report, err := s.cache.Get(ctx, handle)
	if err == nil {
		return report, nil
	}
	return s.RefreshUserReport(ctx, handle)
}

func (s *service) RefreshUserReport(ctx context.Context, handle string) (domain.UserReport, error) {
	report, err := s.buildReport(ctx, handle)
	if err != nil {
		return domain.UserReport{}, err
	}
	if err = s.cache.Set(ctx, report); err != nil {
		s.logger.Warn("回填报表缓存失败",
			elog.String("handle", handle),
			elog.FieldErr(err))
	}
	return report, nil
}

func (s *service) buildReport(ctx context.Context, handle string) (domain.UserReport, error) {
	var report domain.UserReport
	info, err := s.repo.BasicInfo(ctx, handle)
	if err != nil {
		return domain.UserReport{}, err
	}
	report.BasicInfo = info

	subs, err := s.repo.UserSubmissions(ctx, handle)
	if err != nil {
		return domain.UserReport{}, err
	}
	report.SolvedStats = domain.ComputeSolvedStats(subs)

	if report.Tags, err = s.repo.TagDistribution(ctx, handle); err != nil {
		return domain.UserReport{}, err
	}
	if report.ByRating, err = s.repo.ProblemCountByRating(ctx, handle); err != nil {
		return domain.UserReport{}, err
	}
	if report.ByVerdict, err = s.repo.VerdictCounts(ctx, handle); err != nil {
		return domain.UserReport{}, err
	}
	if report.Monthly, err = s.repo.MonthlySolved(ctx, handle); err != nil {
		return domain.UserReport{}, err
	}
	if report.Recent, err = s.repo.LastSubmissions(ctx, handle, 10); err != nil {
		return domain.UserReport{}, err
	}
	if report.Unsolved, err = s.repo.UnsolvedProblems(ctx, handle); err != nil {
		return domain.UserReport{}, err
	}
	if report.RatingHistory, err = s.repo.RatingHistory(ctx, handle); err != nil {
		return domain.UserReport{}, err
	}
	if report.ContestCards, err = s.repo.ContestCards(ctx, handle); err != nil {
		return domain.UserReport{}, err
	}
	if report.ContestStats, err = s.repo.ContestSummary(ctx, handle); err != nil {
		return domain.UserReport{}, err
	}
	return report, nil
}

func (s *service) ProblemAnalysis(ctx context.Context, problemID string) (domain.ProblemAnalysis, error) {
	return s.repo.ProblemAnalysis(ctx, problemID)
}

func (s *service) Recommendations(ctx context.Context, handle string) ([]domain.RecommendedProblem, error) {
	solved, err := s.repo.RecentSolved(ctx, handle, recentSolvedLimit)
	if err != nil {
		return nil, err
	}
	if len(solved) == 0 {
		return []domain.RecommendedProblem{}, nil
	}

	var sum int
	tagSet := make(map[int64]struct{})
	for _, p := range solved {
		sum += p.DiffRating
		tagSet[p.TagID] = struct{}{}
	}
	base := sum / len(solved)
	tagIDs := make([]int64, 0, len(tagSet))
	for id := range tagSet {
		tagIDs = append(tagIDs, id)
	}

	return s.repo.CandidateProblems(ctx, domain.CandidateFilter{
		Handle:    handle,
		MinRating: base - s.ratingWindow,
		MaxRating: base + s.ratingWindow,
		TagIDs:    tagIDs,
	})
}

func (s *service) Compare(ctx context.Context, first, second string) (domain.Comparison, error) {
	var (
		eg         errgroup.Group
		res        domain.Comparison
		firstTags  []domain.TagCount
		secondTags []domain.TagCount
	)
	eg.Go(func() error {
		var err error
		res.First, err = s.snapshot(ctx, first)
		return err
	})
	eg.Go(func() error {
		var err error
		res.Second, err = s.snapshot(ctx, second)
		return err
	})
	eg.Go(func() error {
		var err error
		res.CommonContests, err = s.repo.CommonContests(ctx, first, second)
		return err
	})
	eg.Go(func() error {
		var err error
		firstTags, err = s.repo.TagDistribution(ctx, first)
		return err
	})
	eg.Go(func() error {
		var err error
		secondTags, err = s.repo.TagDistribution(ctx, second)
		return err
	})
	if err := eg.Wait(); err != nil {
		return domain.Comparison{}, err
	}
	res.Tags = map[string][]domain.TagCount{
		first:  firstTags,
		second: secondTags,
	}
	return res, nil
}

func (s *service) snapshot(ctx context.Context, handle string) (domain.UserSnapshot, error) {
	info, err := s.repo.BasicInfo(ctx, handle)
	if err != nil {
		return domain.UserSnapshot{}, err
	}
	summary, err := s.repo.ContestSummary(ctx, handle)
	if err != nil {
		return domain.UserSnapshot{}, err
	}
	avg, err := s.repo.AvgSubmissionsPerProblem(ctx, handle)
	if err != nil {
		return domain.UserSnapshot{}, err
	}
	return domain.UserSnapshot{
		Handle:        info.Handle,
		Rating:        info.Rating,
		MaxRating:     info.MaxRating,
		ProblemCount:  info.ProblemCount,
		TotalContests: summary.ContestCount,
		AvgSubsPerPrb: avg,
	}, nil
}

func (s *service) LabelContests(ctx context.Context) (int, error) {
	stats, err := s.repo.ContestBalanceStats(ctx)
	if err != nil {
		return 0, err
	}
	var updated int
	for _, st := range stats {
		if err := s.repo.UpdateContestBalance(ctx, st.ContestID, st.IsBalanced()); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}
