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
	"database/sql"
	"time"

	"github.com/ecodeclub/cpinsight/internal/ingest/internal/domain"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/repository/dao"
)

type IngestRepository interface {
	// Atomic 一次同步的失败单元：fn 内任何一步出错，整个范围内的写入全部回滚
	Atomic(ctx context.Context, fn func(txRepo IngestRepository) error) error

	SaveUser(ctx context.Context, u domain.User) error
	Watermark(ctx context.Context, handle string) (time.Time, error)
	AdvanceWatermark(ctx context.Context, handle string, t time.Time) error

	SaveContest(ctx context.Context, c domain.Contest) error
	HasContest(ctx context.Context, id int64) (bool, error)
	// SaveProblem 落题目本体和标签关联
	SaveProblem(ctx context.Context, p domain.Problem) error
	SaveSubmission(ctx context.Context, s domain.Submission) error
	SaveUserContest(ctx context.Context, uc domain.UserContest) error

	CreateRun(ctx context.Context, r domain.Run) error
	FinishRun(ctx context.Context, r domain.Run) error
}

type ingestRepository struct {
	dao dao.IngestDAO
}

func NewIngestRepository(d dao.IngestDAO) IngestRepository {
	return &ingestRepository{dao: d}
}

func (r *ingestRepository) Atomic(ctx context.Context, fn func(txRepo IngestRepository) error) error {
	return r.dao.Transaction(ctx, func(txDAO dao.IngestDAO) error {
		return fn(&ingestRepository{dao: txDAO})
	})
}

func (r *ingestRepository) SaveUser(ctx context.Context, u domain.User) error {
	return r.dao.UpsertUser(ctx, dao.User{
		Handle:       u.Handle,
		Email:        u.Email,
		Rating:       u.Rating,
		MaxRating:    u.MaxRating,
		Country:      u.Country,
		University:   u.University,
		RatingTitle:  u.RatingTitle,
		ProblemCount: u.ProblemCount,
	})
}

func (r *ingestRepository) Watermark(ctx context.Context, handle string) (time.Time, error) {
	ms, err := r.dao.Watermark(ctx, handle)
	if err != nil || ms == 0 {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

func (r *ingestRepository) AdvanceWatermark(ctx context.Context, handle string, t time.Time) error {
	return r.dao.AdvanceWatermark(ctx, handle, t.UnixMilli())
}

func (r *ingestRepository) SaveContest(ctx context.Context, c domain.Contest) error {
	entity := dao.Contest{
		Id:              c.ID,
		Name:            c.Name,
		StartTime:       c.StartTime.UnixMilli(),
		EndTime:         c.EndTime.UnixMilli(),
		DurationMinutes: c.DurationMinutes,
		ContestType:     c.Type,
	}
	if c.IsBalanced != nil {
		entity.IsBalanced = sql.NullBool{Bool: *c.IsBalanced, Valid: true}
	}
	return r.dao.UpsertContest(ctx, entity)
}

func (r *ingestRepository) HasContest(ctx context.Context, id int64) (bool, error) {
	return r.dao.HasContest(ctx, id)
}

func (r *ingestRepository) SaveProblem(ctx context.Context, p domain.Problem) error {
	err := r.dao.UpsertProblem(ctx, dao.Problem{
		Id:         p.ID,
		Title:      p.Title,
		ContestId:  p.ContestID,
		DiffRating: p.DiffRating,
	})
	if err != nil {
		return err
	}
	for _, tag := range p.Tags {
		tagID, err := r.dao.GetOrCreateTag(ctx, tag)
		if err != nil {
			return err
		}
		if err = r.dao.CreateProblemTag(ctx, p.ID, tagID); err != nil {
			return err
		}
	}
	return nil
}

func (r *ingestRepository) SaveSubmission(ctx context.Context, s domain.Submission) error {
	return r.dao.UpsertSubmission(ctx, dao.Submission{
		Id:          s.ID,
		ProblemId:   s.ProblemID,
		Handle:      s.Handle,
		Verdict:     s.Verdict,
		SubmittedAt: s.SubmittedAt.UnixMilli(),
		ExecTimeMs:  s.ExecTimeMs,
		MemoryKB:    s.MemoryKB,
		Language:    s.Language,
	})
}

func (r *ingestRepository) SaveUserContest(ctx context.Context, uc domain.UserContest) error {
	return r.dao.UpsertUserContest(ctx, dao.UserContest{
		Handle:       uc.Handle,
		ContestId:    uc.ContestID,
		ContestRank:  uc.Rank,
		RatingChange: uc.RatingChange,
		FinalRating:  uc.FinalRating,
		Penalty:      uc.Penalty,
	})
}

func (r *ingestRepository) CreateRun(ctx context.Context, run domain.Run) error {
	return r.dao.CreateRun(ctx, dao.SyncRun{
		SN:     run.SN,
		Handle: run.Handle,
		Status: string(run.Status),
		Stime:  run.StartedAt.UnixMilli(),
	})
}

func (r *ingestRepository) FinishRun(ctx context.Context, run domain.Run) error {
	return r.dao.FinishRun(ctx, run.SN, string(run.Status), run.Error, run.Ingested)
}
