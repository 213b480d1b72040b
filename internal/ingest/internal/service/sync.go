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
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/cpinsight/internal/codeforces"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/domain"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/event"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	uuid "github.com/lithammer/shortuuid/v4"
)

//go:generate mockgen -source=./sync.go -package=svcmocks -destination=mocks/sync.mock.go SyncService
type SyncService interface {
	// Sync 同步一个用户：用户信息、提交、赛果，然后交给 after 做报表和导出。
	// 库内写入是一个失败单元，任何一步出错整体回滚
	Sync(ctx context.Context, handle string, email string) (domain.Run, error)
}

// PostSync 同步提交之后的动作，报表构建和落盘导出挂在这里
type PostSync interface {
	AfterSync(ctx context.Context, handle string) error
}

type syncService struct {
	client   codeforces.Client
	repo     repository.IngestRepository
	producer event.SyncEventProducer
	after    PostSync
	// maxSubmissions 单次同步最多落多少条提交，0 表示不设上限
	maxSubmissions int
	// skipMalformed 碰到缺字段的记录是跳过还是整单失败
	skipMalformed bool
	logger        *elog.Component
}

func NewSyncService(client codeforces.Client,
	repo repository.IngestRepository,
	producer event.SyncEventProducer,
	after PostSync,
	maxSubmissions int,
	skipMalformed bool) SyncService {
	return &syncService{
		client:         client,
		repo:           repo,
		producer:       producer,
		after:          after,
		maxSubmissions: maxSubmissions,
		skipMalformed:  skipMalformed,
		logger:         elog.DefaultLogger,
	}
}

func (s *syncService) Sync(ctx context.Context, handle string, email string) (domain.Run, error) {
	run := domain.Run{
		SN:        uuid.New(),
		Handle:    handle,
		Status:    domain.RunStatusRunning,
		StartedAt: time.Now(),
	}
	// 流水记录在同步事务之外，失败了也要留痕
	if err := s.repo.CreateRun(ctx, run); err != nil {
		return run, fmt.Errorf("创建同步流水失败: %w", err)
	}

	ingested, err := s.syncOnce(ctx, handle, email)
	run.Ingested = ingested
	run.FinishedAt = time.Now()
	if err != nil {
		run.Status = domain.RunStatusFailed
		run.Error = err.Error()
		s.finishRun(ctx, run)
		return run, err
	}
	run.Status = domain.RunStatusSuccess
	s.finishRun(ctx, run)
	s.notify(ctx, run)

	if s.after != nil {
		// 库已经提交了，导出失败不回滚，但要把错误报出去，调用方以非零状态退出
		if err = s.after.AfterSync(ctx, handle); err != nil {
			return run, fmt.Errorf("同步后处理 %s 失败: %w", handle, err)
		}
	}
	return run, nil
}

func (s *syncService) syncOnce(ctx context.Context, handle string, email string) (int, error) {
	// 用户三个接口先在事务外拉完。补全比赛元数据的请求仍发生在事务里，
	// 低频(仅新比赛)所以先忍着，量大了再把比赛补全挪到事务前

	info, err := s.client.UserInfo(ctx, handle)
	if err != nil {
		return 0, fmt.Errorf("拉取用户信息失败: %w", err)
	}
	subs, err := s.client.UserStatus(ctx, handle)
	if err != nil {
		return 0, fmt.Errorf("拉取提交列表失败: %w", err)
	}
	changes, err := s.client.UserRating(ctx, handle)
	if err != nil {
		return 0, fmt.Errorf("拉取赛果历史失败: %w", err)
	}

	var ingested int
	err = s.repo.Atomic(ctx, func(tx repository.IngestRepository) error {
		if err := tx.SaveUser(ctx, domain.User{
			Handle:     info.Handle,
			Email:      email,
			Rating:     info.Rating,
			MaxRating:  info.MaxRating,
			Country:    info.Country,
			University: info.Organization,
			// 称号按当前分数重新算，不直接信接口给的 rank 字符串
			RatingTitle:  domain.RatingTitle(info.Rating),
			ProblemCount: distinctSolvedCount(subs),
		}); err != nil {
			return fmt.Errorf("落用户 %s 失败: %w", handle, err)
		}

		watermark, err := tx.Watermark(ctx, handle)
		if err != nil {
			return err
		}
		fresh := filterNewer(subs, watermark)
		if s.maxSubmissions > 0 && len(fresh) > s.maxSubmissions {
			fresh = fresh[:s.maxSubmissions]
		}

		reconciler := NewReconciler(s.client)
		var maxSeen time.Time
		for _, sub := range fresh {
			err := reconciler.Reconcile(ctx, tx, handle, sub)
			switch {
			case err == nil:
				ingested++
				if ts := time.Unix(sub.CreationTimeSeconds, 0); ts.After(maxSeen) {
					maxSeen = ts
				}
			case errors.Is(err, domain.ErrRecordMalformed) && s.skipMalformed:
				s.logger.Warn("跳过非法提交记录",
					elog.String("handle", handle),
					elog.Any("submission", sub.ID),
					elog.FieldErr(err))
			default:
				return fmt.Errorf("处理提交 %d 失败: %w", sub.ID, err)
			}
		}

		if err = s.fillUserContests(ctx, tx, handle, changes); err != nil {
			return err
		}

		// 水位线推到本次真正处理过的最新一条。
		// 一条都没处理就不动，半途失败的运行不会把没见过的记录标成已见
		if ingested > 0 {
			return tx.AdvanceWatermark(ctx, handle, maxSeen)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return ingested, nil
}

func (s *syncService) fillUserContests(ctx context.Context, tx repository.IngestRepository,
	handle string, changes []codeforces.RatingChange) error {
	for _, ch := range changes {
		// 只录入已经因为某道题被落过的比赛，跟提交侧保持引用完整
		has, err := tx.HasContest(ctx, ch.ContestID)
		if err != nil {
			return err
		}
		if !has {
			continue
		}
		if err = tx.SaveUserContest(ctx, domain.UserContest{
			Handle:       handle,
			ContestID:    ch.ContestID,
			Rank:         ch.Rank,
			RatingChange: ch.NewRating - ch.OldRating,
			FinalRating:  ch.NewRating,
		}); err != nil {
			return fmt.Errorf("落赛果 (%s, %d) 失败: %w", handle, ch.ContestID, err)
		}
	}
	return nil
}

func (s *syncService) finishRun(ctx context.Context, run domain.Run) {
	if err := s.repo.FinishRun(ctx, run); err != nil {
		s.logger.Error("更新同步流水失败",
			elog.String("sn", run.SN),
			elog.FieldErr(err))
	}
}

func (s *syncService) notify(ctx context.Context, run domain.Run) {
	if s.producer == nil {
		return
	}
	err := s.producer.Produce(ctx, event.SyncEvent{
		SN:       run.SN,
		Handle:   run.Handle,
		Ingested: run.Ingested,
	})
	if err != nil {
		s.logger.Warn("发送同步完成消息失败",
			elog.String("sn", run.SN),
			elog.FieldErr(err))
	}
}

// filterNewer 只留下严格晚于水位线的提交，保持源站新在前的顺序
func filterNewer(subs []codeforces.Submission, watermark time.Time) []codeforces.Submission {
	if watermark.IsZero() {
		return subs
	}
	res := make([]codeforces.Submission, 0, len(subs))
	for _, sub := range subs {
		if time.Unix(sub.CreationTimeSeconds, 0).After(watermark) {
			res = append(res, sub)
		}
	}
	return res
}

// distinctSolvedCount 整个源站提交流里去重后的过题数，
// 这里看的是源站原始的 OK，规范化之前
func distinctSolvedCount(subs []codeforces.Submission) int {
	type key struct {
		contestID int64
		index     string
	}
	solved := make(map[key]struct{})
	for _, sub := range subs {
		if sub.Verdict == "OK" {
			solved[key{contestID: sub.Problem.ContestID, index: sub.Problem.Index}] = struct{}{}
		}
	}
	return len(solved)
}
