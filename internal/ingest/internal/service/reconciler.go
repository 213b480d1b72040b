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
	"fmt"
	"time"

	"github.com/ecodeclub/cpinsight/internal/codeforces"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/domain"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/repository"
)

// Reconciler 把一条源提交合并进本地库。一次同步用一个实例，
// 运行期内记住已经落过的比赛，省掉重复的源站往返
type Reconciler struct {
	client codeforces.Client
	seen   map[int64]struct{}
}

func NewReconciler(client codeforces.Client) *Reconciler {
	return &Reconciler{
		client: client,
		seen:   make(map[int64]struct{}),
	}
}

// Reconcile 按比赛、题目、标签、提交的顺序落一条记录。
// 四步写入在一个事务里，任何一步失败这条记录就整体不可见
func (r *Reconciler) Reconcile(ctx context.Context, repo repository.IngestRepository,
	handle string, sub codeforces.Submission) error {
	pid, err := domain.ProblemID(sub.Problem.ContestID, sub.Problem.Index)
	if err != nil {
		return err
	}
	return repo.Atomic(ctx, func(tx repository.IngestRepository) error {
		if err := r.ensureContest(ctx, tx, sub.Problem.ContestID); err != nil {
			return fmt.Errorf("落比赛 %d 失败: %w", sub.Problem.ContestID, err)
		}
		rating := sub.Problem.Rating
		if rating == 0 {
			rating = domain.DefaultDiffRating
		}
		err := tx.SaveProblem(ctx, domain.Problem{
			ID:         pid,
			Title:      sub.Problem.Name,
			ContestID:  sub.Problem.ContestID,
			DiffRating: rating,
			Tags:       sub.Problem.Tags,
		})
		if err != nil {
			return fmt.Errorf("落题目 %s 失败: %w", pid, err)
		}
		err = tx.SaveSubmission(ctx, domain.Submission{
			ID:          sub.ID,
			ProblemID:   pid,
			Handle:      handle,
			Verdict:     domain.NormalizeVerdict(sub.Verdict),
			SubmittedAt: time.Unix(sub.CreationTimeSeconds, 0),
			ExecTimeMs:  sub.TimeConsumedMillis,
			MemoryKB:    sub.MemoryConsumedBytes / 1024,
			Language:    sub.ProgrammingLanguage,
		})
		if err != nil {
			return fmt.Errorf("落提交 %d 失败: %w", sub.ID, err)
		}
		return nil
	})
}

func (r *Reconciler) ensureContest(ctx context.Context, repo repository.IngestRepository, contestID int64) error {
	if _, ok := r.seen[contestID]; ok {
		return nil
	}
	has, err := repo.HasContest(ctx, contestID)
	if err != nil {
		return err
	}
	if !has {
		c, err := r.client.ContestStandings(ctx, contestID)
		if err != nil {
			return err
		}
		start := time.Unix(c.StartTimeSeconds, 0)
		if err = repo.SaveContest(ctx, domain.Contest{
			ID:              c.ID,
			Name:            c.Name,
			StartTime:       start,
			EndTime:         start.Add(time.Duration(c.DurationSeconds) * time.Second),
			DurationMinutes: c.DurationSeconds / 60,
			Type:            domain.ClassifyContest(c.Name),
		}); err != nil {
			return err
		}
	}
	r.seen[contestID] = struct{}{}
	return nil
}
