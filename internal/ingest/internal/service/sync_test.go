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
	"testing"
	"time"

	"github.com/ecodeclub/cpinsight/internal/codeforces"
	cfmocks "github.com/ecodeclub/cpinsight/internal/codeforces/mocks"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/domain"
	evtmocks "github.com/ecodeclub/cpinsight/internal/ingest/internal/event/mocks"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/repository"
	repomocks "github.com/ecodeclub/cpinsight/internal/ingest/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// passthrough 让 Atomic 直接在当前 mock 上执行回调，单测里不关心事务边界
func passthrough(repo *repomocks.MockIngestRepository) {
	repo.EXPECT().Atomic(gomock.Any(), gomock.Any()).AnyTimes().
		DoAndReturn(func(ctx context.Context, fn func(repository.IngestRepository) error) error {
			return fn(repo)
		})
}

func TestSyncService_Sync(t *testing.T) {
	t.Parallel()

	const handle = "tourist"
	now := time.Now().Unix()

	sub := func(id int64, contestID int64, index string, verdict string, ts int64) codeforces.Submission {
		return codeforces.Submission{
			ID:                  id,
			CreationTimeSeconds: ts,
			Verdict:             verdict,
			TimeConsumedMillis:  100,
			MemoryConsumedBytes: 2048,
			ProgrammingLanguage: "GNU C++20",
			Problem: codeforces.Problem{
				ContestID: contestID,
				Index:     index,
				Name:      "Watermelon",
				Rating:    800,
				Tags:      []string{"math"},
			},
		}
	}

	testCases := []struct {
		name           string
		mock           func(ctrl *gomock.Controller) (codeforces.Client, repository.IngestRepository)
		maxSubmissions int
		skipMalformed  bool
		wantErr        bool
		assertFn       func(t *testing.T, run domain.Run)
	}{
		{
			name: "全新用户_全量落库并推进水位线",
			mock: func(ctrl *gomock.Controller) (codeforces.Client, repository.IngestRepository) {
				client := cfmocks.NewMockClient(ctrl)
				client.EXPECT().UserInfo(gomock.Any(), handle).
					Return(codeforces.User{Handle: handle, Rating: 3800, MaxRating: 4000, Rank: "legendary grandmaster"}, nil)
				client.EXPECT().UserStatus(gomock.Any(), handle).
					Return([]codeforces.Submission{
						sub(2, 4, "A", "OK", now),
						sub(1, 4, "A", "WRONG_ANSWER", now-100),
					}, nil)
				client.EXPECT().UserRating(gomock.Any(), handle).
					Return([]codeforces.RatingChange{
						{ContestID: 4, Rank: 1, OldRating: 3700, NewRating: 3800},
					}, nil)
				// 比赛第一次出现才回源站
				client.EXPECT().ContestStandings(gomock.Any(), int64(4)).
					Return(codeforces.Contest{ID: 4, Name: "Codeforces Beta Round #4 (Div. 2)", StartTimeSeconds: now - 7200, DurationSeconds: 7200}, nil)

				repo := repomocks.NewMockIngestRepository(ctrl)
				passthrough(repo)
				repo.EXPECT().CreateRun(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u domain.User) error {
						assert.Equal(t, handle, u.Handle)
						assert.Equal(t, 1, u.ProblemCount)
						// 源站给的是小写 rank，落库前要按分数重算称号
						assert.Equal(t, "Legendary Grandmaster", u.RatingTitle)
						return nil
					})
				repo.EXPECT().Watermark(gomock.Any(), handle).Return(time.Time{}, nil)
				// 同一场比赛只查一次库
				repo.EXPECT().HasContest(gomock.Any(), int64(4)).Return(false, nil)
				repo.EXPECT().SaveContest(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().SaveProblem(gomock.Any(), gomock.Any()).Times(2).
					DoAndReturn(func(_ context.Context, p domain.Problem) error {
						assert.Equal(t, "4_A", p.ID)
						return nil
					})
				repo.EXPECT().SaveSubmission(gomock.Any(), gomock.Any()).Times(2).Return(nil)
				// 赛果侧复用已落的比赛
				repo.EXPECT().HasContest(gomock.Any(), int64(4)).Return(true, nil)
				repo.EXPECT().SaveUserContest(gomock.Any(), domain.UserContest{
					Handle:       handle,
					ContestID:    4,
					Rank:         1,
					RatingChange: 100,
					FinalRating:  3800,
				}).Return(nil)
				repo.EXPECT().AdvanceWatermark(gomock.Any(), handle, time.Unix(now, 0)).Return(nil)
				repo.EXPECT().FinishRun(gomock.Any(), gomock.Any()).Return(nil)
				return client, repo
			},
			assertFn: func(t *testing.T, run domain.Run) {
				assert.Equal(t, domain.RunStatusSuccess, run.Status)
				assert.Equal(t, 2, run.Ingested)
			},
		},
		{
			name: "水位线之后没有新提交_不推进水位线",
			mock: func(ctrl *gomock.Controller) (codeforces.Client, repository.IngestRepository) {
				client := cfmocks.NewMockClient(ctrl)
				client.EXPECT().UserInfo(gomock.Any(), handle).
					Return(codeforces.User{Handle: handle}, nil)
				client.EXPECT().UserStatus(gomock.Any(), handle).
					Return([]codeforces.Submission{sub(1, 4, "A", "OK", now)}, nil)
				client.EXPECT().UserRating(gomock.Any(), handle).
					Return(nil, nil)

				repo := repomocks.NewMockIngestRepository(ctrl)
				passthrough(repo)
				repo.EXPECT().CreateRun(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(nil)
				// 水位线恰好等于提交时间，严格大于才算新
				repo.EXPECT().Watermark(gomock.Any(), handle).Return(time.Unix(now, 0), nil)
				repo.EXPECT().FinishRun(gomock.Any(), gomock.Any()).Return(nil)
				return client, repo
			},
			assertFn: func(t *testing.T, run domain.Run) {
				assert.Equal(t, domain.RunStatusSuccess, run.Status)
				assert.Equal(t, 0, run.Ingested)
			},
		},
		{
			name:          "缺字段的提交_配置跳过时不影响其他记录",
			skipMalformed: true,
			mock: func(ctrl *gomock.Controller) (codeforces.Client, repository.IngestRepository) {
				client := cfmocks.NewMockClient(ctrl)
				client.EXPECT().UserInfo(gomock.Any(), handle).
					Return(codeforces.User{Handle: handle}, nil)
				client.EXPECT().UserStatus(gomock.Any(), handle).
					Return([]codeforces.Submission{
						sub(2, 0, "A", "OK", now),
						sub(1, 4, "A", "OK", now-100),
					}, nil)
				client.EXPECT().UserRating(gomock.Any(), handle).
					Return(nil, nil)
				client.EXPECT().ContestStandings(gomock.Any(), int64(4)).
					Return(codeforces.Contest{ID: 4, Name: "Codeforces Beta Round #4", StartTimeSeconds: now - 7200, DurationSeconds: 7200}, nil)

				repo := repomocks.NewMockIngestRepository(ctrl)
				passthrough(repo)
				repo.EXPECT().CreateRun(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().Watermark(gomock.Any(), handle).Return(time.Time{}, nil)
				repo.EXPECT().HasContest(gomock.Any(), int64(4)).Return(false, nil)
				repo.EXPECT().SaveContest(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().SaveProblem(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().SaveSubmission(gomock.Any(), gomock.Any()).Return(nil)
				// 水位线停在真正处理过的那条
				repo.EXPECT().AdvanceWatermark(gomock.Any(), handle, time.Unix(now-100, 0)).Return(nil)
				repo.EXPECT().FinishRun(gomock.Any(), gomock.Any()).Return(nil)
				return client, repo
			},
			assertFn: func(t *testing.T, run domain.Run) {
				assert.Equal(t, domain.RunStatusSuccess, run.Status)
				assert.Equal(t, 1, run.Ingested)
			},
		},
		{
			name: "缺字段的提交_默认整次同步失败",
			mock: func(ctrl *gomock.Controller) (codeforces.Client, repository.IngestRepository) {
				client := cfmocks.NewMockClient(ctrl)
				client.EXPECT().UserInfo(gomock.Any(), handle).
					Return(codeforces.User{Handle: handle}, nil)
				client.EXPECT().UserStatus(gomock.Any(), handle).
					Return([]codeforces.Submission{sub(2, 0, "A", "OK", now)}, nil)
				client.EXPECT().UserRating(gomock.Any(), handle).
					Return(nil, nil)

				repo := repomocks.NewMockIngestRepository(ctrl)
				passthrough(repo)
				repo.EXPECT().CreateRun(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().Watermark(gomock.Any(), handle).Return(time.Time{}, nil)
				repo.EXPECT().FinishRun(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, run domain.Run) error {
						assert.Equal(t, domain.RunStatusFailed, run.Status)
						assert.NotEmpty(t, run.Error)
						return nil
					})
				return client, repo
			},
			wantErr: true,
			assertFn: func(t *testing.T, run domain.Run) {
				assert.Equal(t, domain.RunStatusFailed, run.Status)
			},
		},
		{
			name: "源站不可用_流水标记失败",
			mock: func(ctrl *gomock.Controller) (codeforces.Client, repository.IngestRepository) {
				client := cfmocks.NewMockClient(ctrl)
				client.EXPECT().UserInfo(gomock.Any(), handle).
					Return(codeforces.User{}, codeforces.ErrSourceUnavailable)

				repo := repomocks.NewMockIngestRepository(ctrl)
				repo.EXPECT().CreateRun(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().FinishRun(gomock.Any(), gomock.Any()).Return(nil)
				return client, repo
			},
			wantErr: true,
			assertFn: func(t *testing.T, run domain.Run) {
				assert.Equal(t, domain.RunStatusFailed, run.Status)
				assert.Equal(t, 0, run.Ingested)
			},
		},
		{
			name:           "限制单次落库条数",
			maxSubmissions: 1,
			mock: func(ctrl *gomock.Controller) (codeforces.Client, repository.IngestRepository) {
				client := cfmocks.NewMockClient(ctrl)
				client.EXPECT().UserInfo(gomock.Any(), handle).
					Return(codeforces.User{Handle: handle}, nil)
				client.EXPECT().UserStatus(gomock.Any(), handle).
					Return([]codeforces.Submission{
						sub(2, 4, "A", "OK", now),
						sub(1, 4, "B", "OK", now-100),
					}, nil)
				client.EXPECT().UserRating(gomock.Any(), handle).
					Return(nil, nil)
				client.EXPECT().ContestStandings(gomock.Any(), int64(4)).
					Return(codeforces.Contest{ID: 4, Name: "Codeforces Beta Round #4", StartTimeSeconds: now - 7200, DurationSeconds: 7200}, nil)

				repo := repomocks.NewMockIngestRepository(ctrl)
				passthrough(repo)
				repo.EXPECT().CreateRun(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().Watermark(gomock.Any(), handle).Return(time.Time{}, nil)
				repo.EXPECT().HasContest(gomock.Any(), int64(4)).Return(false, nil)
				repo.EXPECT().SaveContest(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().SaveProblem(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().SaveSubmission(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().AdvanceWatermark(gomock.Any(), handle, time.Unix(now, 0)).Return(nil)
				repo.EXPECT().FinishRun(gomock.Any(), gomock.Any()).Return(nil)
				return client, repo
			},
			assertFn: func(t *testing.T, run domain.Run) {
				assert.Equal(t, 1, run.Ingested)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			client, repo := tc.mock(ctrl)
			producer := evtmocks.NewMockSyncEventProducer(ctrl)
			producer.EXPECT().Produce(gomock.Any(), gomock.Any()).AnyTimes().Return(nil)
			svc := NewSyncService(client, repo, producer, nil,
				tc.maxSubmissions, tc.skipMalformed)

			run, err := svc.Sync(t.Context(), handle, "")
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			tc.assertFn(t, run)
		})
	}
}

func TestFilterNewer(t *testing.T) {
	t.Parallel()
	base := time.Unix(1000, 0)
	subs := []codeforces.Submission{
		{ID: 3, CreationTimeSeconds: 1200},
		{ID: 2, CreationTimeSeconds: 1000},
		{ID: 1, CreationTimeSeconds: 800},
	}

	t.Run("零值水位线放行全部", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, filterNewer(subs, time.Time{}), 3)
	})

	t.Run("严格晚于才算新", func(t *testing.T) {
		t.Parallel()
		fresh := filterNewer(subs, base)
		require.Len(t, fresh, 1)
		assert.Equal(t, int64(3), fresh[0].ID)
	})
}

func TestDistinctSolvedCount(t *testing.T) {
	t.Parallel()
	subs := []codeforces.Submission{
		{Verdict: "OK", Problem: codeforces.Problem{ContestID: 4, Index: "A"}},
		{Verdict: "OK", Problem: codeforces.Problem{ContestID: 4, Index: "A"}},
		{Verdict: "OK", Problem: codeforces.Problem{ContestID: 4, Index: "B"}},
		{Verdict: "WRONG_ANSWER", Problem: codeforces.Problem{ContestID: 4, Index: "C"}},
		{Verdict: "", Problem: codeforces.Problem{ContestID: 4, Index: "D"}},
	}
	assert.Equal(t, 2, distinctSolvedCount(subs))
}
