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

//go:build e2e

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/ecodeclub/cpinsight/internal/analytics"
	"github.com/ecodeclub/cpinsight/internal/ingest"
	"github.com/ecodeclub/cpinsight/internal/test"
	testioc "github.com/ecodeclub/cpinsight/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// 种子数据直接按表结构写，绕开别的模块的 DAO
type seedUser struct {
	Handle       string
	Rating       int
	MaxRating    int
	RatingTitle  string
	ProblemCount int
}

func (seedUser) TableName() string { return "users" }

type seedContest struct {
	Id        int64
	Name      string
	StartTime int64
}

func (seedContest) TableName() string { return "contests" }

type seedProblem struct {
	Id         string
	Title      string
	ContestId  int64
	DiffRating int
}

func (seedProblem) TableName() string { return "problems" }

type seedTag struct {
	Id   int64
	Name string
}

func (seedTag) TableName() string { return "tags" }

type seedProblemTag struct {
	ProblemId string
	TagId     int64
}

func (seedProblemTag) TableName() string { return "problem_tags" }

type seedSubmission struct {
	Id          int64
	ProblemId   string
	Handle      string
	Verdict     string
	SubmittedAt int64
}

func (seedSubmission) TableName() string { return "submissions" }

type seedUserContest struct {
	Handle       string
	ContestId    int64
	ContestRank  int
	RatingChange int
	FinalRating  int
}

func (seedUserContest) TableName() string { return "user_contests" }

type AnalyticsTestSuite struct {
	suite.Suite
	db     *egorm.Component
	svc    analytics.Service
	server *egin.Component
}

func (s *AnalyticsTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	ingest.InitTableOnce(s.db)
	mod, err := analytics.InitModule(s.db, testioc.InitCache(), analytics.Config{RatingWindow: 10000})
	require.NoError(s.T(), err)
	s.svc = mod.Svc

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	mod.Hdl.PublicRoutes(server.Engine)
	s.server = server
}

func (s *AnalyticsTestSuite) SetupTest() {
	t := s.T()
	ms := func(sec int64) int64 { return time.Unix(sec, 0).UnixMilli() }

	require.NoError(t, s.db.Create([]seedUser{
		{Handle: "alice", Rating: 1500, MaxRating: 1600, RatingTitle: "Specialist", ProblemCount: 2},
		{Handle: "bob", Rating: 2200, MaxRating: 2300, RatingTitle: "Master", ProblemCount: 1},
	}).Error)
	require.NoError(t, s.db.Create([]seedContest{
		{Id: 1, Name: "Round 1", StartTime: ms(1000)},
		{Id: 2, Name: "Round 2", StartTime: ms(2000)},
	}).Error)
	require.NoError(t, s.db.Create([]seedProblem{
		{Id: "1_A", Title: "P1", ContestId: 1, DiffRating: 800},
		{Id: "1_B", Title: "P2", ContestId: 1, DiffRating: 900},
		{Id: "2_A", Title: "P3", ContestId: 2, DiffRating: 1000},
	}).Error)
	require.NoError(t, s.db.Create([]seedTag{
		{Id: 1, Name: "math"}, {Id: 2, Name: "dp"}, {Id: 3, Name: "greedy"},
	}).Error)
	require.NoError(t, s.db.Create([]seedProblemTag{
		{ProblemId: "1_A", TagId: 1},
		{ProblemId: "1_B", TagId: 2},
		{ProblemId: "2_A", TagId: 3},
		{ProblemId: "2_A", TagId: 1},
	}).Error)
	require.NoError(t, s.db.Create([]seedSubmission{
		// alice：1_A 二发过，1_B 挂着没过
		{Id: 1, ProblemId: "1_A", Handle: "alice", Verdict: "Wrong Answer", SubmittedAt: ms(1100)},
		{Id: 2, ProblemId: "1_A", Handle: "alice", Verdict: "Accepted", SubmittedAt: ms(1200)},
		{Id: 3, ProblemId: "1_B", Handle: "alice", Verdict: "Time Limit Exceeded", SubmittedAt: ms(1300)},
		// bob：1_A 一发过
		{Id: 4, ProblemId: "1_A", Handle: "bob", Verdict: "Accepted", SubmittedAt: ms(1400)},
	}).Error)
	require.NoError(t, s.db.Create([]seedUserContest{
		{Handle: "alice", ContestId: 1, ContestRank: 120, RatingChange: 40, FinalRating: 1500},
		{Handle: "alice", ContestId: 2, ContestRank: 80, RatingChange: -20, FinalRating: 1480},
		{Handle: "bob", ContestId: 1, ContestRank: 5, RatingChange: 60, FinalRating: 2200},
	}).Error)
}

func (s *AnalyticsTestSuite) TearDownTest() {
	for _, table := range []string{
		"users", "contests", "problems", "tags",
		"problem_tags", "submissions", "user_contests",
	} {
		require.NoError(s.T(), s.db.Exec("TRUNCATE TABLE `"+table+"`").Error)
	}
}

func (s *AnalyticsTestSuite) TestUserReport() {
	t := s.T()
	report, err := s.svc.RefreshUserReport(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", report.BasicInfo.Handle)
	assert.Equal(t, int64(3), report.BasicInfo.TotalSubmissions)

	assert.Equal(t, 1, report.SolvedStats.ProblemCount)
	assert.Equal(t, float64(800), report.SolvedStats.AvgRating)
	// 1_A 第一发是 WA，不算一发入魂
	assert.Equal(t, float64(0), report.SolvedStats.FirstAttemptPct)

	require.Len(t, report.Tags, 1)
	assert.Equal(t, "math", report.Tags[0].Tag)

	assert.Equal(t, int64(1), report.ByVerdict.Accepted)
	assert.Equal(t, int64(1), report.ByVerdict.WrongAnswer)
	assert.Equal(t, int64(1), report.ByVerdict.TimeLimitExceeded)

	require.Len(t, report.Monthly, 1)
	assert.Equal(t, int64(1), report.Monthly[0].Count)

	assert.Equal(t, []string{"1_B"}, report.Unsolved)

	require.Len(t, report.RatingHistory, 2)
	assert.Equal(t, "Round 1", report.RatingHistory[0].ContestName)

	require.Len(t, report.ContestCards, 2)

	assert.Equal(t, int64(2), report.ContestStats.ContestCount)
	assert.Equal(t, 80, report.ContestStats.BestRank)
	assert.Equal(t, 120, report.ContestStats.WorstRank)
}

func (s *AnalyticsTestSuite) TestUserReportEmptyListsStayLists() {
	t := s.T()
	// bob 一发过 1_A 之后没有挂着的题，空列表导出后得是 []，不能是 null
	report, err := s.svc.RefreshUserReport(context.Background(), "bob")
	require.NoError(t, err)

	require.NotNil(t, report.Unsolved)
	bs, err := json.Marshal(report.Unsolved)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(bs))
}

func (s *AnalyticsTestSuite) TestUserReportMissingUser() {
	_, err := s.svc.RefreshUserReport(context.Background(), "nobody")
	assert.Error(s.T(), err)
}

func (s *AnalyticsTestSuite) TestProblemAnalysis() {
	t := s.T()
	res, err := s.svc.ProblemAnalysis(context.Background(), "1_A")
	require.NoError(t, err)

	assert.Equal(t, 800, res.ActualRating)
	// 3 条提交里 2 条通过
	assert.Equal(t, 66.67, res.AcceptanceRate)
	require.NotEmpty(t, res.CommonErrors)
	assert.Equal(t, "Accepted", res.CommonErrors[0].Verdict)

	require.NotNil(t, res.Perception.AvgSolverRating)
	// alice 1500 和 bob 2200 的均值
	assert.Equal(t, float64(1850), *res.Perception.AvgSolverRating)
	assert.Equal(t, int64(2), res.Perception.SolvedCount)

	assert.Equal(t, int64(2), res.UniqueUsers)
	// alice 两发，bob 一发
	assert.Equal(t, 1.5, res.AvgSubsToSolve)
}

func (s *AnalyticsTestSuite) TestProblemAnalysisEmpty() {
	t := s.T()
	// 有这道题但没人交过
	res, err := s.svc.ProblemAnalysis(context.Background(), "2_A")
	require.NoError(t, err)
	assert.Equal(t, float64(0), res.AcceptanceRate)
	assert.Empty(t, res.CommonErrors)
	assert.Nil(t, res.Perception.AvgSolverRating)
	assert.Equal(t, int64(0), res.UniqueUsers)
	assert.Equal(t, float64(0), res.AvgSubsToSolve)
}

func (s *AnalyticsTestSuite) TestRecommendations() {
	t := s.T()
	problems, err := s.svc.Recommendations(context.Background(), "alice")
	require.NoError(t, err)
	// alice 只过了 1_A（math）：2_A 同标签且没过，1_B 标签不沾边
	require.Len(t, problems, 1)
	assert.Equal(t, "2_A", problems[0].ProblemID)
}

func (s *AnalyticsTestSuite) TestRecommendationsNoSolved() {
	t := s.T()
	problems, err := s.svc.Recommendations(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func (s *AnalyticsTestSuite) TestCompare() {
	t := s.T()
	res, err := s.svc.Compare(context.Background(), "alice", "bob")
	require.NoError(t, err)

	assert.Equal(t, "alice", res.First.Handle)
	assert.Equal(t, int64(2), res.First.TotalContests)
	assert.Equal(t, 1.5, res.First.AvgSubsPerPrb)
	assert.Equal(t, int64(1), res.Second.TotalContests)

	require.Len(t, res.CommonContests, 1)
	assert.Equal(t, int64(1), res.CommonContests[0].ContestID)
	assert.Equal(t, 120, res.CommonContests[0].FirstRank)
	assert.Equal(t, 5, res.CommonContests[0].SecondRank)

	require.Len(t, res.Tags, 2)
}

func (s *AnalyticsTestSuite) TestLabelContests() {
	t := s.T()
	updated, err := s.svc.LabelContests(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	var balanced []bool
	require.NoError(t, s.db.Table("contests").
		Order("id").
		Pluck("is_balanced", &balanced).Error)
	// Round 1 难度 [800,900] 但只有 2 种标签；Round 2 只有 1 道题 2 种标签
	assert.Equal(t, []bool{false, false}, balanced)
}

func (s *AnalyticsTestSuite) TestUserReportHTTP() {
	t := s.T()
	req, err := http.NewRequest(http.MethodGet, "/analytics/users/alice", nil)
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[analytics.UserReport]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)
	resp := recorder.MustScan()
	assert.Equal(t, "alice", resp.Data.BasicInfo.Handle)
	assert.Equal(t, int64(3), resp.Data.BasicInfo.TotalSubmissions)
}

func (s *AnalyticsTestSuite) TestUserReportHTTPNotFound() {
	t := s.T()
	req, err := http.NewRequest(http.MethodGet, "/analytics/users/nobody", nil)
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[analytics.UserReport]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 500, recorder.Code)
	assert.Equal(t, 512002, recorder.MustScan().Code)
}

func (s *AnalyticsTestSuite) TestCompareHTTPMissingParam() {
	t := s.T()
	req, err := http.NewRequest(http.MethodGet, "/analytics/compare?first=alice", nil)
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[analytics.Comparison]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 500, recorder.Code)
	assert.Equal(t, 512004, recorder.MustScan().Code)
}

func TestAnalyticsService(t *testing.T) {
	suite.Run(t, new(AnalyticsTestSuite))
}
