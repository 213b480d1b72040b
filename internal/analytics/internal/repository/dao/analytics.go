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

package dao

import (
	"context"
	"database/sql"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var ErrDataNotFound = gorm.ErrRecordNotFound

// AnalyticsDAO 只读统计。所有查询在空数据上返回空切片或零值，不报错
type AnalyticsDAO interface {
	UserByHandle(ctx context.Context, handle string) (UserRow, error)
	TotalSubmissions(ctx context.Context, handle string) (int64, error)
	UserSubmissions(ctx context.Context, handle string) ([]SubmissionRow, error)
	TagDistribution(ctx context.Context, handle string) ([]TagRow, error)
	ProblemCountByRating(ctx context.Context, handle string) ([]RatingRow, error)
	CountByVerdict(ctx context.Context, handle string) ([]VerdictRow, error)
	MonthlySolved(ctx context.Context, handle string) ([]MonthRow, error)
	LastSubmissions(ctx context.Context, handle string, limit int) ([]RecentRow, error)
	UnsolvedProblems(ctx context.Context, handle string) ([]string, error)
	RatingHistory(ctx context.Context, handle string) ([]RatingHistoryRow, error)
	ContestCards(ctx context.Context, handle string) ([]ContestCardRow, error)
	ContestSummary(ctx context.Context, handle string) (ContestSummaryRow, error)
	AvgSubmissionsPerProblem(ctx context.Context, handle string) (float64, error)
	CommonContests(ctx context.Context, first, second string) ([]CommonContestRow, error)

	ProblemRating(ctx context.Context, problemID string) (int, error)
	AcceptanceRate(ctx context.Context, problemID string) (float64, error)
	VerdictHistogram(ctx context.Context, problemID string) ([]VerdictRow, error)
	DifficultyPerception(ctx context.Context, problemID string) (PerceptionRow, error)
	UniqueAttempters(ctx context.Context, problemID string) (int64, error)
	SolversByTitle(ctx context.Context, problemID string) ([]TitleRow, error)
	AvgSubmissionsToSolve(ctx context.Context, problemID string) (float64, error)

	RecentSolved(ctx context.Context, handle string, limit int) ([]SolvedProblemRow, error)
	CandidateProblems(ctx context.Context, q CandidateQuery) ([]CandidateRow, error)

	ContestBalanceStats(ctx context.Context) ([]BalanceRow, error)
	UpdateContestBalance(ctx context.Context, contestID int64, balanced bool) error
}

type UserRow struct {
	Handle       string
	Email        string
	Rating       int
	MaxRating    int
	Country      string
	University   string
	RatingTitle  string
	ProblemCount int
}

type SubmissionRow struct {
	ProblemId string
	Verdict   string
	Rating    int
}

type TagRow struct {
	TagName      string
	ProblemCount int64
}

type RatingRow struct {
	DiffRating  int
	SolvedCount int64
}

type VerdictRow struct {
	Verdict string
	Cnt     int64
}

type MonthRow struct {
	Year         int
	Month        int
	ProblemCount int64
}

type RecentRow struct {
	Id           int64
	ProblemId    string
	Handle       string
	Verdict      string
	ExecTimeMs   int
	MemoryKB     int64
	Language     string
	ProblemTitle string
	DiffRating   int
	ContestName  string
}

type RatingHistoryRow struct {
	StartTime    int64
	ContestName  string
	RatingChange int
	FinalRating  int
}

type ContestCardRow struct {
	ContestName    string
	ContestRank    int
	RatingChange   int
	Penalty        int
	ProblemsSolved int64
}

type ContestSummaryRow struct {
	ContestCount      int64
	BestRank          sql.NullInt64
	BestRankContestId sql.NullInt64
	WorstRank         sql.NullInt64
	WorstRankContest  sql.NullInt64
}

type CommonContestRow struct {
	ContestId   int64
	ContestName string
	FirstRank   int
	SecondRank  int
}

type PerceptionRow struct {
	AvgRating   sql.NullFloat64
	SolvedCount int64
}

type TitleRow struct {
	RatingTitle string
	UserCount   int64
}

type SolvedProblemRow struct {
	ProblemId  string
	DiffRating int
	TagId      int64
}

// CandidateQuery 推荐候选的筛选条件
type CandidateQuery struct {
	Handle    string
	MinRating int
	MaxRating int
	TagIds    []int64
}

type CandidateRow struct {
	ProblemId  string
	Title      string
	DiffRating int
}

type BalanceRow struct {
	ContestId  int64
	Stddev     sql.NullFloat64
	TagVariety int64
}

type GORMAnalyticsDAO struct {
	db *egorm.Component
}

func NewGORMAnalyticsDAO(db *egorm.Component) AnalyticsDAO {
	return &GORMAnalyticsDAO{db: db}
}

func (dao *GORMAnalyticsDAO) UserByHandle(ctx context.Context, handle string) (UserRow, error) {
	var row UserRow
	err := dao.db.WithContext(ctx).
		Table("users").
		Select("handle, email, rating, max_rating, country, university, rating_title, problem_count").
		Where("handle = ?", handle).
		Take(&row).Error
	return row, err
}

func (dao *GORMAnalyticsDAO) TotalSubmissions(ctx context.Context, handle string) (int64, error) {
	var cnt int64
	err := dao.db.WithContext(ctx).Raw(`
SELECT COUNT(*) FROM submissions WHERE handle = ?`, handle).Scan(&cnt).Error
	return cnt, err
}

func (dao *GORMAnalyticsDAO) UserSubmissions(ctx context.Context, handle string) ([]SubmissionRow, error) {
	var rows []SubmissionRow
	err := dao.db.WithContext(ctx).Raw(`
SELECT s.problem_id, s.verdict, p.diff_rating AS rating
FROM submissions s
JOIN problems p ON s.problem_id = p.id
WHERE s.handle = ?
ORDER BY s.submitted_at`, handle).Scan(&rows).Error
	return rows, err
}

func (dao *GORMAnalyticsDAO) TagDistribution(ctx context.Context, handle string) ([]TagRow, error) {
	var rows []TagRow
	err := dao.db.WithContext(ctx).Raw(`
SELECT t.name AS tag_name, COUNT(DISTINCT s.problem_id) AS problem_count
FROM submissions s
JOIN problem_tags pt ON s.problem_id = pt.problem_id
JOIN tags t ON pt.tag_id = t.id
WHERE s.handle = ? AND s.verdict = 'Accepted'
GROUP BY t.name
ORDER BY problem_count DESC`, handle).Scan(&rows).Error
	return rows, err
}

func (dao *GORMAnalyticsDAO) ProblemCountByRating(ctx context.Context, handle string) ([]RatingRow, error) {
	var rows []RatingRow
	err := dao.db.WithContext(ctx).Raw(`
SELECT p.diff_rating, COUNT(s.problem_id) AS solved_count
FROM submissions s
JOIN problems p ON s.problem_id = p.id
WHERE s.handle = ? AND s.verdict = 'Accepted'
GROUP BY p.diff_rating
ORDER BY p.diff_rating`, handle).Scan(&rows).Error
	return rows, err
}

func (dao *GORMAnalyticsDAO) CountByVerdict(ctx context.Context, handle string) ([]VerdictRow, error) {
	var rows []VerdictRow
	err := dao.db.WithContext(ctx).Raw(`
SELECT verdict, COUNT(DISTINCT problem_id) AS cnt
FROM submissions
WHERE handle = ?
GROUP BY verdict`, handle).Scan(&rows).Error
	return rows, err
}

func (dao *GORMAnalyticsDAO) MonthlySolved(ctx context.Context, handle string) ([]MonthRow, error) {
	var rows []MonthRow
	err := dao.db.WithContext(ctx).Raw(`
SELECT YEAR(FROM_UNIXTIME(submitted_at / 1000)) AS year,
       MONTH(FROM_UNIXTIME(submitted_at / 1000)) AS month,
       COUNT(DISTINCT problem_id) AS problem_count
FROM submissions
WHERE handle = ? AND verdict = 'Accepted'
GROUP BY year, month
ORDER BY year, month`, handle).Scan(&rows).Error
	return rows, err
}

func (dao *GORMAnalyticsDAO) LastSubmissions(ctx context.Context, handle string, limit int) ([]RecentRow, error) {
	var rows []RecentRow
	err := dao.db.WithContext(ctx).Raw(`
SELECT s.id, s.problem_id, s.handle, s.verdict, s.exec_time_ms, s.memory_kb, s.language,
       p.title AS problem_title, p.diff_rating, c.name AS contest_name
FROM submissions s
JOIN problems p ON s.problem_id = p.id
JOIN contests c ON p.contest_id = c.id
WHERE s.handle = ?
ORDER BY s.submitted_at DESC
LIMIT ?`, handle, limit).Scan(&rows).Error
	return rows, err
}

func (dao *GORMAnalyticsDAO) UnsolvedProblems(ctx context.Context, handle string) ([]string, error) {
	var ids []string
	err := dao.db.WithContext(ctx).Raw(`
SELECT s.problem_id
FROM submissions s
WHERE s.handle = ?
  AND s.verdict NOT IN ('Accepted', 'OK')
  AND NOT EXISTS (
    SELECT 1 FROM submissions s2
    WHERE s2.handle = s.handle AND s2.problem_id = s.problem_id AND s2.verdict = 'Accepted'
  )
GROUP BY s.problem_id`, handle).Scan(&ids).Error
	return ids, err
}

func (dao *GORMAnalyticsDAO) RatingHistory(ctx context.Context, handle string) ([]RatingHistoryRow, error) {
	var rows []RatingHistoryRow
	err := dao.db.WithContext(ctx).Raw(`
SELECT c.start_time, c.name AS contest_name, uc.rating_change, uc.final_rating
FROM user_contests uc
JOIN contests c ON uc.contest_id = c.id
WHERE uc.handle = ?
ORDER BY c.start_time`, handle).Scan(&rows).Error
	return rows, err
}

func (dao *GORMAnalyticsDAO) ContestCards(ctx context.Context, handle string) ([]ContestCardRow, error) {
	var rows []ContestCardRow
	err := dao.db.WithContext(ctx).Raw(`
SELECT c.name AS contest_name, uc.contest_rank, uc.rating_change, uc.penalty,
       (SELECT COUNT(DISTINCT s.problem_id)
        FROM submissions s
        JOIN problems p ON s.problem_id = p.id
        WHERE s.handle = uc.handle AND p.contest_id = uc.contest_id) AS problems_solved
FROM user_contests uc
JOIN contests c ON uc.contest_id = c.id
WHERE uc.handle = ?`, handle).Scan(&rows).Error
	return rows, err
}

func (dao *GORMAnalyticsDAO) ContestSummary(ctx context.Context, handle string) (ContestSummaryRow, error) {
	var row ContestSummaryRow
	err := dao.db.WithContext(ctx).Raw(`
SELECT COUNT(DISTINCT uc.contest_id) AS contest_count,
       (SELECT contest_id FROM user_contests WHERE handle = ? ORDER BY contest_rank LIMIT 1) AS best_rank_contest_id,
       (SELECT MIN(contest_rank) FROM user_contests WHERE handle = ?) AS best_rank,
       (SELECT contest_id FROM user_contests WHERE handle = ? ORDER BY contest_rank DESC LIMIT 1) AS worst_rank_contest,
       (SELECT MAX(contest_rank) FROM user_contests WHERE handle = ?) AS worst_rank
FROM user_contests uc
WHERE uc.handle = ?`, handle, handle, handle, handle, handle).Scan(&row).Error
	return row, err
}

func (dao *GORMAnalyticsDAO) AvgSubmissionsPerProblem(ctx context.Context, handle string) (float64, error) {
	var avg sql.NullFloat64
	err := dao.db.WithContext(ctx).Raw(`
SELECT AVG(per_problem) FROM (
  SELECT COUNT(*) AS per_problem
  FROM submissions
  WHERE handle = ?
  GROUP BY problem_id
) AS problem_submission_data`, handle).Scan(&avg).Error
	return avg.Float64, err
}

func (dao *GORMAnalyticsDAO) CommonContests(ctx context.Context, first, second string) ([]CommonContestRow, error) {
	var rows []CommonContestRow
	err := dao.db.WithContext(ctx).Raw(`
SELECT uc1.contest_id, c.name AS contest_name,
       uc1.contest_rank AS first_rank, uc2.contest_rank AS second_rank
FROM user_contests uc1
JOIN user_contests uc2 ON uc1.contest_id = uc2.contest_id
JOIN contests c ON uc1.contest_id = c.id
WHERE uc1.handle = ? AND uc2.handle = ?`, first, second).Scan(&rows).Error
	return rows, err
}

func (dao *GORMAnalyticsDAO) ProblemRating(ctx context.Context, problemID string) (int, error) {
	var row struct{ DiffRating int }
	err := dao.db.WithContext(ctx).
		Table("problems").
		Select("diff_rating").
		Where("id = ?", problemID).
		Take(&row).Error
	return row.DiffRating, err
}

func (dao *GORMAnalyticsDAO) AcceptanceRate(ctx context.Context, problemID string) (float64, error) {
	var rate sql.NullFloat64
	err := dao.db.WithContext(ctx).Raw(`
SELECT SUM(CASE WHEN verdict = 'Accepted' THEN 1 ELSE 0 END) / COUNT(*) * 100
FROM submissions
WHERE problem_id = ?`, problemID).Scan(&rate).Error
	return rate.Float64, err
}

func (dao *GORMAnalyticsDAO) VerdictHistogram(ctx context.Context, problemID string) ([]VerdictRow, error) {
	var rows []VerdictRow
	err := dao.db.WithContext(ctx).Raw(`
SELECT verdict, COUNT(*) AS cnt
FROM submissions
WHERE problem_id = ?
GROUP BY verdict
ORDER BY cnt DESC`, problemID).Scan(&rows).Error
	return rows, err
}

func (dao *GORMAnalyticsDAO) DifficultyPerception(ctx context.Context, problemID string) (PerceptionRow, error) {
	var row PerceptionRow
	err := dao.db.WithContext(ctx).Raw(`
SELECT AVG(u.rating) AS avg_rating, COUNT(*) AS solved_count
FROM submissions s
JOIN users u ON s.handle = u.handle
WHERE s.problem_id = ? AND s.verdict IN ('Accepted', 'Correct')`, problemID).Scan(&row).Error
	return row, err
}

func (dao *GORMAnalyticsDAO) UniqueAttempters(ctx context.Context, problemID string) (int64, error) {
	var cnt int64
	err := dao.db.WithContext(ctx).Raw(`
SELECT COUNT(DISTINCT handle) FROM submissions WHERE problem_id = ?`, problemID).Scan(&cnt).Error
	return cnt, err
}

func (dao *GORMAnalyticsDAO) SolversByTitle(ctx context.Context, problemID string) ([]TitleRow, error) {
	var rows []TitleRow
	err := dao.db.WithContext(ctx).Raw(`
SELECT u.rating_title, COUNT(DISTINCT s.handle) AS user_count
FROM submissions s
JOIN users u ON s.handle = u.handle
WHERE s.problem_id = ? AND s.verdict = 'Accepted'
GROUP BY u.rating_title
ORDER BY user_count DESC`, problemID).Scan(&rows).Error
	return rows, err
}

func (dao *GORMAnalyticsDAO) AvgSubmissionsToSolve(ctx context.Context, problemID string) (float64, error) {
	var avg sql.NullFloat64
	err := dao.db.WithContext(ctx).Raw(`
SELECT AVG(submission_count) FROM (
  SELECT handle, COUNT(*) AS submission_count
  FROM submissions
  WHERE problem_id = ?
  GROUP BY handle
  HAVING SUM(CASE WHEN verdict = 'Accepted' THEN 1 ELSE 0 END) > 0
) AS user_attempts`, problemID).Scan(&avg).Error
	return avg.Float64, err
}

func (dao *GORMAnalyticsDAO) RecentSolved(ctx context.Context, handle string, limit int) ([]SolvedProblemRow, error) {
	var rows []SolvedProblemRow
	err := dao.db.WithContext(ctx).Raw(`
SELECT p.id AS problem_id, p.diff_rating, pt.tag_id
FROM problems p
JOIN problem_tags pt ON p.id = pt.problem_id
WHERE p.id IN (
  SELECT problem_id FROM submissions WHERE handle = ? AND verdict = 'Accepted'
)
ORDER BY (SELECT MAX(submitted_at) FROM submissions
          WHERE handle = ? AND problem_id = p.id) DESC
LIMIT ?`, handle, handle, limit).Scan(&rows).Error
	return rows, err
}

func (dao *GORMAnalyticsDAO) CandidateProblems(ctx context.Context, q CandidateQuery) ([]CandidateRow, error) {
	var rows []CandidateRow
	err := dao.db.WithContext(ctx).Raw(`
SELECT DISTINCT p.id AS problem_id, p.title, p.diff_rating
FROM problems p
JOIN problem_tags pt ON p.id = pt.problem_id
WHERE p.diff_rating BETWEEN ? AND ?
  AND pt.tag_id IN (?)
  AND p.id NOT IN (
    SELECT problem_id FROM submissions WHERE handle = ? AND verdict = 'Accepted'
  )
ORDER BY p.diff_rating, p.id`, q.MinRating, q.MaxRating, q.TagIds, q.Handle).Scan(&rows).Error
	return rows, err
}

func (dao *GORMAnalyticsDAO) ContestBalanceStats(ctx context.Context) ([]BalanceRow, error) {
	var rows []BalanceRow
	err := dao.db.WithContext(ctx).Raw(`
SELECT c.id AS contest_id,
       STDDEV(p.diff_rating) AS stddev,
       (SELECT COUNT(DISTINCT pt.tag_id)
        FROM problems p2
        JOIN problem_tags pt ON p2.id = pt.problem_id
        WHERE p2.contest_id = c.id) AS tag_variety
FROM contests c
JOIN problems p ON c.id = p.contest_id
GROUP BY c.id`).Scan(&rows).Error
	return rows, err
}

func (dao *GORMAnalyticsDAO) UpdateContestBalance(ctx context.Context, contestID int64, balanced bool) error {
	return dao.db.WithContext(ctx).
		Table("contests").
		Where("id = ?", contestID).
		Update("is_balanced", balanced).Error
}
