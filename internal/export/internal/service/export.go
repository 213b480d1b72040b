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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ecodeclub/cpinsight/internal/analytics"
	"github.com/gotomicro/ego/core/elog"
)

// Service 把一个用户的分析结果导出成 users/<handle>/ 下的一组 JSON 文件
type Service interface {
	Export(ctx context.Context, handle string) error
	// AfterSync 同步完成后重算报表并导出，挂在同步流程的尾部
	AfterSync(ctx context.Context, handle string) error
}

type exportService struct {
	svc     analytics.Service
	baseDir string
	logger  *elog.Component
}

func NewExportService(svc analytics.Service, baseDir string) Service {
	return &exportService{
		svc:     svc,
		baseDir: baseDir,
		logger:  elog.DefaultLogger,
	}
}

func (s *exportService) Export(ctx context.Context, handle string) error {
	report, err := s.svc.UserReport(ctx, handle)
	if err != nil {
		return err
	}
	return s.writeReport(handle, report)
}

func (s *exportService) AfterSync(ctx context.Context, handle string) error {
	report, err := s.svc.RefreshUserReport(ctx, handle)
	if err != nil {
		return err
	}
	return s.writeReport(handle, report)
}

// solvedSummary <handle>_data.json 的结构
type solvedSummary struct {
	Handle          string               `json:"username"`
	ProblemCount    int                  `json:"problem_count"`
	AvgRating       float64              `json:"average_rating"`
	HighestRating   int                  `json:"highest_rating"`
	FirstAttemptPct float64              `json:"first_attempt_percentage"`
	Tags            []analytics.TagCount `json:"problem_tags_count"`
}

func (s *exportService) writeReport(handle string, report analytics.UserReport) error {
	userDir := filepath.Join(s.baseDir, "users", handle)
	subDir := filepath.Join(userDir, "submissions")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		return fmt.Errorf("创建导出目录失败 %s: %w", userDir, err)
	}

	files := []struct {
		path string
		data any
	}{
		{filepath.Join(userDir, handle+"_data.json"), solvedSummary{
			Handle:          handle,
			ProblemCount:    report.SolvedStats.ProblemCount,
			AvgRating:       report.SolvedStats.AvgRating,
			HighestRating:   report.SolvedStats.HighestRating,
			FirstAttemptPct: report.SolvedStats.FirstAttemptPct,
			Tags:            report.Tags,
		}},
		{filepath.Join(userDir, handle+"_basic_info.json"), report.BasicInfo},
		{filepath.Join(userDir, handle+"_user_rating_history.json"), report.RatingHistory},
		{filepath.Join(userDir, handle+"_problem_count_by_rating.json"), report.ByRating},
		{filepath.Join(userDir, handle+"_contest_cards.json"), report.ContestCards},
		{filepath.Join(userDir, handle+"_contest_count_best_rank.json"), report.ContestStats},
		{filepath.Join(userDir, handle+"_user_submissions_by_verdict.json"), report.ByVerdict},
		{filepath.Join(userDir, "monthly_problem_count.json"), report.Monthly},
		{filepath.Join(userDir, handle+"_unsolved_problems.json"), report.Unsolved},
		{filepath.Join(subDir, handle+"_last_10_submissions.json"), report.Recent},
	}
	for _, f := range files {
		if err := writeJSON(f.path, f.data); err != nil {
			return err
		}
	}
	s.logger.Info("导出完成",
		elog.String("handle", handle),
		elog.String("dir", userDir))
	return nil
}

// writeJSON 先写临时文件再 rename，避免读到写了一半的文件
func writeJSON(path string, data any) error {
	bs, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("序列化失败 %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err = tmp.Write(bs); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
