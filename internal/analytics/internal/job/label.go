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

package job

import (
	"context"
	"fmt"

	"github.com/ecodeclub/cpinsight/internal/analytics/internal/service"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/task/ecron"
)

var _ ecron.NamedJob = (*LabelContestsJob)(nil)

// LabelContestsJob 定时全量重算比赛的均衡标注
type LabelContestsJob struct {
	svc    service.Service
	logger *elog.Component
}

func NewLabelContestsJob(svc service.Service) *LabelContestsJob {
	return &LabelContestsJob{
		svc:    svc,
		logger: elog.DefaultLogger,
	}
}

func (j *LabelContestsJob) Name() string {
	return "LabelContestsJob"
}

func (j *LabelContestsJob) Run(ctx context.Context) error {
	updated, err := j.svc.LabelContests(ctx)
	if err != nil {
		return fmt.Errorf("比赛均衡标注失败: %w", err)
	}
	j.logger.Info("比赛均衡标注完成", elog.Int("updated", updated))
	return nil
}
