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
	"errors"
	"strings"

	"github.com/ecodeclub/cpinsight/internal/ingest/internal/service"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/task/ejob"
)

var ErrMissingHandle = errors.New("没有指定要同步的 handle")

// SyncJobStarter 手动触发一次全量同步，handle 和 email 从任务请求的 query 里取
type SyncJobStarter struct {
	svc    service.SyncService
	logger *elog.Component
}

func NewSyncJobStarter(svc service.SyncService) *SyncJobStarter {
	return &SyncJobStarter{
		svc:    svc,
		logger: elog.DefaultLogger,
	}
}

func (s *SyncJobStarter) Start(ctx ejob.Context) error {
	var handle, email string
	if ctx.Request != nil {
		handle = strings.TrimSpace(ctx.Request.URL.Query().Get("handle"))
		email = strings.TrimSpace(ctx.Request.URL.Query().Get("email"))
	}
	if handle == "" {
		return ErrMissingHandle
	}
	run, err := s.svc.Sync(ctx.Ctx, handle, email)
	if err != nil {
		return err
	}
	s.logger.Info("同步完成",
		elog.String("handle", handle),
		elog.String("sn", run.SN),
		elog.Any("ingested", run.Ingested))
	return nil
}
