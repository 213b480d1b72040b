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
	"errors"
	"strings"
	"time"

	"github.com/ecodeclub/cpinsight/internal/export/internal/service"
	"github.com/gotomicro/ego/task/ejob"
)

var ErrMissingHandle = errors.New("没有指定要导出的 handle")

// ExportJobStarter 手动触发单个用户的导出，handle 从任务请求的 query 里取
type ExportJobStarter struct {
	svc     service.Service
	timeout time.Duration
}

func NewExportJobStarter(svc service.Service) *ExportJobStarter {
	return &ExportJobStarter{
		svc:     svc,
		timeout: time.Minute,
	}
}

func (s *ExportJobStarter) Start(ctx ejob.Context) error {
	var handle string
	if ctx.Request != nil {
		handle = strings.TrimSpace(ctx.Request.URL.Query().Get("handle"))
	}
	if handle == "" {
		return ErrMissingHandle
	}
	jobCtx, cancel := context.WithTimeout(ctx.Ctx, s.timeout)
	defer cancel()
	return s.svc.Export(jobCtx, handle)
}
