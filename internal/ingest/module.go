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

package ingest

import (
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/domain"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/job"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/service"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/web"
)

type Module struct {
	Svc        Service
	Hdl        *Handler
	JobStarter *SyncJobStarter
}

type Handler = web.Handler
type Service = service.SyncService
type SyncJobStarter = job.SyncJobStarter

// PostSync 留给下游挂报表刷新和导出
type PostSync = service.PostSync

type Run = domain.Run
