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

package web

import (
	"errors"
	"strings"

	"github.com/ecodeclub/cpinsight/internal/codeforces"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

type Handler struct {
	svc    service.SyncService
	logger *elog.Component
}

func NewHandler(svc service.SyncService) *Handler {
	return &Handler{
		svc:    svc,
		logger: elog.DefaultLogger,
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	server.POST("/sync", ginx.B[SyncReq](h.Sync))
}

func (h *Handler) Sync(ctx *ginx.Context, req SyncReq) (ginx.Result, error) {
	handle := strings.TrimSpace(req.Handle)
	if handle == "" {
		return invalidHandleResult, errors.New("handle 为空")
	}
	run, err := h.svc.Sync(ctx, handle, req.Email)
	if err != nil {
		if errors.Is(err, codeforces.ErrSourceUnavailable) {
			return sourceErrorResult, err
		}
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: newSyncRun(run),
	}, nil
}
