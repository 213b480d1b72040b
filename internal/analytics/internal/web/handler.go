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

	"github.com/ecodeclub/cpinsight/internal/analytics/internal/repository"
	"github.com/ecodeclub/cpinsight/internal/analytics/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	users := server.Group("/analytics/users")
	users.GET("/:handle", ginx.W(h.UserReport))
	users.GET("/:handle/recommendations", ginx.W(h.Recommendations))
	server.GET("/analytics/compare", ginx.W(h.Compare))
	server.GET("/analytics/problems/:id", ginx.W(h.ProblemAnalysis))
}

func (h *Handler) UserReport(ctx *ginx.Context) (ginx.Result, error) {
	report, err := h.svc.UserReport(ctx, ctx.Param("handle").StringOrDefault(""))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return userNotFoundResult, err
		}
		return systemErrorResult, err
	}
	return ginx.Result{Data: report}, nil
}

func (h *Handler) Recommendations(ctx *ginx.Context) (ginx.Result, error) {
	problems, err := h.svc.Recommendations(ctx, ctx.Param("handle").StringOrDefault(""))
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: problems}, nil
}

func (h *Handler) Compare(ctx *ginx.Context) (ginx.Result, error) {
	first := ctx.Query("first").StringOrDefault("")
	second := ctx.Query("second").StringOrDefault("")
	if first == "" || second == "" {
		return badRequestResult, errors.New("对比需要两个 handle")
	}
	res, err := h.svc.Compare(ctx, first, second)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return userNotFoundResult, err
		}
		return systemErrorResult, err
	}
	return ginx.Result{Data: res}, nil
}

func (h *Handler) ProblemAnalysis(ctx *ginx.Context) (ginx.Result, error) {
	res, err := h.svc.ProblemAnalysis(ctx, ctx.Param("id").StringOrDefault(""))
	if err != nil {
		if errors.Is(err, repository.ErrProblemNotFound) {
			return problemNotFoundResult, err
		}
		return systemErrorResult, err
	}
	return ginx.Result{Data: res}, nil
}
