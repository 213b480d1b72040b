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

package analytics

import (
	"github.com/ecodeclub/cpinsight/internal/analytics/internal/job"
	"github.com/ecodeclub/cpinsight/internal/analytics/internal/repository"
	"github.com/ecodeclub/cpinsight/internal/analytics/internal/repository/cache"
	"github.com/ecodeclub/cpinsight/internal/analytics/internal/repository/dao"
	"github.com/ecodeclub/cpinsight/internal/analytics/internal/service"
	"github.com/ecodeclub/cpinsight/internal/analytics/internal/web"
	"github.com/ecodeclub/ecache"
	"github.com/ego-component/egorm"
)

type Config struct {
	// RatingWindow 推荐候选的难度带半径
	RatingWindow int `yaml:"ratingWindow"`
}

func InitModule(db *egorm.Component, ec ecache.Cache, cfg Config) (*Module, error) {
	repo := repository.NewAnalyticsRepository(dao.NewGORMAnalyticsDAO(db))
	svc := service.NewService(repo, cache.NewReportECache(ec), cfg.RatingWindow)
	return &Module{
		Svc:      svc,
		Hdl:      web.NewHandler(svc),
		LabelJob: job.NewLabelContestsJob(svc),
	}, nil
}
