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
	"sync"

	"github.com/ecodeclub/cpinsight/internal/codeforces"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/event"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/job"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/repository"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/repository/dao"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/service"
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/web"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

type Config struct {
	// MaxSubmissions 单次同步最多落多少条提交，0 表示不限
	MaxSubmissions int `yaml:"maxSubmissions"`
	// SkipMalformed 碰到缺关键字段的提交是跳过还是让整次同步失败
	SkipMalformed bool `yaml:"skipMalformed"`
}

func InitModule(db *egorm.Component,
	q mq.MQ,
	client codeforces.Client,
	after PostSync,
	cfg Config) (*Module, error) {
	ingestDAO := InitIngestDAO(db)
	repo := repository.NewIngestRepository(ingestDAO)
	producer, err := event.NewSyncEventProducer(q)
	if err != nil {
		return nil, err
	}
	svc := service.NewSyncService(client, repo, producer, after,
		cfg.MaxSubmissions, cfg.SkipMalformed)
	return &Module{
		Svc:        svc,
		Hdl:        web.NewHandler(svc),
		JobStarter: job.NewSyncJobStarter(svc),
	}, nil
}

var daoOnce = sync.Once{}

func InitTableOnce(db *gorm.DB) {
	daoOnce.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
}

func InitIngestDAO(db *egorm.Component) dao.IngestDAO {
	InitTableOnce(db)
	return dao.NewGORMIngestDAO(db)
}
