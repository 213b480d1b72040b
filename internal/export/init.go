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

package export

import (
	"github.com/ecodeclub/cpinsight/internal/analytics"
	"github.com/ecodeclub/cpinsight/internal/export/internal/job"
	"github.com/ecodeclub/cpinsight/internal/export/internal/service"
)

type Config struct {
	// BaseDir 导出根目录，JSON 树落在 <BaseDir>/users/<handle>/ 下
	BaseDir string `yaml:"baseDir"`
}

func InitModule(am *analytics.Module, cfg Config) (*Module, error) {
	svc := service.NewExportService(am.Svc, cfg.BaseDir)
	return &Module{
		Svc:        svc,
		JobStarter: job.NewExportJobStarter(svc),
	}, nil
}
