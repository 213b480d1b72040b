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

package ioc

import (
	"github.com/ecodeclub/cpinsight/internal/analytics"
	"github.com/ecodeclub/cpinsight/internal/export"
	"github.com/ecodeclub/ecache"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
)

func InitAnalyticsModule(db *egorm.Component, ec ecache.Cache) *analytics.Module {
	var cfg analytics.Config
	err := econf.UnmarshalKey("analytics", &cfg)
	if err != nil {
		panic(err)
	}
	res, err := analytics.InitModule(db, ec, cfg)
	if err != nil {
		panic(err)
	}
	return res
}

func InitExportModule(am *analytics.Module) *export.Module {
	var cfg export.Config
	err := econf.UnmarshalKey("export", &cfg)
	if err != nil {
		panic(err)
	}
	res, err := export.InitModule(am, cfg)
	if err != nil {
		panic(err)
	}
	return res
}
