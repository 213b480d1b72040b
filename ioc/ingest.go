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
	"github.com/ecodeclub/cpinsight/internal/codeforces"
	"github.com/ecodeclub/cpinsight/internal/ingest"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
)

func InitIngestModule(db *egorm.Component,
	q mq.MQ,
	client codeforces.Client,
	after ingest.PostSync) *ingest.Module {
	var cfg ingest.Config
	err := econf.UnmarshalKey("sync", &cfg)
	if err != nil {
		panic(err)
	}
	res, err := ingest.InitModule(db, q, client, after, cfg)
	if err != nil {
		panic(err)
	}
	return res
}

func InitCFClient() codeforces.Client {
	var cfg codeforces.Config
	err := econf.UnmarshalKey("codeforces", &cfg)
	if err != nil {
		panic(err)
	}
	return codeforces.NewClient(cfg)
}
