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
	"time"

	"github.com/ecodeclub/cpinsight/internal/ingest/internal/domain"
)

type SyncReq struct {
	Handle string `json:"handle"`
	Email  string `json:"email,omitempty"`
}

type SyncRun struct {
	SN         string `json:"sn"`
	Handle     string `json:"handle"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	Ingested   int    `json:"ingested"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt,omitempty"`
}

func newSyncRun(r domain.Run) SyncRun {
	res := SyncRun{
		SN:        r.SN,
		Handle:    r.Handle,
		Status:    string(r.Status),
		Error:     r.Error,
		Ingested:  r.Ingested,
		StartedAt: r.StartedAt.Format(time.DateTime),
	}
	if !r.FinishedAt.IsZero() {
		res.FinishedAt = r.FinishedAt.Format(time.DateTime)
	}
	return res
}
