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

package event

// SyncEvent 一次同步成功之后发出去，下游想刷缓存还是重跑推荐都随意
type SyncEvent struct {
	SN       string `json:"sn"`
	Handle   string `json:"handle"`
	Ingested int    `json:"ingested"`
}

func (SyncEvent) Topic() string {
	return "ingest_sync_events"
}
