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

package domain

import "time"

const (
	VerdictAccepted = "Accepted"
	VerdictUnknown  = "UNKNOWN"
)

// NormalizeVerdict 在入库边界统一判题结果：
// 源站的 "OK" 就是通过，缺失的当 UNKNOWN，其余原样保留
func NormalizeVerdict(v string) string {
	switch v {
	case "OK":
		return VerdictAccepted
	case "":
		return VerdictUnknown
	default:
		return v
	}
}

type Submission struct {
	// ID 源站分配的提交号，全局唯一且不可变
	ID        int64
	ProblemID string
	Handle    string
	Verdict   string
	// SubmittedAt 提交时刻，水位线按它推进
	SubmittedAt time.Time
	ExecTimeMs  int
	MemoryKB    int64
	Language    string
}
