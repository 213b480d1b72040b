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

// SolvedProblem 近期过题的一条 (题, 标签) 关联，同一道题每个标签一行
type SolvedProblem struct {
	ProblemID  string
	DiffRating int
	TagID      int64
}

// CandidateFilter 推荐候选的筛选条件：难度带内、共享标签、排除已过
type CandidateFilter struct {
	Handle    string
	MinRating int
	MaxRating int
	TagIDs    []int64
}
