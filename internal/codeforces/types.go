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

package codeforces

import "encoding/json"

// envelope Codeforces API 的统一响应结构
// status 不是 OK 的时候，comment 里面是失败原因
type envelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}

type User struct {
	Handle       string `json:"handle"`
	Rating       int    `json:"rating"`
	MaxRating    int    `json:"maxRating"`
	Rank         string `json:"rank"`
	Country      string `json:"country"`
	Organization string `json:"organization"`
}

type Problem struct {
	// ContestID 为 0 说明源数据缺失，上层会按非法记录处理
	ContestID int64    `json:"contestId"`
	Index     string   `json:"index"`
	Name      string   `json:"name"`
	Rating    int      `json:"rating"`
	Tags      []string `json:"tags"`
}

type Submission struct {
	ID                  int64   `json:"id"`
	CreationTimeSeconds int64   `json:"creationTimeSeconds"`
	Problem             Problem `json:"problem"`
	// Verdict 可能缺失，比如还在评测中
	Verdict             string `json:"verdict"`
	TimeConsumedMillis  int    `json:"timeConsumedMillis"`
	MemoryConsumedBytes int64  `json:"memoryConsumedBytes"`
	ProgrammingLanguage string `json:"programmingLanguage"`
}

type Contest struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	StartTimeSeconds int64  `json:"startTimeSeconds"`
	DurationSeconds  int64  `json:"durationSeconds"`
}

type RatingChange struct {
	ContestID               int64  `json:"contestId"`
	ContestName             string `json:"contestName"`
	Handle                  string `json:"handle"`
	Rank                    int    `json:"rank"`
	RatingUpdateTimeSeconds int64  `json:"ratingUpdateTimeSeconds"`
	OldRating               int    `json:"oldRating"`
	NewRating               int    `json:"newRating"`
}

// standingsResult contest.standings 的 result 部分，只取 contest 元数据
type standingsResult struct {
	Contest Contest `json:"contest"`
}
