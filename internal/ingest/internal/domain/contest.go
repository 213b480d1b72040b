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

import (
	"strings"
	"time"
)

type Contest struct {
	ID              int64
	Name            string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int64
	Type            string
	// IsBalanced 事后标注的结果，没标注过就是 nil
	IsBalanced *bool
}

// contestTypes 按名字匹配的比赛分类，顺序即匹配优先级
var contestTypes = []string{
	"Div. 1", "Div. 2", "Div. 3", "Div. 4",
	"Educational", "CodeTON", "Global", "Kotlin", "VK Cup",
	"Long Rounds", "April Fools", "Team Contests", "ICPC Scoring",
}

func ClassifyContest(name string) string {
	for _, t := range contestTypes {
		if strings.Contains(name, t) {
			return t
		}
	}
	return "Other"
}

type UserContest struct {
	Handle       string
	ContestID    int64
	Rank         int
	RatingChange int
	FinalRating  int
	Penalty      int
}
