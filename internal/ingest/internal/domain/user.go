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

type User struct {
	Handle       string
	Email        string
	Rating       int
	MaxRating    int
	Country      string
	University   string
	RatingTitle  string
	ProblemCount int
	// LastUpdated 水位线：最近一条已处理提交的时间，只会向前推进
	LastUpdated time.Time
}

// RatingTitle 按照积分换算段位称号
func RatingTitle(rating int) string {
	switch {
	case rating < 1200:
		return "Newbie"
	case rating < 1400:
		return "Pupil"
	case rating < 1600:
		return "Specialist"
	case rating < 1900:
		return "Expert"
	case rating < 2100:
		return "Candidate Master"
	case rating < 2300:
		return "Master"
	case rating < 2400:
		return "International Master"
	case rating < 2600:
		return "Grandmaster"
	case rating < 3000:
		return "International Grandmaster"
	case rating < 4000:
		return "Legendary Grandmaster"
	default:
		return "Tourist"
	}
}
