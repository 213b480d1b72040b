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

import "math"

// UserSubmission 算过题画像用的最小行，按提交时间升序
type UserSubmission struct {
	ProblemID string
	Verdict   string
	Rating    int
}

// ComputeSolvedStats 从一个用户的全部提交流里算过题画像。
// 一发入魂指这道题第一次通过之前没有任何失败提交
func ComputeSolvedStats(subs []UserSubmission) SolvedStats {
	type attempt struct {
		solved bool
		failed int
	}
	attempts := make(map[string]*attempt)
	solved := make(map[string]struct{})
	var firstAttempt int
	var ratings []int

	for _, sub := range subs {
		a, ok := attempts[sub.ProblemID]
		if !ok {
			a = &attempt{}
			attempts[sub.ProblemID] = a
		}
		switch sub.Verdict {
		case "Accepted":
			if a.failed == 0 && !a.solved {
				firstAttempt++
				a.solved = true
			}
			ratings = append(ratings, sub.Rating)
			solved[sub.ProblemID] = struct{}{}
		case "OK":
			// 规范化之后不应该再有，原样跳过
		default:
			a.failed++
		}
	}

	stats := SolvedStats{ProblemCount: len(solved)}
	if len(ratings) > 0 {
		var sum int
		for _, r := range ratings {
			sum += r
			if r > stats.HighestRating {
				stats.HighestRating = r
			}
		}
		stats.AvgRating = Round2(float64(sum) / float64(len(ratings)))
	}
	if stats.ProblemCount > 0 {
		stats.FirstAttemptPct = Round2(float64(firstAttempt) / float64(stats.ProblemCount) * 100)
	}
	return stats
}

// BalanceStats 一场比赛的难度离散度和标签多样性
type BalanceStats struct {
	ContestID  int64
	Stddev     float64
	TagVariety int64
}

const (
	balanceStddevThreshold = 500
	balanceMinTagVariety   = 3
)

// IsBalanced 难度标准差小于 500 且标签种类不少于 3
func (s BalanceStats) IsBalanced() bool {
	return s.Stddev < balanceStddevThreshold && s.TagVariety >= balanceMinTagVariety
}

// Round2 保留两位小数
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
