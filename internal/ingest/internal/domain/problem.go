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
	"errors"
	"fmt"
)

// ErrRecordMalformed 源数据缺关键字段，这种记录不做兜底，直接报出去
var ErrRecordMalformed = errors.New("源数据记录缺少必要字段")

// DefaultDiffRating 源站没给难度时落到的地板值，
// 存地板值而不是 NULL，聚合查询就不用到处判空
const DefaultDiffRating = 800

type Problem struct {
	// ID 形如 "1234_A"，源站没有全局题号，比赛号 + 题目序号就是身份
	ID         string
	Title      string
	ContestID  int64
	DiffRating int
	Tags       []string
}

// ProblemID 计算题目的复合主键。同一条源数据不管何时何地算出来的都一样，
// 它是 Problem、Submission、problem_tags 之间唯一的关联键
func ProblemID(contestID int64, index string) (string, error) {
	if contestID == 0 || index == "" {
		return "", fmt.Errorf("%w: contestId=%d, index=%q", ErrRecordMalformed, contestID, index)
	}
	return fmt.Sprintf("%d_%s", contestID, index), nil
}
