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

package dao

import "database/sql"

type User struct {
	Id           int64  `gorm:"primaryKey;autoIncrement"`
	Handle       string `gorm:"type:varchar(128);uniqueIndex"`
	Email        string `gorm:"type:varchar(256)"`
	Rating       int
	MaxRating    int
	Country      string `gorm:"type:varchar(128)"`
	University   string `gorm:"type:varchar(256)"`
	RatingTitle  string `gorm:"type:varchar(64)"`
	ProblemCount int
	// LastUpdated 水位线，毫秒数。只增不减
	LastUpdated int64
	Ctime       int64
	Utime       int64
}

type Contest struct {
	// Id 就是源站比赛号，不造代理键
	Id              int64 `gorm:"primaryKey"`
	Name            string
	StartTime       int64
	EndTime         int64
	DurationMinutes int64
	ContestType     string `gorm:"type:varchar(32)"`
	// IsBalanced 标注任务算出来之前是 NULL
	IsBalanced sql.NullBool
	Ctime      int64
	Utime      int64
}

type Problem struct {
	// Id 复合身份 "contestId_index"
	Id         string `gorm:"type:varchar(32);primaryKey"`
	Title      string
	ContestId  int64 `gorm:"index"`
	DiffRating int
	Ctime      int64
	Utime      int64
}

type Tag struct {
	Id   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(64);uniqueIndex"`
}

type ProblemTag struct {
	Id        int64  `gorm:"primaryKey;autoIncrement"`
	ProblemId string `gorm:"type:varchar(32);uniqueIndex:uidx_problem_tag"`
	TagId     int64  `gorm:"uniqueIndex:uidx_problem_tag"`
}

type Submission struct {
	// Id 源站提交号
	Id        int64  `gorm:"primaryKey"`
	ProblemId string `gorm:"type:varchar(32);index"`
	Handle    string `gorm:"type:varchar(128);index:idx_handle_problem"`
	Verdict   string `gorm:"type:varchar(64)"`
	// SubmittedAt 毫秒数
	SubmittedAt int64 `gorm:"index"`
	ExecTimeMs  int
	MemoryKB    int64
	Language    string `gorm:"type:varchar(128)"`
	Ctime       int64
	Utime       int64
}

func (Submission) TableName() string {
	return "submissions"
}

type UserContest struct {
	Id           int64  `gorm:"primaryKey;autoIncrement"`
	Handle       string `gorm:"type:varchar(128);uniqueIndex:uidx_handle_contest"`
	ContestId    int64  `gorm:"uniqueIndex:uidx_handle_contest"`
	ContestRank  int
	RatingChange int
	FinalRating  int
	Penalty      int
	Ctime        int64
	Utime        int64
}

type SyncRun struct {
	Id     int64  `gorm:"primaryKey;autoIncrement"`
	SN     string `gorm:"type:varchar(64);uniqueIndex"`
	Handle string `gorm:"type:varchar(128);index"`
	Status string `gorm:"type:varchar(16)"`
	Error  string `gorm:"type:text"`
	// Ingested 本次真正落库的提交条数
	Ingested int
	Stime    int64
	Ftime    int64
	Ctime    int64
	Utime    int64
}
