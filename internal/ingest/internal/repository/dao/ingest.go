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

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrDataNotFound = gorm.ErrRecordNotFound

type IngestDAO interface {
	// Transaction 整次同步的事务范围，fn 里拿到的是事务版 DAO
	Transaction(ctx context.Context, fn func(txDAO IngestDAO) error) error

	UpsertUser(ctx context.Context, u User) error
	FindUserByHandle(ctx context.Context, handle string) (User, error)
	// Watermark 用户没有水位线的时候返回 0
	Watermark(ctx context.Context, handle string) (int64, error)
	// AdvanceWatermark 只向前推，传一个更小的时间戳等于没传
	AdvanceWatermark(ctx context.Context, handle string, ts int64) error

	UpsertContest(ctx context.Context, c Contest) error
	HasContest(ctx context.Context, id int64) (bool, error)
	UpsertProblem(ctx context.Context, p Problem) error
	// GetOrCreateTag 两步式的插入加查询。并发撞上唯一索引算良性冲突，
	// 内部会把查询重试一次
	GetOrCreateTag(ctx context.Context, name string) (int64, error)
	CreateProblemTag(ctx context.Context, problemID string, tagID int64) error
	UpsertSubmission(ctx context.Context, s Submission) error
	UpsertUserContest(ctx context.Context, uc UserContest) error

	CreateRun(ctx context.Context, r SyncRun) error
	FinishRun(ctx context.Context, sn string, status string, runErr string, ingested int) error
}

type GORMIngestDAO struct {
	db *egorm.Component
}

func NewGORMIngestDAO(db *egorm.Component) IngestDAO {
	return &GORMIngestDAO{db: db}
}

func (d *GORMIngestDAO) Transaction(ctx context.Context, fn func(txDAO IngestDAO) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GORMIngestDAO{db: tx})
	})
}

func (d *GORMIngestDAO) UpsertUser(ctx context.Context, u User) error {
	now := time.Now().UnixMilli()
	u.Ctime = now
	u.Utime = now
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "handle"}},
		// 水位线不在这里动，它只走 AdvanceWatermark
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "rating", "max_rating", "country",
			"university", "rating_title", "problem_count", "utime",
		}),
	}).Create(&u).Error
}

func (d *GORMIngestDAO) FindUserByHandle(ctx context.Context, handle string) (User, error) {
	var u User
	err := d.db.WithContext(ctx).First(&u, "handle = ?", handle).Error
	return u, err
}

func (d *GORMIngestDAO) Watermark(ctx context.Context, handle string) (int64, error) {
	var u User
	err := d.db.WithContext(ctx).Select("last_updated").
		First(&u, "handle = ?", handle).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	return u.LastUpdated, err
}

func (d *GORMIngestDAO) AdvanceWatermark(ctx context.Context, handle string, ts int64) error {
	return d.db.WithContext(ctx).Model(&User{}).
		Where("handle = ? AND last_updated < ?", handle, ts).
		Updates(map[string]any{
			"last_updated": ts,
			"utime":        time.Now().UnixMilli(),
		}).Error
}

func (d *GORMIngestDAO) UpsertContest(ctx context.Context, c Contest) error {
	now := time.Now().UnixMilli()
	c.Ctime = now
	c.Utime = now
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		// 比赛除了展示名和派生标签都是不可变的
		DoUpdates: clause.AssignmentColumns([]string{"name", "utime"}),
	}).Create(&c).Error
}

func (d *GORMIngestDAO) HasContest(ctx context.Context, id int64) (bool, error) {
	var cnt int64
	err := d.db.WithContext(ctx).Model(&Contest{}).Where("id = ?", id).Count(&cnt).Error
	return cnt > 0, err
}

func (d *GORMIngestDAO) UpsertProblem(ctx context.Context, p Problem) error {
	now := time.Now().UnixMilli()
	p.Ctime = now
	p.Utime = now
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "utime"}),
	}).Create(&p).Error
}

func (d *GORMIngestDAO) GetOrCreateTag(ctx context.Context, name string) (int64, error) {
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		DoNothing: true,
	}).Create(&Tag{Name: name}).Error
	if err != nil {
		return 0, err
	}
	var t Tag
	err = d.db.WithContext(ctx).First(&t, "name = ?", name).Error
	if err == gorm.ErrRecordNotFound {
		// 撞上了别的写入者，良性冲突，重查一次
		err = d.db.WithContext(ctx).First(&t, "name = ?", name).Error
	}
	return t.Id, err
}

func (d *GORMIngestDAO) CreateProblemTag(ctx context.Context, problemID string, tagID int64) error {
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		DoNothing: true,
	}).Create(&ProblemTag{ProblemId: problemID, TagId: tagID}).Error
}

func (d *GORMIngestDAO) UpsertSubmission(ctx context.Context, s Submission) error {
	now := time.Now().UnixMilli()
	s.Ctime = now
	s.Utime = now
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		// 身份字段（id、handle、problem_id）首插之后永不改写
		DoUpdates: clause.AssignmentColumns([]string{
			"verdict", "submitted_at", "exec_time_ms", "memory_kb", "language", "utime",
		}),
	}).Create(&s).Error
}

func (d *GORMIngestDAO) UpsertUserContest(ctx context.Context, uc UserContest) error {
	now := time.Now().UnixMilli()
	uc.Ctime = now
	uc.Utime = now
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "handle"}, {Name: "contest_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"contest_rank", "rating_change", "final_rating", "penalty", "utime",
		}),
	}).Create(&uc).Error
}

func (d *GORMIngestDAO) CreateRun(ctx context.Context, r SyncRun) error {
	now := time.Now().UnixMilli()
	r.Ctime = now
	r.Utime = now
	return d.db.WithContext(ctx).Create(&r).Error
}

func (d *GORMIngestDAO) FinishRun(ctx context.Context, sn string, status string, runErr string, ingested int) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Model(&SyncRun{}).
		Where("sn = ?", sn).
		Updates(map[string]any{
			"status":   status,
			"error":    runErr,
			"ingested": ingested,
			"ftime":    now,
			"utime":    now,
		}).Error
}
