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

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/cpinsight/internal/analytics/internal/domain"
	"github.com/ecodeclub/ecache"
	"github.com/redis/go-redis/v9"
)

var ErrKeyNotExist = redis.Nil

type ReportCache interface {
	Get(ctx context.Context, handle string) (domain.UserReport, error)
	Set(ctx context.Context, report domain.UserReport) error
	Delete(ctx context.Context, handle string) error
}

type ReportECache struct {
	cache      ecache.Cache
	expiration time.Duration
}

func NewReportECache(c ecache.Cache) ReportCache {
	return &ReportECache{
		cache: &ecache.NamespaceCache{
			Namespace: "analytics:",
			C:         c,
		},
		expiration: time.Minute * 15,
	}
}

func (c *ReportECache) Get(ctx context.Context, handle string) (domain.UserReport, error) {
	var report domain.UserReport
	err := c.cache.Get(ctx, c.key(handle)).JSONScan(&report)
	return report, err
}

func (c *ReportECache) Set(ctx context.Context, report domain.UserReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, c.key(report.BasicInfo.Handle), data, c.expiration)
}

func (c *ReportECache) Delete(ctx context.Context, handle string) error {
	_, err := c.cache.Delete(ctx, c.key(handle))
	return err
}

func (c *ReportECache) key(handle string) string {
	return fmt.Sprintf("report:%s", handle)
}
