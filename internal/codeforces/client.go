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

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ecodeclub/ekit/net/httpx"
	"github.com/ecodeclub/ekit/retry"
	"github.com/gotomicro/ego/core/elog"
	"github.com/pkg/errors"
)

// ErrSourceUnavailable 上游接口不可用，重试之后依旧失败
var ErrSourceUnavailable = errors.New("数据源不可用")

//go:generate mockgen -source=./client.go -package=cfmocks -destination=mocks/client.mock.go Client
type Client interface {
	UserInfo(ctx context.Context, handle string) (User, error)
	UserStatus(ctx context.Context, handle string) ([]Submission, error)
	UserRating(ctx context.Context, handle string) ([]RatingChange, error)
	ContestStandings(ctx context.Context, contestID int64) (Contest, error)
}

type client struct {
	baseURL         string
	httpClient      *http.Client
	initialInterval time.Duration
	maxInterval     time.Duration
	maxRetries      int32

	// 限流：源站对匿名调用没有配额，但是连续打满会被封，
	// 所以保证两次调用之间至少间隔 minInterval
	mu          sync.Mutex
	minInterval time.Duration
	lastCall    time.Time

	logger *elog.Component
}

type Config struct {
	BaseURL         string        `yaml:"baseURL"`
	Timeout         time.Duration `yaml:"timeout"`
	MinInterval     time.Duration `yaml:"minInterval"`
	InitialInterval time.Duration `yaml:"initialInterval"`
	MaxInterval     time.Duration `yaml:"maxInterval"`
	MaxRetries      int32         `yaml:"maxRetries"`
}

func NewClient(cfg Config) Client {
	return &client{
		baseURL:         cfg.BaseURL,
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		minInterval:     cfg.MinInterval,
		initialInterval: cfg.InitialInterval,
		maxInterval:     cfg.MaxInterval,
		maxRetries:      cfg.MaxRetries,
		logger:          elog.DefaultLogger,
	}
}

func (c *client) UserInfo(ctx context.Context, handle string) (User, error) {
	var users []User
	err := c.call(ctx, "user.info", map[string]string{"handles": handle}, &users)
	if err != nil {
		return User{}, err
	}
	if len(users) == 0 {
		return User{}, fmt.Errorf("源数据里没有用户 %s", handle)
	}
	return users[0], nil
}

func (c *client) UserStatus(ctx context.Context, handle string) ([]Submission, error) {
	var subs []Submission
	err := c.call(ctx, "user.status", map[string]string{"handle": handle}, &subs)
	return subs, err
}

func (c *client) UserRating(ctx context.Context, handle string) ([]RatingChange, error) {
	var changes []RatingChange
	err := c.call(ctx, "user.rating", map[string]string{"handle": handle}, &changes)
	return changes, err
}

func (c *client) ContestStandings(ctx context.Context, contestID int64) (Contest, error) {
	var res standingsResult
	err := c.call(ctx, "contest.standings", map[string]string{
		"contestId": strconv.FormatInt(contestID, 10),
		// 只要比赛元数据，榜单一行都不要
		"count": "1",
	}, &res)
	return res.Contest, err
}

// call 请求一个接口并解出 result。网络错误按退避策略重试，
// 源站明确返回 FAILED 视为不可重试
func (c *client) call(ctx context.Context, method string, params map[string]string, result any) error {
	strategy, err := retry.NewExponentialBackoffRetryStrategy(c.initialInterval, c.maxInterval, c.maxRetries)
	if err != nil {
		return err
	}
	var lastErr error
	for {
		lastErr = c.callOnce(ctx, method, params, result)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, ErrSourceUnavailable) {
			return lastErr
		}
		d, ok := strategy.Next()
		if !ok {
			c.logger.Error("请求源站超过最大重试次数",
				elog.String("method", method),
				elog.FieldErr(lastErr))
			return lastErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
}

func (c *client) callOnce(ctx context.Context, method string, params map[string]string, result any) error {
	c.throttle()
	// baseURL 带不带末尾斜杠都接受
	target := strings.TrimSuffix(c.baseURL, "/") + "/" + method
	req := httpx.NewRequest(ctx, http.MethodGet, target).Client(c.httpClient)
	for k, v := range params {
		req = req.AddParam(k, v)
	}
	var env envelope
	err := req.Do().JSONScan(&env)
	if err != nil {
		return errors.Wrapf(ErrSourceUnavailable, "请求 %s 失败: %v", method, err)
	}
	if env.Status != "OK" {
		// 源站对非法 handle 之类的错误也走这个分支，不值得重试
		return fmt.Errorf("源站返回失败: %s: %s", method, env.Comment)
	}
	return json.Unmarshal(env.Result, result)
}

func (c *client) throttle() {
	if c.minInterval <= 0 {
		return
	}
	c.mu.Lock()
	wait := c.minInterval - time.Since(c.lastCall)
	if wait > 0 {
		time.Sleep(wait)
	}
	c.lastCall = time.Now()
	c.mu.Unlock()
}
