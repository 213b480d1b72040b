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
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:         baseURL,
		Timeout:         time.Second,
		InitialInterval: time.Millisecond,
		MaxInterval:     10 * time.Millisecond,
		MaxRetries:      3,
	}
}

func TestClient_UserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user.info", r.URL.Path)
		assert.Equal(t, "tourist", r.URL.Query().Get("handles"))
		_, _ = w.Write([]byte(`{"status":"OK","result":[{"handle":"tourist","rating":3800,"maxRating":4000,"rank":"legendary grandmaster","country":"Belarus"}]}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL + "/"))
	u, err := c.UserInfo(t.Context(), "tourist")
	require.NoError(t, err)
	assert.Equal(t, User{
		Handle:    "tourist",
		Rating:    3800,
		MaxRating: 4000,
		Rank:      "legendary grandmaster",
		Country:   "Belarus",
	}, u)
}

func TestClient_UserStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","result":[
{"id":1,"creationTimeSeconds":1700000000,"verdict":"OK","timeConsumedMillis":15,"memoryConsumedBytes":2048,
 "programmingLanguage":"GNU C++20","problem":{"contestId":1,"index":"A","name":"Theatre Square","rating":1000,"tags":["math"]}},
{"id":2,"creationTimeSeconds":1690000000,"timeConsumedMillis":30,"memoryConsumedBytes":4096,
 "programmingLanguage":"Python 3","problem":{"contestId":1,"index":"B","name":"Spreadsheet","tags":["implementation","math"]}}]}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL + "/"))
	subs, err := c.UserStatus(t.Context(), "tourist")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, int64(1), subs[0].ID)
	assert.Equal(t, "OK", subs[0].Verdict)
	assert.Equal(t, int64(1), subs[0].Problem.ContestID)
	assert.Equal(t, "A", subs[0].Problem.Index)
	// verdict 缺失时保持零值，规范化交给上层
	assert.Equal(t, "", subs[1].Verdict)
	assert.Equal(t, 0, subs[1].Problem.Rating)
}

// 线上配置的 baseURL 不带末尾斜杠，拼出来的路径也得是对的
func TestClient_BaseURLWithoutTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user.status", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"OK","result":[]}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL + "/api"))
	subs, err := c.UserStatus(t.Context(), "tourist")
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestClient_SourceFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":"FAILED","comment":"handles: User with handle nobody not found"}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL + "/"))
	_, err := c.UserInfo(t.Context(), "nobody")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "not found")
}

func TestClient_RetryThenSucceed(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			// 模拟网络层坏响应
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("bad gateway"))
			return
		}
		_, _ = w.Write([]byte(`{"status":"OK","result":[]}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL + "/"))
	subs, err := c.UserStatus(t.Context(), "tourist")
	require.NoError(t, err)
	assert.Empty(t, subs)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_RetryExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL + "/"))
	_, err := c.UserRating(t.Context(), "tourist")
	require.ErrorIs(t, err, ErrSourceUnavailable)
	// 初次调用 + maxRetries 次重试
	assert.Equal(t, int32(4), calls.Load())
}

func TestClient_Throttle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","result":[]}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL + "/")
	cfg.MinInterval = 50 * time.Millisecond
	c := NewClient(cfg)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := c.UserStatus(t.Context(), "tourist")
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}
