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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemID(t *testing.T) {
	testCases := []struct {
		name      string
		contestID int64
		index     string
		want      string
		wantErr   error
	}{
		{
			name:      "正常记录",
			contestID: 1234,
			index:     "A",
			want:      "1234_A",
		},
		{
			name:      "两位序号",
			contestID: 1,
			index:     "B2",
			want:      "1_B2",
		},
		{
			name:    "缺比赛号",
			index:   "A",
			wantErr: ErrRecordMalformed,
		},
		{
			name:      "缺题目序号",
			contestID: 1234,
			wantErr:   ErrRecordMalformed,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ProblemID(tc.contestID, tc.index)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, id)
		})
	}
}

func TestProblemID_Deterministic(t *testing.T) {
	first, err := ProblemID(1234, "A")
	require.NoError(t, err)
	second, err := ProblemID(1234, "A")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalizeVerdict(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "OK 映射成 Accepted", input: "OK", want: "Accepted"},
		{name: "缺失映射成 UNKNOWN", input: "", want: "UNKNOWN"},
		{name: "其余原样透传", input: "WRONG_ANSWER", want: "WRONG_ANSWER"},
		{name: "超时原样透传", input: "TIME_LIMIT_EXCEEDED", want: "TIME_LIMIT_EXCEEDED"},
		{name: "Accepted 本身不变", input: "Accepted", want: "Accepted"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeVerdict(tc.input))
		})
	}
}

func TestClassifyContest(t *testing.T) {
	testCases := []struct {
		name        string
		contestName string
		want        string
	}{
		{name: "Div2", contestName: "Codeforces Round 900 (Div. 2)", want: "Div. 2"},
		{name: "教育场", contestName: "Educational Codeforces Round 160", want: "Educational"},
		{name: "全球场", contestName: "CodeTON Round 7", want: "CodeTON"},
		{name: "其他", contestName: "Some Mirror Contest", want: "Other"},
		// Div. 1 在列表里排前面，混合场按先匹配到的算
		{name: "混合场", contestName: "Codeforces Round 100 (Div. 1 + Div. 2)", want: "Div. 1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyContest(tc.contestName))
		})
	}
}

func TestRatingTitle(t *testing.T) {
	testCases := []struct {
		rating int
		want   string
	}{
		{rating: 0, want: "Newbie"},
		{rating: 1199, want: "Newbie"},
		{rating: 1200, want: "Pupil"},
		{rating: 1500, want: "Specialist"},
		{rating: 1899, want: "Expert"},
		{rating: 2000, want: "Candidate Master"},
		{rating: 2350, want: "International Master"},
		{rating: 2500, want: "Grandmaster"},
		{rating: 2900, want: "International Grandmaster"},
		{rating: 3500, want: "Legendary Grandmaster"},
		{rating: 4100, want: "Tourist"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, RatingTitle(tc.rating))
		})
	}
}
