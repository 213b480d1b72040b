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

package web

import (
	"github.com/ecodeclub/cpinsight/internal/ingest/internal/errs"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	sourceErrorResult = ginx.Result{
		Code: errs.SyncSourceError.Code,
		Msg:  errs.SyncSourceError.Msg,
	}
	invalidHandleResult = ginx.Result{
		Code: errs.InvalidHandleErr.Code,
		Msg:  errs.InvalidHandleErr.Msg,
	}
)
