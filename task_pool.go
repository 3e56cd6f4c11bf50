// Copyright 2026 The GXCore Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gxcore

import (
	"io"
	"log/slog"
	"sync"
	"time"
)

// taskPool bounds the number of expectation evaluations running at once.
// Tasks do not return errors: evaluation failures are recorded inside the
// outcomes the tasks produce.
type taskPool struct {
	semaphore chan struct{}
	logger    *slog.Logger
	wg        sync.WaitGroup
}

func newTaskPool(poolSize int, logger *slog.Logger) *taskPool {
	if logger == nil {
		// noop logger by default
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if poolSize < 1 {
		poolSize = 1
	}

	return &taskPool{
		semaphore: make(chan struct{}, poolSize),
		logger:    logger,
	}
}

func (tp *taskPool) Enqueue(id string, task func()) {
	tp.wg.Add(1)
	go func() {
		tp.semaphore <- struct{}{}
		defer func() {
			<-tp.semaphore
			tp.wg.Done()
		}()

		tp.logger.Debug("executing task", "task_id", id)
		exeStartTime := time.Now()
		task()
		elapsed := time.Since(exeStartTime).Milliseconds()
		tp.logger.Debug("completed task", "task_id", id, "elapsed_ms", elapsed)
	}()
}

func (tp *taskPool) Join() {
	tp.wg.Wait()
}
