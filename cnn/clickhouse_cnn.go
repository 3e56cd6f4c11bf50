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

package cnn

import (
	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/ynaung24/gxcore"
)

func NewClickhouseConnection(connectionCfg gxcore.ConnectionConfig) (driver.Conn, error) {
	cnn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{connectionCfg.Host},
		Auth: clickhouse.Auth{
			Database: connectionCfg.Database,
			Username: connectionCfg.Username,
			Password: connectionCfg.Password,
		},
		MaxOpenConns: 16,
		MaxIdleConns: 16,
	})
	return cnn, err
}
