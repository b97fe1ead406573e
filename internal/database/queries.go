/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

const (
	// Run queries
	queryInsertRun = `
		INSERT INTO generation_runs (id, mode, started_at)
		VALUES (?, ?, ?)`

	queryCompleteRun = `
		UPDATE generation_runs
		SET completed_at = ?, total = ?, found = ?, missing = ?, errors = ?
		WHERE id = ? AND completed_at IS NULL`

	queryGetRun = `
		SELECT id, mode, started_at, completed_at, total, found, missing, errors
		FROM generation_runs
		WHERE id = ?`

	queryGetLatestRun = `
		SELECT id, mode, started_at, completed_at, total, found, missing, errors
		FROM generation_runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT 1`

	queryAddressColumns = `SELECT name FROM pragma_table_info('deposit_addresses')`

	// Address queries
	queryInsertAddress = `
		INSERT INTO deposit_addresses (id, run_id, symbol, network, status, wallet_id, wallet_name, wallet_tier, address, memo, note, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryGetRunAddresses = `
		SELECT id, run_id, symbol, network, status, wallet_id, wallet_name, wallet_tier, address, memo, note, error, created_at
		FROM deposit_addresses
		WHERE run_id = ?
		ORDER BY symbol, rowid`
)
