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

package models

// Address result statuses
const (
	StatusFound    = "found"
	StatusMissing  = "missing"
	StatusFallback = "fallback"
	StatusError    = "error"
)

// AddressResult is the resolved deposit address for one application asset
type AddressResult struct {
	Symbol     string  `json:"symbol"`
	Network    string  `json:"network"`
	Status     string  `json:"status"`
	WalletId   string  `json:"wallet_id,omitempty"`
	WalletName string  `json:"wallet_name,omitempty"`
	WalletTier string  `json:"wallet_tier,omitempty"`
	Address    string  `json:"address,omitempty"`
	Memo       *string `json:"memo"`
	Note       string  `json:"note,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// HasAddress reports whether the result carries a usable deposit address
func (r AddressResult) HasAddress() bool {
	return r.Address != "" && (r.Status == StatusFound || r.Status == StatusFallback)
}
