// Copyright 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ndeftag

import "errors"

// Codec errors. All are surfaced immediately to the caller; none are
// retryable, since reparsing the same bytes cannot change the outcome.
var (
	// Record errors
	ErrInvalidTNF         = errors.New("ndeftag: invalid TNF value")
	ErrInvalidRecordType  = errors.New("ndeftag: invalid record type")
	ErrInvalidID          = errors.New("ndeftag: invalid record ID")
	ErrInvalidPayload     = errors.New("ndeftag: invalid record payload")
	ErrInvalidFlags       = errors.New("ndeftag: invalid record flags")
	ErrInvalidEmptyRecord = errors.New("ndeftag: invalid empty record")
	ErrIncompleteRecord   = errors.New("ndeftag: incomplete record data")

	// Message errors
	ErrInvalidMessage = errors.New("ndeftag: invalid message")

	// Payload adapter errors
	ErrInvalidEncoding = errors.New("ndeftag: invalid text encoding")
	ErrInvalidMime     = errors.New("ndeftag: invalid MIME type")

	// Tag errors
	ErrInvalidTag        = errors.New("ndeftag: invalid tag data")
	ErrInvalidMemorySize = errors.New("ndeftag: invalid tag memory size")
)
