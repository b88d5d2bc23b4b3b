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

import (
	"fmt"

	"github.com/ZaparooProject/go-ndeftag/internal/syncutil"
)

// PayloadDecoderFunc reconstructs a typed payload view from a decoded
// record. It must not mutate the record and must fail when the record does
// not match the payload kind.
type PayloadDecoderFunc func(*Record) (RecordPayload, error)

// payloadKey dispatches decoders on TNF plus record type. An empty record
// type registers a fallback for the whole TNF, used by kinds whose type
// field is application-defined (External, MimeMedia).
type payloadKey struct {
	recordType string
	tnf        TNF
}

var payloadDecoders = struct {
	byKey map[payloadKey]PayloadDecoderFunc
	mu    syncutil.RWMutex
}{
	byKey: make(map[payloadKey]PayloadDecoderFunc),
}

// RegisterPayloadDecoder registers a decoder for records with the given TNF
// and record type, replacing any previous registration. Passing an empty
// recordType registers a fallback for every record of that TNF that has no
// exact match. New payload kinds can be plugged in without touching the
// record codec.
func RegisterPayloadDecoder(tnf TNF, recordType string, fn PayloadDecoderFunc) {
	payloadDecoders.mu.Lock()
	defer payloadDecoders.mu.Unlock()
	payloadDecoders.byKey[payloadKey{tnf: tnf, recordType: recordType}] = fn
}

// DecodePayload reconstructs the typed payload of a decoded record using
// the registered decoders. Records with no matching decoder fail with
// ErrInvalidRecordType.
func DecodePayload(rec *Record) (RecordPayload, error) {
	payloadDecoders.mu.RLock()
	fn, ok := payloadDecoders.byKey[payloadKey{tnf: rec.TNF(), recordType: string(rec.Type())}]
	if !ok {
		fn, ok = payloadDecoders.byKey[payloadKey{tnf: rec.TNF()}]
	}
	payloadDecoders.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: no payload decoder for TNF %s type %q",
			ErrInvalidRecordType, rec.TNF(), string(rec.Type()))
	}
	return fn(rec)
}

func init() {
	RegisterPayloadDecoder(TNFWellKnown, RTDText, func(rec *Record) (RecordPayload, error) {
		return TextPayloadFromRecord(rec)
	})
	RegisterPayloadDecoder(TNFWellKnown, RTDURI, func(rec *Record) (RecordPayload, error) {
		return URIPayloadFromRecord(rec)
	})
	RegisterPayloadDecoder(TNFWellKnown, RTDSmartPoster, func(rec *Record) (RecordPayload, error) {
		return SmartPosterPayloadFromRecord(rec)
	})
	RegisterPayloadDecoder(TNFExternal, "", func(rec *Record) (RecordPayload, error) {
		return ExternalPayloadFromRecord(rec)
	})
	RegisterPayloadDecoder(TNFMimeMedia, "", func(rec *Record) (RecordPayload, error) {
		return MIMEPayloadFromRecord(rec)
	})
}
