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

/*
Package ndeftag encodes and decodes NDEF (NFC Data Exchange Format) records
and messages, and lays NDEF messages out in Type 2 tag memory images.

The package is a pure in-memory codec: it performs no I/O and talks to no
hardware. It is intended for applications that prepare data for NFC tags or
interpret data read from them, such as provisioning tools and test
harnesses.

Features:
  - Record builder with automatic short-record detection and validation
  - Message framing with begin/end chaining flags across multiple records
  - Payload adapters for URI (with NFC Forum prefix abbreviation), text,
    smart poster, external and MIME record kinds, plus a pluggable decoder
    registry for custom kinds
  - Type 2 tag images: capability container plus lock control, memory
    control, NDEF message, NULL and terminator TLV entries, with capacity
    checks against the declared tag size

Record chunking (the CF continuation flag) is not supported: chunked records
decode as separate records and are never reassembled.

Basic usage:

	rec, err := ndeftag.NewRecordBuilder().
	    TNF(ndeftag.TNFWellKnown).
	    Payload(ndeftag.NewURIPayload("https://zaparoo.org")).
	    Build()
	if err != nil {
	    return err
	}

	msg := ndeftag.NewMessage(rec)
	tlv, err := ndeftag.NDEFMessageTLV(msg)
	if err != nil {
	    return err
	}

	image, err := ndeftag.NewType2TagBuilder().
	    SizeBytes(256).
	    AddTLV(tlv).
	    AddTLV(ndeftag.TerminatorTLV()).
	    Build().
	    Bytes()

All operations are synchronous transformations over owned byte buffers;
values are safe to use concurrently across independent buffers.
*/
package ndeftag
