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

// Command ndeftag builds and inspects Type 2 tag memory images without any
// reader hardware. Build mode assembles records from flags into a tag image
// file; dump mode parses an existing image and prints its TLV and record
// structure.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	ndeftag "github.com/ZaparooProject/go-ndeftag"
)

type config struct {
	dumpPath string
	outPath  string
	uri      string
	text     string
	external string
	size     int
	noTerm   bool
	debug    bool
}

// Package-level flag variables
var (
	flagDump     string
	flagOut      string
	flagURI      string
	flagText     string
	flagExternal string
	flagSize     int
	flagNoTerm   bool
	flagDebug    bool
)

func init() {
	flag.StringVar(&flagDump, "dump", "", "Parse a tag image file and print its structure")
	flag.StringVar(&flagOut, "out", "", "Write a built tag image to this file")
	flag.StringVar(&flagURI, "uri", "", "Add a URI record to the image")
	flag.StringVar(&flagText, "text", "", "Add a text record to the image")
	flag.StringVar(&flagExternal, "ext", "",
		"Add an external record as type=payload (e.g. android.com:pkg=com.tencent.mm)")
	flag.IntVar(&flagSize, "size", 256, "Declared tag capacity in bytes (rounded up to 8-byte units)")
	flag.BoolVar(&flagNoTerm, "no-terminator", false, "Do not append a terminator TLV")
	flag.BoolVar(&flagDebug, "debug", false, "Enable debug output")
}

func parseConfig() *config {
	return &config{
		dumpPath: flagDump,
		outPath:  flagOut,
		uri:      flagURI,
		text:     flagText,
		external: flagExternal,
		size:     flagSize,
		noTerm:   flagNoTerm,
		debug:    flagDebug,
	}
}

func main() {
	flag.Parse()
	cfg := parseConfig()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var err error
	switch {
	case cfg.dumpPath != "":
		err = dumpImage(cfg.dumpPath)
	case cfg.outPath != "":
		err = buildImage(cfg)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("ndeftag failed")
	}
}

// buildRecords assembles the records requested on the command line, in the
// fixed order uri, text, external.
func buildRecords(cfg *config) ([]*ndeftag.Record, error) {
	var records []*ndeftag.Record

	if cfg.uri != "" {
		rec, err := ndeftag.NewRecordBuilder().
			TNF(ndeftag.TNFWellKnown).
			Payload(ndeftag.NewURIPayload(cfg.uri)).
			Build()
		if err != nil {
			return nil, fmt.Errorf("build URI record: %w", err)
		}
		records = append(records, rec)
	}

	if cfg.text != "" {
		rec, err := ndeftag.NewRecordBuilder().
			TNF(ndeftag.TNFWellKnown).
			Payload(ndeftag.NewTextPayload(cfg.text)).
			Build()
		if err != nil {
			return nil, fmt.Errorf("build text record: %w", err)
		}
		records = append(records, rec)
	}

	if cfg.external != "" {
		extType, payload, ok := strings.Cut(cfg.external, "=")
		if !ok {
			return nil, fmt.Errorf("invalid -ext value %q, want type=payload", cfg.external)
		}
		rec, err := ndeftag.NewRecordBuilder().
			TNF(ndeftag.TNFExternal).
			Payload(ndeftag.NewExternalPayload([]byte(extType), []byte(payload))).
			Build()
		if err != nil {
			return nil, fmt.Errorf("build external record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func buildImage(cfg *config) error {
	records, err := buildRecords(cfg)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.New("nothing to write: pass at least one of -uri, -text, -ext")
	}

	tlv, err := ndeftag.NDEFMessageTLV(ndeftag.NewMessage(records...))
	if err != nil {
		return fmt.Errorf("serialize message: %w", err)
	}

	builder := ndeftag.NewType2TagBuilder().
		SizeBytes(cfg.size).
		AddTLV(tlv)
	if !cfg.noTerm {
		builder.AddTLV(ndeftag.TerminatorTLV())
	}

	image, err := builder.Build().Bytes()
	if err != nil {
		return fmt.Errorf("serialize tag image: %w", err)
	}

	if err := os.WriteFile(cfg.outPath, image, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cfg.outPath, err)
	}

	log.Info().
		Str("path", cfg.outPath).
		Int("records", len(records)).
		Int("bytes", len(image)).
		Msg("wrote tag image")
	return nil
}

func dumpImage(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	tag, err := ndeftag.ParseType2Tag(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	log.Info().
		Str("version", fmt.Sprintf("0x%02X", tag.Version())).
		Int("capacityBytes", tag.CapacityBytes()).
		Str("access", fmt.Sprintf("0x%02X", tag.Access())).
		Msg("capability container")

	for i, tlv := range tag.TLVs() {
		log.Info().
			Int("index", i).
			Str("type", tlvTypeName(tlv.Type())).
			Int("length", len(tlv.Value())).
			Msg("TLV entry")
		if tlv.Type() == ndeftag.TLVTypeNDEFMessage {
			if err := dumpMessage(tlv.Value()); err != nil {
				return err
			}
		}
	}
	return nil
}

func dumpMessage(data []byte) error {
	msg, err := ndeftag.DecodeMessage(data)
	if err != nil {
		return fmt.Errorf("decode NDEF message: %w", err)
	}

	for i, rec := range msg.Records() {
		event := log.Info().
			Int("record", i).
			Stringer("tnf", rec.TNF()).
			Str("type", string(rec.Type())).
			Int("payloadLen", len(rec.Payload()))
		event.Str("value", describePayload(rec))
		event.Msg("NDEF record")
	}
	return nil
}

// describePayload renders a friendly value for known payload kinds and
// falls back to the raw payload length for the rest.
func describePayload(rec *ndeftag.Record) string {
	payload, err := ndeftag.DecodePayload(rec)
	if err != nil {
		log.Debug().Err(err).Msg("no typed payload view")
		return fmt.Sprintf("(%d raw bytes)", len(rec.Payload()))
	}

	switch p := payload.(type) {
	case *ndeftag.URIPayload:
		return p.FullURI()
	case *ndeftag.TextPayload:
		return p.Text()
	case *ndeftag.ExternalPayload:
		return string(p.PayloadBytes())
	case *ndeftag.MIMEPayload:
		return p.MediaType()
	default:
		return fmt.Sprintf("(%d raw bytes)", len(rec.Payload()))
	}
}

func tlvTypeName(t ndeftag.TLVType) string {
	switch t {
	case ndeftag.TLVTypeNull:
		return "NULL"
	case ndeftag.TLVTypeLockControl:
		return "LOCK_CONTROL"
	case ndeftag.TLVTypeMemoryControl:
		return "MEMORY_CONTROL"
	case ndeftag.TLVTypeNDEFMessage:
		return "NDEF_MESSAGE"
	case ndeftag.TLVTypeProprietary:
		return "PROPRIETARY"
	case ndeftag.TLVTypeTerminator:
		return "TERMINATOR"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02X)", byte(t))
	}
}
