// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package report defines the parsed form of an instrument report: one
// metadata record, an ordered list of calibration entries and an ordered list
// of result tables.
//
// Why a separate model package?
//
// The parser, the calibration grammars registered from the modules directory
// and the export writer all need the same vocabulary, but none of them should
// depend on each other. Keeping the types here lets a grammar module build a
// CalibrationEntry without importing the parser, and lets the writer dump a
// Document without knowing how it was scanned.
//
// Every value in this package is built once by the parser and treated as
// read-only afterwards.
package report
