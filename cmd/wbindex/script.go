// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/petermattis/wbindex"
)

// session holds the state a script file drives: the fake base store and the
// indexed batch accumulating pending mutations against it.
type session struct {
	base  *baseStore
	batch *wbindex.IndexedBatch
}

func newSession() *session {
	return &session{base: &baseStore{}, batch: wbindex.NewIndexedBatch(nil)}
}

// runScript reads commands from r, one per line, executing each against the
// session and writing any output to w. Blank lines and lines starting with
// '#' are ignored.
//
// Recognized commands:
//
//	base put <key> <value>           insert/overwrite a row in the base store
//	batch put <cf> <key> <value>     append a Put to the pending batch
//	batch delete <cf> <key>          append a Delete to the pending batch
//	batch merge <cf> <key> <operand> append a Merge to the pending batch
//	get <cf> <key>                   run GetFromBatch and print the outcome
//	scan <cf> [reverse]              drive the Merging Iterator and print rows
func runScript(r io.Reader, w io.Writer) error {
	s := newSession()
	scanner := bufio.NewScanner(r)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if err := s.dispatch(fields, w); err != nil {
			return fmt.Errorf("line %d: %q: %w", lineNum, line, err)
		}
	}
	return scanner.Err()
}

func (s *session) dispatch(fields []string, w io.Writer) error {
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "base":
		return s.dispatchBase(fields[1:])
	case "batch":
		return s.dispatchBatch(fields[1:])
	case "get":
		return s.get(fields[1:], w)
	case "scan":
		return s.scan(fields[1:], w)
	default:
		return fmt.Errorf("unrecognized command %q", fields[0])
	}
}

func (s *session) dispatchBase(fields []string) error {
	if len(fields) != 3 || fields[0] != "put" {
		return fmt.Errorf("usage: base put <key> <value>")
	}
	s.base.put([]byte(fields[1]), []byte(fields[2]))
	return nil
}

func (s *session) dispatchBatch(fields []string) error {
	if len(fields) < 1 {
		return fmt.Errorf("usage: batch <put|delete|merge> <cf> <key> [value]")
	}
	switch fields[0] {
	case "put":
		if len(fields) != 4 {
			return fmt.Errorf("usage: batch put <cf> <key> <value>")
		}
		cf, err := parseCF(fields[1])
		if err != nil {
			return err
		}
		s.batch.Put(cf, []byte(fields[2]), []byte(fields[3]))
	case "delete":
		if len(fields) != 3 {
			return fmt.Errorf("usage: batch delete <cf> <key>")
		}
		cf, err := parseCF(fields[1])
		if err != nil {
			return err
		}
		s.batch.Delete(cf, []byte(fields[2]))
	case "merge":
		if len(fields) != 4 {
			return fmt.Errorf("usage: batch merge <cf> <key> <operand>")
		}
		cf, err := parseCF(fields[1])
		if err != nil {
			return err
		}
		s.batch.Merge(cf, []byte(fields[2]), []byte(fields[3]))
	default:
		return fmt.Errorf("unrecognized batch command %q", fields[0])
	}
	return nil
}

func (s *session) get(fields []string, w io.Writer) error {
	if len(fields) != 2 {
		return fmt.Errorf("usage: get <cf> <key>")
	}
	cf, err := parseCF(fields[0])
	if err != nil {
		return err
	}
	res, err := s.batch.Get(cf, []byte(fields[1]))
	if err != nil {
		return err
	}
	switch res.Result {
	case wbindex.Found:
		fmt.Fprintf(w, "%s => %s\n", fields[1], res.Value)
	case wbindex.MergeInProgress:
		fmt.Fprintf(w, "%s => merge-in-progress (%d operand(s) unresolved against base)\n", fields[1], len(res.Operands))
	default:
		fmt.Fprintf(w, "%s => %s\n", fields[1], res.Result)
	}
	return nil
}

func (s *session) scan(fields []string, w io.Writer) error {
	if len(fields) < 1 || len(fields) > 2 {
		return fmt.Errorf("usage: scan <cf> [reverse]")
	}
	cf, err := parseCF(fields[0])
	if err != nil {
		return err
	}
	reverse := len(fields) == 2 && fields[1] == "reverse"

	it := s.batch.NewIterator(cf, s.base.newIter(), nil)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"key", "value"})

	advance := it.Next
	ok := it.SeekToFirst()
	if reverse {
		advance = it.Prev
		ok = it.SeekToLast()
	}
	for ; ok; ok = advance() {
		table.Append([]string{string(it.Key()), string(it.Value())})
	}
	if err := it.Error(); err != nil {
		return err
	}
	table.Render()
	return nil
}

func parseCF(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid column family %q: %w", s, err)
	}
	return uint32(v), nil
}
