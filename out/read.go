// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"strings"

	"github.com/cpmech/gosl/chk"
)

// ReadResults reads one result file, detecting the encoding from its leading
// record, and returns the parsed ResultSet. A failing read surfaces as an
// error, never as a panic
func ReadResults(path string) (res *ResultSet, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read result file %q: %v", path, err)
	}
	return Parse(b)
}

// Parse decodes raw result-file content, detecting the encoding from the
// first non-blank line: field-format files open with a begin record (key 1C)
// whereas tabular-print files do not
func Parse(b []byte) (res *ResultSet, err error) {
	for _, raw := range strings.Split(string(b), "\n") {
		f := strings.Fields(strings.TrimRight(raw, "\r"))
		if len(f) == 0 {
			continue
		}
		if f[0] == "1C" || f[0] == "100CL" {
			return ParseFrd(b)
		}
		return ParseDat(b)
	}
	return nil, &ParseError{Line: 1, Byte: 0, Msg: "empty result file"}
}
