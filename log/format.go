// Copyright 2016 The go-probeum Authors
// This file is part of the go-probeum library.
//
// The go-probeum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-probeum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-probeum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
)

// Format renders a Record into a line of output.
type Format interface {
	Format(r *Record) []byte
}

type formatFunc func(*Record) []byte

func (f formatFunc) Format(r *Record) []byte { return f(r) }

var levelColor = map[Lvl]*color.Color{
	LvlCrit:  color.New(color.FgMagenta, color.Bold),
	LvlError: color.New(color.FgRed),
	LvlWarn:  color.New(color.FgYellow),
	LvlInfo:  color.New(color.FgGreen),
	LvlDebug: color.New(color.FgCyan),
	LvlTrace: color.New(color.FgWhite),
}

// TerminalFormat renders "LVL[time] msg key=value ...", colorizing the
// level tag when color is true.
func TerminalFormat(useColor bool) Format {
	return formatFunc(func(r *Record) []byte {
		var buf bytes.Buffer

		lvl := r.Lvl.String()
		if useColor {
			if c, ok := levelColor[r.Lvl]; ok {
				lvl = c.Sprint(lvl)
			}
		}

		fmt.Fprintf(&buf, "%s[%s] %s", lvl, r.Time.Format("15:04:05.000"), r.Msg)
		writeContext(&buf, r.Ctx)
		buf.WriteByte('\n')
		return buf.Bytes()
	})
}

// LogfmtFormat renders key=value pairs with no color and no call-site
// prefix decoration, suitable for piping into log aggregators.
func LogfmtFormat() Format {
	return formatFunc(func(r *Record) []byte {
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "t=%s lvl=%s msg=%s", r.Time.Format(time.RFC3339Nano), r.Lvl.String(), strconv.Quote(r.Msg))
		writeContext(&buf, r.Ctx)
		buf.WriteByte('\n')
		return buf.Bytes()
	})
}

func writeContext(buf *bytes.Buffer, ctx []interface{}) {
	for i := 0; i+1 < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", ctx[i])
		}
		fmt.Fprintf(buf, " %s=%s", key, formatValue(ctx[i+1]))
	}
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case string:
		if needsQuoting(x) {
			return strconv.Quote(x)
		}
		return x
	case error:
		return strconv.Quote(x.Error())
	case fmt.Stringer:
		return strconv.Quote(x.String())
	default:
		return fmt.Sprintf("%+v", x)
	}
}

func needsQuoting(s string) bool {
	for _, r := range s {
		if r == ' ' || r == '=' || r == '"' {
			return true
		}
	}
	return len(s) == 0
}
