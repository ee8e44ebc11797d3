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
	"io"
	"sync"
)

// Handler writes or filters Records.
type Handler interface {
	Log(r *Record)
}

type funcHandler func(r *Record)

func (f funcHandler) Log(r *Record) { f(r) }

// StreamHandler writes every Record to w, formatted by fmtr, serialized
// behind a mutex so concurrent writers never interleave a single line.
func StreamHandler(w io.Writer, fmtr Format) Handler {
	var mu sync.Mutex
	return funcHandler(func(r *Record) {
		mu.Lock()
		defer mu.Unlock()
		w.Write(fmtr.Format(r))
	})
}

// FilterHandler drops any Record for which filter reports false before it
// reaches next.
func FilterHandler(filter func(r *Record) bool, next Handler) Handler {
	return funcHandler(func(r *Record) {
		if filter(r) {
			next.Log(r)
		}
	})
}

// LvlFilterHandler drops any Record more verbose than maxLvl; the executor
// command uses it to apply its --loglevel flag. Captured runtime logs do
// not pass through it.
func LvlFilterHandler(maxLvl Lvl, next Handler) Handler {
	return FilterHandler(func(r *Record) bool { return r.Lvl <= maxLvl }, next)
}

// DiscardHandler drops every Record.
func DiscardHandler() Handler {
	return funcHandler(func(*Record) {})
}

// MultiHandler fans one Record out to every handler in hs.
func MultiHandler(hs ...Handler) Handler {
	return funcHandler(func(r *Record) {
		for _, h := range hs {
			h.Log(r)
		}
	})
}
