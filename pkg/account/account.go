// Copyright The Prometheus Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package account models one bank product record as handed over by an
// accounts provider. Backends populate account fields very unevenly, so a
// field value may be absent, the "Not loaded" sentinel, a string, a number,
// or a date.
package account

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// NotLoaded is the sentinel a backend stores when it could not fetch a
// field. It is distinct from the field being absent altogether.
const NotLoaded = "Not loaded"

// DateLayout is the wire form of date-valued fields.
const DateLayout = "2006-01-02"

// Field is one named field of an account.
type Field struct {
	Name  string
	Value interface{}
}

// Account is one bank product record. Implementations enumerate their
// populated fields explicitly; consumers never introspect beyond this.
type Account interface {
	ID() string
	Fields() []Field
}

// Record is a map-backed Account, the concrete form every provider hands to
// the pipeline.
type Record struct {
	id     string
	fields map[string]interface{}
}

// NewRecord builds a record from a field map. The map is copied; the caller
// may keep mutating its own.
func NewRecord(id string, fields map[string]interface{}) *Record {
	fs := make(map[string]interface{}, len(fields))
	for name, value := range fields {
		fs[name] = value
	}
	return &Record{id: id, fields: fs}
}

// ID implements Account.
func (r *Record) ID() string { return r.id }

// Fields returns the populated fields sorted by name, so iteration order is
// stable across scrape cycles.
func (r *Record) Fields() []Field {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{Name: name, Value: r.fields[name]})
	}
	return fields
}

// IsNotLoaded reports whether v is the backend's "Not loaded" sentinel.
func IsNotLoaded(v interface{}) bool {
	s, ok := v.(string)
	return ok && s == NotLoaded
}

// FormatValue renders a field value the way it appears as a label value.
func FormatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(DateLayout)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
