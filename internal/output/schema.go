// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/apex/log"
)

// maxSchemaDepth bounds how far nested structs are expanded.
const maxSchemaDepth = 2

// schemaField is one attribute path discovered on a result type.
type schemaField struct {
	Name string
	Kind string
}

// DumpSchema lists the attribute paths of typ, one per line with its kind, so
// users know what --attrs, --filter and --sort accept.
func DumpSchema(typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	for typ.Kind() == reflect.Pointer || typ.Kind() == reflect.Slice {
		typ = typ.Elem()
	}

	fields := walkSchema("", typ, 0)
	if len(fields) == 0 {
		log.Debugf("no json fields on %s", typ.Name())
		return
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	fmt.Fprintln(w, "Attributes available to --attrs, --filter and --sort:")
	fmt.Fprintln(w)
	for _, f := range fields {
		fmt.Fprintf(w, "%-24s %s\n", f.Name, f.Kind)
	}
}

func walkSchema(prefix string, typ reflect.Type, depth int) []schemaField {
	var fields []schemaField

	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() && !sf.Anonymous {
			continue
		}

		ft := sf.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}

		name, ok := jsonName(sf)
		if !ok {
			continue
		}

		// Embedded structs contribute their fields at the same level.
		if sf.Anonymous && ft.Kind() == reflect.Struct && name == "" {
			fields = append(fields, walkSchema(prefix, ft, depth)...)
			continue
		}
		if name == "" {
			name = sf.Name
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		fields = append(fields, schemaField{Name: name, Kind: kindOf(ft)})

		if ft.Kind() == reflect.Struct && depth < maxSchemaDepth {
			fields = append(fields, walkSchema(name, ft, depth+1)...)
		}
	}

	return fields
}

// jsonName returns the json tag name of sf. ok is false for skipped fields.
func jsonName(sf reflect.StructField) (string, bool) {
	tag, has := sf.Tag.Lookup("json")
	if !has {
		if sf.Anonymous {
			return "", true
		}
		return sf.Name, true
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return "", false
	}
	return name, true
}

func kindOf(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "bool"
	default:
		return "string"
	}
}
