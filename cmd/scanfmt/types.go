package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Azhovan/scanfmt"
)

// target is one scan destination created from a type name.
type target struct {
	arg   any
	value func() any
}

func newTarget[T any]() target {
	p := new(T)
	return target{arg: p, value: func() any { return *p }}
}

var targetFactories = map[string]func() target{
	"bool":    newTarget[bool],
	"int":     newTarget[int],
	"int8":    newTarget[int8],
	"int16":   newTarget[int16],
	"int32":   newTarget[int32],
	"int64":   newTarget[int64],
	"uint":    newTarget[uint],
	"uint8":   newTarget[uint8],
	"uint16":  newTarget[uint16],
	"uint32":  newTarget[uint32],
	"uint64":  newTarget[uint64],
	"float32": newTarget[float32],
	"float64": newTarget[float64],
	"string":  newTarget[string],
	"bytes": func() target {
		p := new([]byte)
		return target{arg: p, value: func() any { return string(*p) }}
	},
	"char": func() target {
		p := new(byte)
		return target{arg: scanfmt.Char(p), value: func() any { return string(rune(*p)) }}
	},
	"rune": func() target {
		p := new(rune)
		return target{arg: scanfmt.Rune(p), value: func() any { return string(*p) }}
	},
	"addr": func() target {
		p := new(scanfmt.Addr)
		return target{arg: p, value: func() any { return fmt.Sprintf("%#x", uintptr(*p)) }}
	},
}

func typeNames() []string {
	names := make([]string, 0, len(targetFactories))
	for name := range targetFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseTypes splits a type list into its names, validating each.
func parseTypes(list string) ([]string, error) {
	var names []string
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		if _, ok := targetFactories[name]; !ok {
			return nil, fmt.Errorf("unknown type %q (supported: %s)", name, strings.Join(typeNames(), ", "))
		}
		names = append(names, name)
	}
	return names, nil
}

// newTargets allocates fresh destinations for one record.
func newTargets(names []string) ([]target, []any) {
	targets := make([]target, len(names))
	args := make([]any, len(names))
	for i, name := range names {
		targets[i] = targetFactories[name]()
		args[i] = targets[i].arg
	}
	return targets, args
}
