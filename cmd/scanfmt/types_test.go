package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypes(t *testing.T) {
	tests := []struct {
		name string
		list string
		want []string
	}{
		{"single", "int", []string{"int"}},
		{"several", "int,string,float64", []string{"int", "string", "float64"}},
		{"spaces and case", " Int , UINT8 ", []string{"int", "uint8"}},
		{"empty entries", "bool,,char,", []string{"bool", "char"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTypes(tt.list)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTypes_Unknown(t *testing.T) {
	_, err := parseTypes("int,complex128")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type "complex128"`)
	assert.Contains(t, err.Error(), "addr, bool, bytes")
}

func TestNewTargets(t *testing.T) {
	targets, args := newTargets([]string{"int", "char", "addr", "bytes"})
	require.Len(t, targets, 4)
	require.Len(t, args, 4)

	*(args[0].(*int)) = 7
	assert.Equal(t, 7, targets[0].value())
	assert.Equal(t, "\x00", targets[1].value())
	assert.Equal(t, "0x0", targets[2].value())
	assert.Equal(t, "", targets[3].value())

	again, _ := newTargets([]string{"int"})
	assert.Equal(t, 0, again[0].value(), "targets are fresh per call")
}
