package scanfmt

import (
	"fmt"
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

type scanCase struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input"`
	Format string `yaml:"format"`
	Type   string `yaml:"type"`
	Want   string `yaml:"want"`
	Rest   string `yaml:"rest"`
	Error  string `yaml:"error"`
}

func newCaseTarget(t *testing.T, typ string) (any, func() any) {
	t.Helper()
	switch typ {
	case "int":
		v := new(int)
		return v, func() any { return *v }
	case "uint8":
		v := new(uint8)
		return v, func() any { return *v }
	case "float64":
		v := new(float64)
		return v, func() any { return *v }
	case "string":
		v := new(string)
		return v, func() any { return *v }
	case "bool":
		v := new(bool)
		return v, func() any { return *v }
	}
	t.Fatalf("unknown case type %q", typ)
	return nil, nil
}

func TestScan_Cases(t *testing.T) {
	data, err := os.ReadFile("testdata/scan_cases.yaml")
	if err != nil {
		t.Fatalf("Failed to read cases: %v", err)
	}

	var file struct {
		Cases []scanCase `yaml:"cases"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		t.Fatalf("Failed to parse cases: %v", err)
	}
	if len(file.Cases) == 0 {
		t.Fatal("testdata/scan_cases.yaml has no cases")
	}

	for _, tc := range file.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			arg, value := newCaseTarget(t, tc.Type)
			res, err := Scan(tc.Input, tc.Format, arg)

			if tc.Error != "" {
				checkKind(t, err, ErrorKind(tc.Error))
			} else {
				if err != nil {
					t.Fatalf("Scan(%q, %q) failed: %v", tc.Input, tc.Format, err)
				}
				if rest := res.Rest(); rest != tc.Rest {
					t.Errorf("rest = %q, want %q", rest, tc.Rest)
				}
			}
			if tc.Want != "" {
				if got := fmt.Sprint(value()); got != tc.Want {
					t.Errorf("value = %s, want %s", got, tc.Want)
				}
			}
		})
	}
}
