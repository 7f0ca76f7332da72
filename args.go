package scanfmt

import (
	"math"
	"reflect"
	"strconv"

	"golang.org/x/exp/constraints"
)

// ArgKind is the tag of an argument slot.
type ArgKind uint8

const (
	ArgInvalid ArgKind = iota
	ArgBool
	ArgCodeUnit  // *byte via Char
	ArgCodePoint // *rune via Rune
	ArgInt
	ArgInt8
	ArgInt16
	ArgInt32
	ArgInt64
	ArgUint
	ArgUint8
	ArgUint16
	ArgUint32
	ArgUint64
	ArgUintptr
	ArgFloat32
	ArgFloat64
	ArgString
	ArgBytes
	ArgPointer
	ArgCustom
	ArgIntValue // int passed by value, used for nested width/precision
)

var argKindNames = [...]string{
	ArgInvalid:   "invalid",
	ArgBool:      "bool",
	ArgCodeUnit:  "code_unit",
	ArgCodePoint: "code_point",
	ArgInt:       "int",
	ArgInt8:      "int8",
	ArgInt16:     "int16",
	ArgInt32:     "int32",
	ArgInt64:     "int64",
	ArgUint:      "uint",
	ArgUint8:     "uint8",
	ArgUint16:    "uint16",
	ArgUint32:    "uint32",
	ArgUint64:    "uint64",
	ArgUintptr:   "uintptr",
	ArgFloat32:   "float32",
	ArgFloat64:   "float64",
	ArgString:    "string",
	ArgBytes:     "bytes",
	ArgPointer:   "pointer",
	ArgCustom:    "custom",
	ArgIntValue:  "int_value",
}

func (k ArgKind) String() string {
	if int(k) < len(argKindNames) {
		return argKindNames[k]
	}
	return "ArgKind(" + strconv.Itoa(int(k)) + ")"
}

// IsSigned reports whether k is a signed integer kind.
func (k ArgKind) IsSigned() bool {
	return k >= ArgInt && k <= ArgInt64
}

// IsUnsigned reports whether k is an unsigned integer kind.
func (k ArgKind) IsUnsigned() bool {
	return k >= ArgUint && k <= ArgUintptr
}

// IsFloat reports whether k is a floating-point kind.
func (k ArgKind) IsFloat() bool {
	return k == ArgFloat32 || k == ArgFloat64
}

// bits returns the bit size of a numeric kind.
func (k ArgKind) bits() int {
	switch k {
	case ArgInt8, ArgUint8:
		return 8
	case ArgInt16, ArgUint16:
		return 16
	case ArgInt32, ArgUint32, ArgFloat32:
		return 32
	case ArgInt, ArgUint, ArgUintptr:
		return strconv.IntSize
	}
	return 64
}

// Arg is one tagged slot of the argument table. Scan accepts pointers to
// the built-in kinds directly; Arg values are needed only where the
// pointer type is ambiguous (see Char and Rune).
type Arg struct {
	kind   ArgKind
	ptr    any
	rv     reflect.Value // named types with a built-in underlying kind
	custom Scannable
	value  int
}

// Char makes an argument that reads a single code unit into p.
func Char(p *byte) Arg {
	return Arg{kind: ArgCodeUnit, ptr: p}
}

// Rune makes an argument that reads a single code point into p.
func Rune(p *rune) Arg {
	return Arg{kind: ArgCodePoint, ptr: p}
}

// Kind returns the tag of the slot.
func (a *Arg) Kind() ArgKind {
	return a.kind
}

// isNilRef reports whether v holds a nil pointer or a nil func.
func isNilRef(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// makeArg classifies one caller argument.
func makeArg(v any) (Arg, *ScanError) {
	if isNilRef(v) {
		return Arg{}, formatErrorf("argument of type %T is not a non-nil pointer", v)
	}
	switch p := v.(type) {
	case Arg:
		if p.kind == ArgInvalid || (p.ptr == nil && p.custom == nil) || isNilRef(p.ptr) {
			return Arg{}, formatError("invalid argument")
		}
		return p, nil
	case *bool:
		return Arg{kind: ArgBool, ptr: p}, nil
	case *int:
		return Arg{kind: ArgInt, ptr: p}, nil
	case *int8:
		return Arg{kind: ArgInt8, ptr: p}, nil
	case *int16:
		return Arg{kind: ArgInt16, ptr: p}, nil
	case *int32:
		return Arg{kind: ArgInt32, ptr: p}, nil
	case *int64:
		return Arg{kind: ArgInt64, ptr: p}, nil
	case *uint:
		return Arg{kind: ArgUint, ptr: p}, nil
	case *uint8:
		return Arg{kind: ArgUint8, ptr: p}, nil
	case *uint16:
		return Arg{kind: ArgUint16, ptr: p}, nil
	case *uint32:
		return Arg{kind: ArgUint32, ptr: p}, nil
	case *uint64:
		return Arg{kind: ArgUint64, ptr: p}, nil
	case *uintptr:
		return Arg{kind: ArgUintptr, ptr: p}, nil
	case *float32:
		return Arg{kind: ArgFloat32, ptr: p}, nil
	case *float64:
		return Arg{kind: ArgFloat64, ptr: p}, nil
	case *string:
		return Arg{kind: ArgString, ptr: p}, nil
	case *[]byte:
		return Arg{kind: ArgBytes, ptr: p}, nil
	case *Addr:
		return Arg{kind: ArgPointer, ptr: p}, nil
	case Scannable:
		return Arg{kind: ArgCustom, custom: p}, nil
	case int:
		return Arg{kind: ArgIntValue, value: p}, nil
	case nil:
		return Arg{}, formatError("nil argument")
	}
	return reflectArg(v)
}

// reflectArg handles pointers to named types whose underlying kind is a
// built-in one, e.g. type Port uint16.
func reflectArg(v any) (Arg, *ScanError) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return Arg{}, formatErrorf("argument of type %T is not a non-nil pointer", v)
	}
	elem := rv.Elem()
	kind := ArgInvalid
	switch elem.Kind() {
	case reflect.Bool:
		kind = ArgBool
	case reflect.Int:
		kind = ArgInt
	case reflect.Int8:
		kind = ArgInt8
	case reflect.Int16:
		kind = ArgInt16
	case reflect.Int32:
		kind = ArgInt32
	case reflect.Int64:
		kind = ArgInt64
	case reflect.Uint:
		kind = ArgUint
	case reflect.Uint8:
		kind = ArgUint8
	case reflect.Uint16:
		kind = ArgUint16
	case reflect.Uint32:
		kind = ArgUint32
	case reflect.Uint64:
		kind = ArgUint64
	case reflect.Uintptr:
		kind = ArgUintptr
	case reflect.Float32:
		kind = ArgFloat32
	case reflect.Float64:
		kind = ArgFloat64
	case reflect.String:
		kind = ArgString
	case reflect.Slice:
		if elem.Type().Elem().Kind() == reflect.Uint8 {
			kind = ArgBytes
		}
	}
	if kind == ArgInvalid {
		return Arg{}, formatErrorf("unsupported argument type %T", v)
	}
	return Arg{kind: kind, rv: elem}, nil
}

func setSigned[T constraints.Signed](p *T, v int64) {
	*p = T(v)
}

func setUnsigned[T constraints.Unsigned](p *T, v uint64) {
	*p = T(v)
}

func setFloat[T constraints.Float](p *T, v float64) {
	*p = T(v)
}

// signedLimits returns the range of a signed kind.
func signedLimits(bits int) (lo int64, hi int64) {
	if bits >= 64 {
		return math.MinInt64, math.MaxInt64
	}
	hi = 1<<(bits-1) - 1
	return -hi - 1, hi
}

// unsignedMax returns the largest value of an unsigned kind.
func unsignedMax(bits int) uint64 {
	if bits >= 64 {
		return math.MaxUint64
	}
	return 1<<bits - 1
}

func (a *Arg) setInt(v int64) {
	if a.rv.IsValid() {
		a.rv.SetInt(v)
		return
	}
	switch p := a.ptr.(type) {
	case *int:
		setSigned(p, v)
	case *int8:
		setSigned(p, v)
	case *int16:
		setSigned(p, v)
	case *int32:
		setSigned(p, v)
	case *int64:
		setSigned(p, v)
	}
}

func (a *Arg) setUint(v uint64) {
	if a.rv.IsValid() {
		a.rv.SetUint(v)
		return
	}
	switch p := a.ptr.(type) {
	case *uint:
		setUnsigned(p, v)
	case *uint8:
		setUnsigned(p, v)
	case *uint16:
		setUnsigned(p, v)
	case *uint32:
		setUnsigned(p, v)
	case *uint64:
		setUnsigned(p, v)
	case *uintptr:
		setUnsigned(p, v)
	case *Addr:
		setUnsigned(p, v)
	}
}

func (a *Arg) setFloat(v float64) {
	if a.rv.IsValid() {
		a.rv.SetFloat(v)
		return
	}
	switch p := a.ptr.(type) {
	case *float32:
		setFloat(p, v)
	case *float64:
		setFloat(p, v)
	}
}

func (a *Arg) setBool(v bool) {
	if a.rv.IsValid() {
		a.rv.SetBool(v)
		return
	}
	*a.ptr.(*bool) = v
}

func (a *Arg) setCodeUnit(v byte) {
	*a.ptr.(*byte) = v
}

func (a *Arg) setCodePoint(v rune) {
	*a.ptr.(*rune) = v
}

func (a *Arg) setString(v string) {
	if a.rv.IsValid() {
		a.rv.SetString(v)
		return
	}
	*a.ptr.(*string) = v
}

func (a *Arg) setBytes(v []byte) {
	if a.rv.IsValid() {
		a.rv.SetBytes(v)
		return
	}
	*a.ptr.(*[]byte) = v
}

// argTable is the per-call argument table with its visited bitmap.
type argTable struct {
	args    []Arg
	visited []uint64
}

func newArgTable(args []any) (*argTable, error) {
	t := &argTable{
		args:    make([]Arg, len(args)),
		visited: make([]uint64, (len(args)+63)/64),
	}
	for i, v := range args {
		a, err := makeArg(v)
		if err != nil {
			return nil, formatErrorf("argument %d: %s", i, err.Msg)
		}
		t.args[i] = a
	}
	return t, nil
}

func (t *argTable) isVisited(id int) bool {
	return t.visited[id/64]&(1<<(id%64)) != 0
}

// get resolves id, marking the slot visited.
func (t *argTable) get(id int) (*Arg, error) {
	if id < 0 || id >= len(t.args) {
		return nil, formatErrorf("argument id %d out of range", id)
	}
	if t.isVisited(id) {
		return nil, formatErrorf("argument %d scanned twice", id)
	}
	t.visited[id/64] |= 1 << (id % 64)
	return &t.args[id], nil
}

// intValue resolves a nested width or precision argument.
func (t *argTable) intValue(id int) (int, error) {
	a, err := t.get(id)
	if err != nil {
		return 0, err
	}
	if a.kind != ArgIntValue {
		return 0, formatErrorf("argument %d used as width or precision is %s, not an int value", id, a.kind)
	}
	return a.value, nil
}

// exhausted returns an error naming the first unvisited argument, if any.
func (t *argTable) exhausted() error {
	for id := range t.args {
		if !t.isVisited(id) {
			return formatErrorf("argument %d was not scanned", id)
		}
	}
	return nil
}
