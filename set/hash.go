package set

import (
	"encoding/binary"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// HashFunc maps a key to a non-negative integer. Keys that are equal under the
// set's equality function must hash to the same value.
type HashFunc[K any] func(key K) uint64

// EqualFunc reports whether two keys are the same member.
type EqualFunc[K any] func(a, b K) bool

// DefaultHash hashes a key consistently with ==. Keys of any integer or bool
// kind, named types included, hash to their own value. Strings go through
// xxhash. Other keys are walked field by field: pointers, channels and
// unsafe pointers hash by address, never by what they point to, and +0 and
// -0 hash alike wherever a float appears.
func DefaultHash[K comparable](key K) uint64 {
	switch v := any(key).(type) {
	case int:
		return uint64(v)
	case string:
		return xxhash.Sum64String(v)
	}

	v := reflect.ValueOf(any(key))
	if !v.IsValid() {
		return 0
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint()
	case reflect.Bool:
		if v.Bool() {
			return 1
		}
		return 0
	case reflect.Float32, reflect.Float64:
		return floatBits(v.Float())
	}
	return xxhash.Sum64(appendValue(nil, v))
}

func floatBits(f float64) uint64 {
	// +0 and -0 compare equal
	if f == 0 {
		return 0
	}
	return math.Float64bits(f)
}

// appendValue appends the bytes that identify v under ==.
func appendValue(buf []byte, v reflect.Value) []byte {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return binary.LittleEndian.AppendUint64(buf, uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return binary.LittleEndian.AppendUint64(buf, v.Uint())
	case reflect.Bool:
		if v.Bool() {
			return append(buf, 1)
		}
		return append(buf, 0)
	case reflect.Float32, reflect.Float64:
		return binary.LittleEndian.AppendUint64(buf, floatBits(v.Float()))
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		buf = binary.LittleEndian.AppendUint64(buf, floatBits(real(c)))
		return binary.LittleEndian.AppendUint64(buf, floatBits(imag(c)))
	case reflect.String:
		s := v.String()
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(s)))
		return append(buf, s...)
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return binary.LittleEndian.AppendUint64(buf, uint64(v.Pointer()))
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			buf = appendValue(buf, v.Index(i))
		}
		return buf
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			buf = appendValue(buf, v.Field(i))
		}
		return buf
	case reflect.Interface:
		if v.IsNil() {
			return append(buf, 0)
		}
		return appendValue(append(buf, 1), v.Elem())
	default:
		// func, map and slice values are not comparable; == on them panics
		return buf
	}
}

func defaultEqual[K comparable](a, b K) bool {
	return a == b
}
