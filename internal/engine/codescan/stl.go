package codescan

// stlHeaders lists the C++ standard library headers, including the C
// compatibility headers, that `#include <...>` and `import <...>;` resolve to
// the toolchain rather than to the scanned tree.
var stlHeaders = map[string]struct{}{
	"algorithm": {}, "any": {}, "array": {}, "atomic": {}, "barrier": {}, "bit": {},
	"bitset": {}, "charconv": {}, "chrono": {}, "codecvt": {}, "compare": {},
	"complex": {}, "concepts": {}, "condition_variable": {}, "coroutine": {},
	"deque": {}, "exception": {}, "execution": {}, "expected": {}, "filesystem": {},
	"flat_map": {}, "flat_set": {}, "format": {}, "forward_list": {}, "fstream": {},
	"functional": {}, "future": {}, "generator": {}, "initializer_list": {},
	"iomanip": {}, "ios": {}, "iosfwd": {}, "iostream": {}, "istream": {},
	"iterator": {}, "latch": {}, "limits": {}, "list": {}, "locale": {}, "map": {},
	"mdspan": {}, "memory": {}, "memory_resource": {}, "mutex": {}, "new": {},
	"numbers": {}, "numeric": {}, "optional": {}, "ostream": {}, "print": {},
	"queue": {}, "random": {}, "ranges": {}, "ratio": {}, "regex": {},
	"scoped_allocator": {}, "semaphore": {}, "set": {}, "shared_mutex": {},
	"source_location": {}, "span": {}, "spanstream": {}, "sstream": {}, "stack": {},
	"stacktrace": {}, "stdexcept": {}, "stdfloat": {}, "stop_token": {},
	"streambuf": {}, "string": {}, "string_view": {}, "strstream": {},
	"syncstream": {}, "system_error": {}, "thread": {}, "tuple": {}, "type_traits": {},
	"typeindex": {}, "typeinfo": {}, "unordered_map": {}, "unordered_set": {},
	"utility": {}, "valarray": {}, "variant": {}, "vector": {}, "version": {},

	"cassert": {}, "cctype": {}, "cerrno": {}, "cfenv": {}, "cfloat": {},
	"cinttypes": {}, "climits": {}, "clocale": {}, "cmath": {}, "csetjmp": {},
	"csignal": {}, "cstdarg": {}, "cstddef": {}, "cstdint": {}, "cstdio": {},
	"cstdlib": {}, "cstring": {}, "ctime": {}, "cuchar": {}, "cwchar": {},
	"cwctype": {}, "ccomplex": {}, "ciso646": {}, "cstdalign": {}, "cstdbool": {},
	"ctgmath": {},
}

// IsSTLHeader reports whether name is a standard library header.
func IsSTLHeader(name string) bool {
	_, ok := stlHeaders[name]
	return ok
}
