// Package bootargs parses the kernel command line handed over by the
// bootloader into key-value pairs and exposes typed lookups for the
// tunables the rest of the kernel cares about.
package bootargs

import "strings"

var cmdLineKV map[string]string

// Set parses the raw command line. Arguments are whitespace-separated
// key=value pairs; a bare flag maps to its own name. Later occurrences of a
// key override earlier ones. Set must run before the first Get.
func Set(cmdLine string) {
	cmdLineKV = make(map[string]string)

	pairs := strings.Fields(cmdLine)
	for _, pair := range pairs {
		kv := strings.Split(pair, "=")
		switch len(kv) {
		case 2: // foo=bar
			cmdLineKV[kv[0]] = kv[1]
		case 1: // nofoo
			cmdLineKV[kv[0]] = kv[0]
		}
	}
}

// Get returns the value stored under key and whether the key was present on
// the command line.
func Get(key string) (string, bool) {
	v, ok := cmdLineKV[key]
	return v, ok
}

// GetUint32 returns the value stored under key parsed as an unsigned
// decimal, or defaultV when the key is missing or does not parse.
func GetUint32(key string, defaultV uint32) uint32 {
	v, ok := cmdLineKV[key]
	if !ok {
		return defaultV
	}

	var parsed uint32
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return defaultV
		}
		parsed = parsed*10 + uint32(v[i]-'0')
	}
	if len(v) == 0 {
		return defaultV
	}

	return parsed
}
