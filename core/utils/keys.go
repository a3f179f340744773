package utils

import (
	"path"
	"strings"
)

// ProtocolSeparator separates the protocol from the path in an asset key.
const ProtocolSeparator = ":/"

// NormalizeKey canonicalizes an asset key.
// Backslashes become forward slashes, the path is cleaned of repeated slashes
// and "." or ".." segments, and the protocol is lower-cased. A trailing slash
// is kept so group prefixes stay directory prefixes. ".." segments that climb
// above the root are left in place for the resolver to reject.
func NormalizeKey(key string) string {
	key = strings.ReplaceAll(key, "\\", "/")

	protocol, rest, ok := strings.Cut(key, ProtocolSeparator)
	if !ok {
		return cleanPath(key)
	}
	return strings.ToLower(protocol) + ProtocolSeparator + cleanPath(strings.TrimLeft(rest, "/"))
}

// SplitKey splits "<protocol>:/<path>" into its parts.
// ok is false when the key carries no protocol.
func SplitKey(key string) (protocol, rest string, ok bool) {
	protocol, rest, ok = strings.Cut(key, ProtocolSeparator)
	if !ok || protocol == "" {
		return "", key, false
	}
	return protocol, rest, true
}

// HasPrefixFold reports whether the normalized key starts with the normalized prefix,
// ignoring case.
func HasPrefixFold(key, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(NormalizeKey(key)), strings.ToLower(NormalizeKey(prefix)))
}

// Stem returns the last path segment of key without its extension.
func Stem(key string) string {
	base := path.Base(strings.ReplaceAll(key, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// Extension returns the lower-cased extension of key including the dot.
func Extension(key string) string {
	return strings.ToLower(path.Ext(key))
}

func cleanPath(p string) string {
	if p == "" {
		return ""
	}
	c := path.Clean(p)
	if c == "." {
		return ""
	}
	if strings.HasSuffix(p, "/") && c != "/" {
		c += "/"
	}
	return c
}
