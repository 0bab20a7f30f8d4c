package lang

import "strings"

// genericNames are verbs and verb-prefixes so common across frameworks and
// ORMs that an unresolved reference to one is weak evidence of a
// hallucination. Kept lowercase; matching is case-insensitive and also
// checks camelCase verb prefixes (getUser matches "get").
var genericNames = nameSet(
	"get", "set", "find", "fetch", "load", "save", "create", "update",
	"delete", "remove", "add", "insert", "query", "execute", "run", "start",
	"stop", "init", "initialize", "setup", "teardown", "open", "close",
	"read", "write", "send", "receive", "handle", "process", "parse",
	"format", "render", "build", "make", "check", "validate", "verify",
	"list", "count", "exists", "has", "is", "can", "apply", "register",
	"unregister", "subscribe", "unsubscribe", "connect", "disconnect",
	"bind", "unbind", "emit", "dispatch", "trigger", "notify", "refresh",
	"reload", "reset", "clear", "flush", "sync", "copy", "clone", "merge",
	"filter", "map", "reduce", "sort", "search", "lookup", "resolve",
	"convert", "transform", "serialize", "deserialize", "encode", "decode",
	"login", "logout", "authenticate", "authorize",
)

var genericPrefixes = []string{
	"get", "set", "find", "fetch", "load", "save", "create", "update",
	"delete", "remove", "add", "is", "has", "can", "handle", "on",
}

// IsGenericName reports whether a symbol name is too common to carry
// much signal on its own.
func IsGenericName(name string) bool {
	lower := strings.ToLower(name)
	if _, ok := genericNames[lower]; ok {
		return true
	}
	for _, p := range genericPrefixes {
		if len(lower) > len(p) && strings.HasPrefix(lower, p) {
			// Require a camelCase or snake_case boundary after the
			// prefix so "settings" does not match "set".
			rest := name[len(p):]
			if rest[0] == '_' || (rest[0] >= 'A' && rest[0] <= 'Z') {
				return true
			}
		}
	}
	return false
}
