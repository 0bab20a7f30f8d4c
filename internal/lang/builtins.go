package lang

// Builtin name sets per language: runtime and standard-library identifiers
// that are never hallucinations. These lists are deliberately broad and
// include common methods of builtin container/string types, since the call
// extractor cannot tell `items.append(x)` from a user method.

var goKeywords = nameSet(
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type",
	"var",
)

var goBuiltins = nameSet(
	// Predeclared functions and types
	"append", "cap", "clear", "close", "complex", "copy", "delete", "imag",
	"len", "make", "max", "min", "new", "panic", "print", "println", "real",
	"recover", "string", "int", "int8", "int16", "int32", "int64", "uint",
	"uint8", "uint16", "uint32", "uint64", "uintptr", "byte", "rune",
	"float32", "float64", "bool", "error", "any",
	// Ubiquitous stdlib call names reached via qualified calls that slip
	// through when the qualifier is shadowed
	"Sprintf", "Printf", "Println", "Errorf", "Fprintf", "Sprint", "Fprintln",
	"Error", "String", "Unwrap", "Close", "Read", "Write", "Done", "Err",
	"Lock", "Unlock", "RLock", "RUnlock", "Wait", "Add", "Background",
	"Context", "WithCancel", "WithTimeout", "Join", "Split", "Contains",
	"HasPrefix", "HasSuffix", "TrimSpace", "ToLower", "ToUpper", "Replace",
	"ReplaceAll", "Marshal", "Unmarshal", "MarshalIndent", "New", "Is", "As",
)

var pythonKeywords = nameSet(
	"and", "as", "assert", "async", "await", "break", "class", "continue",
	"def", "del", "elif", "else", "except", "finally", "for", "from",
	"global", "if", "import", "in", "is", "lambda", "nonlocal", "not", "or",
	"pass", "raise", "return", "try", "while", "with", "yield", "match",
	"case",
)

var pythonBuiltins = nameSet(
	// Builtin functions
	"abs", "aiter", "all", "any", "anext", "ascii", "bin", "bool",
	"breakpoint", "bytearray", "bytes", "callable", "chr", "classmethod",
	"compile", "complex", "delattr", "dict", "dir", "divmod", "enumerate",
	"eval", "exec", "filter", "float", "format", "frozenset", "getattr",
	"globals", "hasattr", "hash", "help", "hex", "id", "input", "int",
	"isinstance", "issubclass", "iter", "len", "list", "locals", "map",
	"max", "memoryview", "min", "next", "object", "oct", "open", "ord",
	"pow", "print", "property", "range", "repr", "reversed", "round", "set",
	"setattr", "slice", "sorted", "staticmethod", "str", "sum", "super",
	"tuple", "type", "vars", "zip", "__import__",
	// Common exceptions
	"Exception", "ValueError", "TypeError", "KeyError", "IndexError",
	"AttributeError", "RuntimeError", "StopIteration", "NotImplementedError",
	"FileNotFoundError", "OSError", "IOError", "ImportError", "NameError",
	"ZeroDivisionError", "OverflowError", "PermissionError", "TimeoutError",
	"ConnectionError", "KeyboardInterrupt",
	// Methods of builtin types
	"append", "extend", "insert", "remove", "pop", "clear", "index", "count",
	"sort", "reverse", "copy", "keys", "values", "items", "get", "update",
	"setdefault", "popitem", "add", "discard", "union", "intersection",
	"difference", "join", "split", "rsplit", "splitlines", "strip", "lstrip",
	"rstrip", "startswith", "endswith", "replace", "find", "rfind", "lower",
	"upper", "title", "capitalize", "casefold", "encode", "decode",
	"isdigit", "isalpha", "isalnum", "isspace", "zfill", "ljust", "rjust",
	"partition", "rpartition", "read", "readline", "readlines", "write",
	"writelines", "close", "seek", "tell", "flush",
)

var jsKeywords = nameSet(
	"break", "case", "catch", "class", "const", "continue", "debugger",
	"default", "delete", "do", "else", "export", "extends", "finally", "for",
	"function", "if", "import", "in", "instanceof", "let", "new", "of",
	"return", "static", "super", "switch", "this", "throw", "try", "typeof",
	"var", "void", "while", "with", "yield", "async", "await", "get", "set",
	// TypeScript-only words share the set; they are keywords there and
	// harmless extras for plain JS.
	"interface", "implements", "declare", "enum", "namespace", "readonly",
	"abstract", "satisfies", "keyof", "infer",
)

var jsBuiltins = nameSet(
	// Globals
	"console", "require", "module", "exports", "process", "window",
	"document", "navigator", "fetch", "alert", "confirm", "prompt",
	"setTimeout", "setInterval", "clearTimeout", "clearInterval",
	"queueMicrotask", "structuredClone", "parseInt", "parseFloat", "isNaN",
	"isFinite", "encodeURIComponent", "decodeURIComponent", "encodeURI",
	"decodeURI", "btoa", "atob", "JSON", "Math", "Object", "Array", "String",
	"Number", "Boolean", "Date", "RegExp", "Error", "TypeError",
	"RangeError", "SyntaxError", "Promise", "Symbol", "Map", "Set",
	"WeakMap", "WeakSet", "Proxy", "Reflect", "Intl", "URL",
	"URLSearchParams", "AbortController", "TextEncoder", "TextDecoder",
	"Buffer", "Infinity", "NaN", "globalThis",
	// Console / common object methods
	"log", "warn", "error", "info", "debug", "trace", "assert", "table",
	"dir", "group", "groupEnd", "time", "timeEnd",
	// Array / string / object methods
	"push", "pop", "shift", "unshift", "slice", "splice", "concat", "join",
	"split", "indexOf", "lastIndexOf", "includes", "find", "findIndex",
	"findLast", "filter", "map", "reduce", "reduceRight", "forEach", "some",
	"every", "sort", "reverse", "flat", "flatMap", "fill", "at", "keys",
	"values", "entries", "from", "of", "isArray", "charAt", "charCodeAt",
	"codePointAt", "substring", "substr", "replace", "replaceAll", "trim",
	"trimStart", "trimEnd", "toLowerCase", "toUpperCase", "startsWith",
	"endsWith", "padStart", "padEnd", "repeat", "match", "matchAll",
	"search", "test", "exec", "toString", "toFixed", "toPrecision",
	"valueOf", "hasOwnProperty", "assign", "freeze", "create",
	"getPrototypeOf", "defineProperty", "getOwnPropertyNames",
	"fromEntries", "parse", "stringify", "floor", "ceil", "round", "random",
	"abs", "max", "min", "pow", "sqrt", "trunc", "sign", "now", "getTime",
	"toISOString", "getFullYear", "getMonth", "getDate", "getHours",
	// Promise methods
	"then", "catch", "finally", "resolve", "reject", "all", "allSettled",
	"race", "any",
	// DOM / events
	"addEventListener", "removeEventListener", "querySelector",
	"querySelectorAll", "getElementById", "createElement", "appendChild",
	"removeChild", "setAttribute", "getAttribute", "classList",
	"preventDefault", "stopPropagation", "dispatchEvent",
	// Function methods
	"bind", "call", "apply",
	// Node
	"on", "once", "off", "emit", "end", "pipe", "nextTick", "cwd", "exit",
)

var phpKeywords = nameSet(
	"abstract", "and", "array", "as", "break", "callable", "case", "catch",
	"class", "clone", "const", "continue", "declare", "default", "do",
	"echo", "else", "elseif", "empty", "enddeclare", "endfor", "endforeach",
	"endif", "endswitch", "endwhile", "extends", "final", "finally", "fn",
	"for", "foreach", "function", "global", "goto", "if", "implements",
	"include", "instanceof", "insteadof", "interface", "isset", "list",
	"match", "namespace", "new", "or", "print", "private", "protected",
	"public", "readonly", "require", "return", "static", "switch", "throw",
	"trait", "try", "unset", "use", "var", "while", "xor", "yield", "exit",
	"die",
)

var phpBuiltins = nameSet(
	// String functions
	"strlen", "strpos", "stripos", "strrpos", "substr", "str_replace",
	"str_ireplace", "str_repeat", "str_pad", "str_split", "str_contains",
	"str_starts_with", "str_ends_with", "strtolower", "strtoupper",
	"ucfirst", "ucwords", "lcfirst", "trim", "ltrim", "rtrim", "sprintf",
	"printf", "vsprintf", "number_format", "nl2br", "htmlspecialchars",
	"htmlentities", "strip_tags", "addslashes", "stripslashes", "explode",
	"implode", "wordwrap", "strrev", "strcmp", "strcasecmp", "similar_text",
	"levenshtein", "soundex", "metaphone", "md5", "sha1", "hash", "crc32",
	"base64_encode", "base64_decode", "urlencode", "urldecode", "rawurlencode",
	// Array functions
	"count", "sizeof", "array_merge", "array_keys", "array_values",
	"array_map", "array_filter", "array_reduce", "array_walk", "array_push",
	"array_pop", "array_shift", "array_unshift", "array_slice",
	"array_splice", "array_search", "array_flip", "array_reverse",
	"array_unique", "array_combine", "array_diff", "array_intersect",
	"array_key_exists", "array_key_first", "array_key_last", "array_fill",
	"array_sum", "array_product", "array_column", "array_chunk", "in_array",
	"sort", "rsort", "asort", "arsort", "ksort", "krsort", "usort",
	"uasort", "uksort", "natsort", "shuffle", "range", "compact", "extract",
	// Type functions
	"is_array", "is_string", "is_int", "is_integer", "is_float", "is_bool",
	"is_null", "is_numeric", "is_callable", "is_object", "is_iterable",
	"intval", "floatval", "strval", "boolval", "settype", "gettype",
	"get_class", "get_object_vars", "get_class_methods", "method_exists",
	"property_exists", "class_exists", "function_exists", "interface_exists",
	// Filesystem / misc
	"file_get_contents", "file_put_contents", "fopen", "fclose", "fread",
	"fwrite", "fgets", "feof", "file_exists", "is_file", "is_dir", "mkdir",
	"rmdir", "unlink", "rename", "copy", "basename", "dirname", "pathinfo",
	"realpath", "glob", "scandir", "json_encode", "json_decode",
	"serialize", "unserialize", "var_dump", "var_export", "print_r",
	"preg_match", "preg_match_all", "preg_replace", "preg_split",
	"preg_quote", "date", "time", "mktime", "strtotime", "microtime",
	"usleep", "sleep", "rand", "mt_rand", "random_int", "uniqid", "abs",
	"ceil", "floor", "round", "sqrt", "pow", "intdiv", "fmod", "header",
	"http_response_code", "setcookie", "session_start", "define", "defined",
	"constant", "error_log", "trigger_error", "throw_error", "func_get_args",
	"call_user_func", "call_user_func_array", "array_is_list", "str_word_count",
)

var rustKeywords = nameSet(
	"as", "async", "await", "break", "const", "continue", "crate", "dyn",
	"else", "enum", "extern", "fn", "for", "if", "impl", "in", "let",
	"loop", "match", "mod", "move", "mut", "pub", "ref", "return", "self",
	"static", "struct", "super", "trait", "type", "unsafe", "use", "where",
	"while",
)

var rustBuiltins = nameSet(
	// Macros (extractor strips the !)
	"println", "print", "eprintln", "eprint", "format", "write", "writeln",
	"vec", "panic", "assert", "assert_eq", "assert_ne", "debug_assert",
	"todo", "unimplemented", "unreachable", "matches", "dbg", "include_str",
	"include_bytes", "concat", "stringify", "env", "cfg",
	// Core types and variants
	"Some", "None", "Ok", "Err", "Box", "Rc", "Arc", "RefCell", "Cell",
	"Mutex", "RwLock", "Vec", "String", "HashMap", "HashSet", "BTreeMap",
	"BTreeSet", "VecDeque", "Option", "Result", "Cow", "PathBuf", "Path",
	// Ubiquitous method names
	"new", "default", "clone", "into", "from", "try_from", "try_into",
	"as_ref", "as_mut", "as_str", "as_slice", "as_bytes", "to_string",
	"to_owned", "to_vec", "parse", "unwrap", "unwrap_or", "unwrap_or_else",
	"unwrap_or_default", "expect", "ok", "err", "ok_or", "ok_or_else",
	"map", "map_err", "and_then", "or_else", "is_some", "is_none", "is_ok",
	"is_err", "is_empty", "len", "push", "pop", "insert", "remove", "get",
	"get_mut", "contains", "contains_key", "iter", "iter_mut", "into_iter",
	"collect", "filter", "fold", "find", "position", "any", "all", "count",
	"sum", "rev", "zip", "enumerate", "take", "skip", "chain", "flatten",
	"flat_map", "next", "peek", "last", "first", "sort", "sort_by",
	"sort_by_key", "split", "join", "trim", "starts_with", "ends_with",
	"replace", "chars", "bytes", "lines", "extend", "drain", "clear",
	"entry", "or_insert", "or_insert_with", "lock", "read", "borrow",
	"borrow_mut", "send", "recv", "spawn", "sleep", "clamp", "min", "max",
	"abs", "powi", "powf", "sqrt", "floor", "ceil", "round",
)
