package imports

import (
	"strings"

	"symguard/internal/lang"
)

// Curated well-known external module roots per language: standard library
// plus the ecosystems a scanned codebase is most likely to depend on. A
// module not matched here is assumed to live inside the scanned tree and
// must resolve through the codebase index instead.

var pythonExternal = rootSet(
	// stdlib
	"os", "sys", "re", "json", "typing", "collections", "itertools",
	"functools", "pathlib", "subprocess", "asyncio", "logging", "datetime",
	"time", "math", "random", "hashlib", "hmac", "http", "urllib", "socket",
	"ssl", "threading", "multiprocessing", "concurrent", "unittest",
	"dataclasses", "enum", "abc", "io", "csv", "sqlite3", "shutil",
	"tempfile", "argparse", "copy", "pickle", "string", "struct", "textwrap",
	"traceback", "uuid", "warnings", "weakref", "contextlib", "inspect",
	"importlib", "base64", "binascii", "glob", "gzip", "zipfile", "tarfile",
	"email", "smtplib", "xml", "html", "statistics", "decimal", "fractions",
	"secrets", "signal", "select", "queue", "heapq", "bisect", "array",
	"types", "operator", "platform", "getpass", "pprint", "configparser",
	"unicodedata", "codecs", "fnmatch", "ast", "dis", "gc", "site", "venv",
	// common third party
	"numpy", "pandas", "scipy", "requests", "flask", "django", "fastapi",
	"pydantic", "sqlalchemy", "alembic", "pytest", "click", "typer", "boto3",
	"botocore", "torch", "tensorflow", "sklearn", "matplotlib", "seaborn",
	"celery", "redis", "kafka", "pika", "yaml", "toml", "aiohttp", "httpx",
	"uvicorn", "gunicorn", "starlette", "jinja2", "setuptools", "pip",
	"rich", "tqdm", "dotenv", "cryptography", "jwt", "bcrypt", "psycopg2",
	"pymongo", "grpc", "protobuf", "openai", "anthropic", "mcp",
)

var jsExternal = rootSet(
	// node builtins (bare and node: handled below)
	"fs", "path", "os", "http", "https", "net", "url", "util", "crypto",
	"stream", "events", "buffer", "child_process", "cluster", "dns",
	"readline", "zlib", "assert", "querystring", "worker_threads", "process",
	"timers", "tls", "v8", "vm", "perf_hooks", "async_hooks",
	// common packages
	"react", "react-dom", "vue", "svelte", "angular", "next", "nuxt",
	"express", "koa", "fastify", "hapi", "nest", "axios", "node-fetch",
	"lodash", "underscore", "ramda", "moment", "dayjs", "date-fns", "rxjs",
	"redux", "zustand", "mobx", "jquery", "typescript", "webpack", "vite",
	"rollup", "esbuild", "babel", "jest", "vitest", "mocha", "chai",
	"cypress", "playwright", "eslint", "prettier", "chalk", "commander",
	"yargs", "inquirer", "dotenv", "uuid", "zod", "joi", "yup", "prisma",
	"mongoose", "sequelize", "typeorm", "knex", "pg", "mysql", "mysql2",
	"sqlite3", "redis", "ioredis", "mongodb", "socket.io", "ws", "cors",
	"helmet", "morgan", "winston", "pino", "bcrypt", "jsonwebtoken",
	"passport", "multer", "sharp", "nodemailer", "stripe", "aws-sdk",
	"graphql", "apollo-server", "styled-components", "tailwindcss",
)

// goStdlib lists the first path segment of every standard-library tree.
var goStdlib = rootSet(
	"archive", "bufio", "builtin", "bytes", "cmp", "compress", "container",
	"context", "crypto", "database", "debug", "embed", "encoding", "errors",
	"expvar", "flag", "fmt", "go", "hash", "html", "image", "index", "io",
	"iter", "log", "maps", "math", "mime", "net", "os", "path", "plugin",
	"reflect", "regexp", "runtime", "slices", "sort", "strconv", "strings",
	"structs", "sync", "syscall", "testing", "text", "time", "unicode",
	"unique", "unsafe", "weak",
)

var phpExternal = rootSet(
	"Illuminate", "Symfony", "Laravel", "Psr", "Monolog", "Doctrine",
	"Carbon", "GuzzleHttp", "PHPUnit", "Mockery", "Faker", "Stripe", "Aws",
	"Google", "Twig", "Ramsey", "League", "Intervention", "Spatie",
	"Livewire", "Filament", "Predis", "Elastic", "Firebase", "Dompdf",
	"PhpOffice", "Composer", "SebastianBergmann", "Webmozart", "Nette",
	"Laminas", "Slim", "Cake", "Phalcon", "Yii",
)

var rustExternal = rootSet(
	"std", "core", "alloc", "proc_macro", "test",
	"serde", "serde_json", "serde_yaml", "tokio", "async_std", "anyhow",
	"thiserror", "clap", "structopt", "reqwest", "hyper", "axum", "actix",
	"actix_web", "warp", "rocket", "tonic", "prost", "rand", "regex", "log",
	"env_logger", "tracing", "tracing_subscriber", "chrono", "futures",
	"sqlx", "diesel", "rusqlite", "sea_orm", "redis", "rayon", "crossbeam",
	"parking_lot", "dashmap", "itertools", "lazy_static", "once_cell",
	"bytes", "uuid", "url", "base64", "hex", "sha2", "md5", "flate2", "tar",
	"zip", "walkdir", "glob", "notify", "dirs", "tempfile", "criterion",
	"mockall", "wiremock", "num", "bigdecimal", "rust_decimal", "indexmap",
	"smallvec", "bitflags", "libc", "nix", "windows", "wasm_bindgen",
)

// vendorMarkers are dependency-directory path fragments; a module path that
// traverses one is external no matter what it is named.
var vendorMarkers = []string{
	"node_modules/", "vendor/", "site-packages/", ".cargo/", "bower_components/",
}

func isExternal(language lang.Language, module string) bool {
	for _, marker := range vendorMarkers {
		if strings.Contains(module, marker) {
			return true
		}
	}
	switch language {
	case lang.Python:
		if strings.HasPrefix(module, ".") {
			return false
		}
		root := strings.SplitN(module, ".", 2)[0]
		_, ok := pythonExternal[root]
		return ok
	case lang.JavaScript, lang.TypeScript:
		return isExternalJS(module)
	case lang.Go:
		root := strings.SplitN(module, "/", 2)[0]
		if _, ok := goStdlib[root]; ok {
			return true
		}
		// hosted module paths start with a domain
		return strings.Contains(root, ".")
	case lang.PHP:
		root := strings.SplitN(module, "\\", 2)[0]
		_, ok := phpExternal[root]
		return ok
	case lang.Rust:
		root := strings.SplitN(module, "::", 2)[0]
		_, ok := rustExternal[root]
		return ok
	default:
		return false
	}
}

func isExternalJS(module string) bool {
	switch {
	case strings.HasPrefix(module, "."), strings.HasPrefix(module, "/"):
		return false
	case strings.HasPrefix(module, "@/"), strings.HasPrefix(module, "~/"):
		// bundler aliases for project-local sources
		return false
	case strings.HasPrefix(module, "node:"):
		return true
	case strings.HasPrefix(module, "@"):
		// scoped package
		return true
	}
	root := strings.SplitN(module, "/", 2)[0]
	if _, ok := jsExternal[root]; ok {
		return true
	}
	// bare specifiers resolve through node_modules
	return !strings.Contains(root, ":")
}

func rootSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
