package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symguard/internal/types"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		path string
		want Language
		ok   bool
	}{
		{"internal/server/handler.go", Go, true},
		{"app/models/user.py", Python, true},
		{"scripts/tool.pyw", Python, true},
		{"src/index.js", JavaScript, true},
		{"src/App.jsx", JavaScript, true},
		{"src/util.mjs", JavaScript, true},
		{"src/legacy.cjs", JavaScript, true},
		{"src/api.ts", TypeScript, true},
		{"src/View.tsx", TypeScript, true},
		{"public/index.php", PHP, true},
		{"src/main.rs", Rust, true},
		{"SRC/MAIN.RS", Rust, true},

		{"README.md", "", false},
		{"Makefile", "", false},
		{"dist/app.min.js", "", false},
		{"dist/app.bundle.js", "", false},
		{"api/service.pb.go", "", false},
		{"api/service_gen.go", "", false},
		{"api/models.generated.go", "", false},
		{"proto/service_pb2.py", "", false},
		{"types/globals.d.ts", "", false},
		{"resources/views/home.blade.php", "", false},
	}
	for _, tc := range cases {
		got, ok := Detect(tc.path)
		assert.Equal(t, tc.ok, ok, "path %q", tc.path)
		assert.Equal(t, tc.want, got, "path %q", tc.path)
	}
}

func TestGetAndSupported(t *testing.T) {
	for _, l := range []Language{Go, Python, JavaScript, TypeScript, PHP, Rust} {
		g, ok := Get(l)
		require.True(t, ok, "language %s", l)
		require.NotNil(t, g)
		assert.Equal(t, l, g.Language)
	}
	_, ok := Get(Language("cobol"))
	assert.False(t, ok)
	assert.Len(t, Supported(), 6)
}

// Every definition pattern must expose exactly one capture group, and
// every call pattern must match its Qualified flag. The extractor relies
// on both.
func TestGrammarShapes(t *testing.T) {
	for l, g := range grammars {
		require.NotEmpty(t, g.Definitions, "language %s", l)
		require.NotEmpty(t, g.Calls, "language %s", l)
		require.NotEmpty(t, g.Builtins, "language %s", l)
		require.NotEmpty(t, g.Keywords, "language %s", l)
		require.NotEmpty(t, g.LineComments, "language %s", l)

		for _, d := range g.Definitions {
			assert.Equal(t, 1, d.Re.NumSubexp(), "%s def %s", l, d.Re)
			assert.NotZero(t, d.Kind, "%s def %s", l, d.Re)
		}
		for _, c := range g.Calls {
			want := 1
			if c.Qualified {
				want = 2
			}
			assert.Equal(t, want, c.Re.NumSubexp(), "%s call %s", l, c.Re)
		}
		for _, p := range g.Properties {
			assert.Equal(t, 1, p.NumSubexp(), "%s property %s", l, p)
		}
	}
}

func TestGoDefinitionPatterns(t *testing.T) {
	g, _ := Get(Go)
	cases := []struct {
		line string
		name string
		kind types.SymbolKind
	}{
		{"func Resolve(name string) bool {", "Resolve", types.KindFunction},
		{"func (s *Server) Start(ctx context.Context) error {", "Start", types.KindMethod},
		{"type Config struct {", "Config", types.KindClass},
		{"type Handler interface {", "Handler", types.KindInterface},
		{"type Middleware func(http.Handler) http.Handler", "Middleware", types.KindFunction},
	}
	for _, tc := range cases {
		name, kind, ok := firstDef(g, tc.line)
		require.True(t, ok, "line %q", tc.line)
		assert.Equal(t, tc.name, name, "line %q", tc.line)
		assert.Equal(t, tc.kind, kind, "line %q", tc.line)
	}

	_, _, ok := firstDef(g, "    return resolve(name)")
	assert.False(t, ok)
}

func TestPythonDefinitionPatterns(t *testing.T) {
	g, _ := Get(Python)
	cases := []struct {
		line string
		name string
		kind types.SymbolKind
	}{
		{"class OrderService:", "OrderService", types.KindClass},
		{"class OrderService(BaseService):", "OrderService", types.KindClass},
		{"def process_order(order_id):", "process_order", types.KindFunction},
		{"async def fetch_all():", "fetch_all", types.KindFunction},
		{"    def save(self, order):", "save", types.KindMethod},
		{"    async def load(cls, key):", "load", types.KindMethod},
	}
	for _, tc := range cases {
		name, kind, ok := firstDef(g, tc.line)
		require.True(t, ok, "line %q", tc.line)
		assert.Equal(t, tc.name, name, "line %q", tc.line)
		assert.Equal(t, tc.kind, kind, "line %q", tc.line)
	}
}

func TestTypeScriptDefinitionPatterns(t *testing.T) {
	g, _ := Get(TypeScript)
	cases := []struct {
		line string
		name string
		kind types.SymbolKind
	}{
		{"export interface OrderRepository {", "OrderRepository", types.KindInterface},
		{"type OrderID = string", "OrderID", types.KindInterface},
		{"export enum Status {", "Status", types.KindClass},
		{"export class OrderController {", "OrderController", types.KindClass},
		{"export function findOrderById(id: string) {", "findOrderById", types.KindFunction},
		{"const toSlug = (s: string) => s.toLowerCase()", "toSlug", types.KindFunction},
		{"let retry = async attempt => backoff(attempt)", "retry", types.KindFunction},
	}
	for _, tc := range cases {
		name, kind, ok := firstDef(g, tc.line)
		require.True(t, ok, "line %q", tc.line)
		assert.Equal(t, tc.name, name, "line %q", tc.line)
		assert.Equal(t, tc.kind, kind, "line %q", tc.line)
	}
}

func TestPHPAndRustDefinitionPatterns(t *testing.T) {
	php, _ := Get(PHP)
	name, kind, ok := firstDef(php, "class OrderController extends Controller {")
	require.True(t, ok)
	assert.Equal(t, "OrderController", name)
	assert.Equal(t, types.KindClass, kind)

	name, kind, ok = firstDef(php, "    public function store(Request $request) {")
	require.True(t, ok)
	assert.Equal(t, "store", name)
	assert.Equal(t, types.KindFunction, kind)

	rust, _ := Get(Rust)
	name, kind, ok = firstDef(rust, "pub fn resolve<'a>(name: &'a str) -> bool {")
	require.True(t, ok)
	assert.Equal(t, "resolve", name)
	assert.Equal(t, types.KindFunction, kind)

	name, kind, ok = firstDef(rust, "pub trait Storage {")
	require.True(t, ok)
	assert.Equal(t, "Storage", name)
	assert.Equal(t, types.KindInterface, kind)
}

func TestQualifiedCallPatterns(t *testing.T) {
	g, _ := Get(Go)
	qual, name, ok := firstCall(g, "	fmt.Println(result)")
	require.True(t, ok)
	assert.Equal(t, "fmt", qual)
	assert.Equal(t, "Println", name)

	qual, name, ok = firstCall(g, "	total := computeTotal(items)")
	require.True(t, ok)
	assert.Empty(t, qual)
	assert.Equal(t, "computeTotal", name)

	php, _ := Get(PHP)
	qual, name, ok = firstCall(php, "$order->markShipped();")
	require.True(t, ok)
	assert.Equal(t, "order", qual)
	assert.Equal(t, "markShipped", name)

	qual, name, ok = firstCall(php, "Order::findOrFail($id);")
	require.True(t, ok)
	assert.Equal(t, "Order", qual)
	assert.Equal(t, "findOrFail", name)

	rust, _ := Get(Rust)
	qual, name, ok = firstCall(rust, "    let conn = Pool::acquire(cfg);")
	require.True(t, ok)
	assert.Equal(t, "Pool", qual)
	assert.Equal(t, "acquire", name)
}

func TestDynamicPatterns(t *testing.T) {
	cases := []struct {
		lang Language
		line string
	}{
		{Python, `handler = getattr(obj, "on_" + event)`},
		{Python, `eval(expr)`},
		{JavaScript, `const fn = obj[methodName]();`},
		{JavaScript, `Reflect.apply(target, thisArg, args)`},
		{PHP, `call_user_func($callback, $payload);`},
		{PHP, `$$name = 1;`},
		{Go, `v := reflect.ValueOf(x)`},
		{Go, `m := rv.MethodByName(name)`},
		{Rust, `let p = unsafe { mem::transmute(raw) };`},
	}
	for _, tc := range cases {
		g, ok := Get(tc.lang)
		require.True(t, ok)
		matched := false
		for _, re := range g.Dynamic {
			if re.MatchString(tc.line) {
				matched = true
				break
			}
		}
		assert.True(t, matched, "%s line %q", tc.lang, tc.line)
	}
}

func TestImportLinePatterns(t *testing.T) {
	cases := []struct {
		lang Language
		line string
		want bool
	}{
		{Python, "import os", true},
		{Python, "from collections import defaultdict", true},
		{Python, "result = process(data)", false},
		{JavaScript, `import { render } from "react-dom"`, true},
		{JavaScript, `const express = require("express")`, true},
		{JavaScript, "render(tree)", false},
		{PHP, "use App\\Models\\Order;", true},
		{Rust, "use std::collections::HashMap;", true},
		{Go, `	"net/http"`, true},
	}
	for _, tc := range cases {
		g, ok := Get(tc.lang)
		require.True(t, ok)
		matched := false
		for _, re := range g.ImportLines {
			if re.MatchString(tc.line) {
				matched = true
				break
			}
		}
		assert.Equal(t, tc.want, matched, "%s line %q", tc.lang, tc.line)
	}
}

func TestIsGenericName(t *testing.T) {
	generic := []string{
		"get", "find", "save", "process", "getUser", "findOrderById",
		"set_value", "handleRequest", "isValid", "Create", "DELETE",
	}
	for _, n := range generic {
		assert.True(t, IsGenericName(n), "name %q", n)
	}
	specific := []string{
		"settings", "satisfy", "candelabra", "reconcileLedgerDrift",
		"markShipped", "tokenizeQuery", "onion",
	}
	for _, n := range specific {
		assert.False(t, IsGenericName(n), "name %q", n)
	}
}

// firstDef applies each definition pattern in order, mirroring how the
// extractor walks a line.
func firstDef(g *Grammar, line string) (string, types.SymbolKind, bool) {
	for _, d := range g.Definitions {
		if m := d.Re.FindStringSubmatch(line); m != nil {
			return m[1], d.Kind, true
		}
	}
	return "", "", false
}

func firstCall(g *Grammar, line string) (qualifier, name string, ok bool) {
	for _, c := range g.Calls {
		m := c.Re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if c.Qualified {
			return m[1], m[2], true
		}
		return "", m[1], true
	}
	return "", "", false
}
