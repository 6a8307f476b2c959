// Package resolver performs the static pass that runs between parsing and
// evaluation. It binds every local variable reference to the scope that
// declares it and reports scoping mistakes that can be detected without
// running the program.
package resolver

import (
	"risl/interpreter-go/pkg/ast"
	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/token"
)

// Bindings records, for each resolved reference node, how many scopes lie
// between the reference and the scope that declares the name. References that
// are absent from the table are globals.
type Bindings struct {
	depths map[ast.Node]int
}

func newBindings() *Bindings {
	return &Bindings{depths: make(map[ast.Node]int)}
}

// Depth returns the scope distance recorded for node. Identifier,
// AssignmentExpression and SelfExpression nodes are the only ones recorded.
func (b *Bindings) Depth(node ast.Node) (int, bool) {
	if b == nil {
		return 0, false
	}
	depth, ok := b.depths[node]
	return depth, ok
}

// Len reports how many references have a local binding.
func (b *Bindings) Len() int {
	if b == nil {
		return 0
	}
	return len(b.depths)
}

// Resolver walks programs and fills a Bindings table. A Resolver can be fed
// several programs in turn: it remembers which globals were declared const and
// keeps adding to the same table, which is what an interactive session needs.
type Resolver struct {
	bindings     *Bindings
	globalConsts map[string]bool

	scopes      []*Scope
	diagnostics diag.List
	functions   []functionKind
	loopDepth   int
	methodDepth int
}

// New returns a resolver with an empty binding table.
func New() *Resolver {
	return &Resolver{
		bindings:     newBindings(),
		globalConsts: make(map[string]bool),
	}
}

// Resolve runs a fresh resolver over program.
func Resolve(program *ast.Program) (*Bindings, diag.List) {
	return New().Resolve(program)
}

// Resolve walks program and returns the shared binding table together with
// the diagnostics found in this program.
func (r *Resolver) Resolve(program *ast.Program) (*Bindings, diag.List) {
	r.scopes = nil
	r.diagnostics = nil
	r.functions = nil
	r.loopDepth = 0
	r.methodDepth = 0
	if program != nil {
		r.resolveStatements(program.Body)
	}
	return r.bindings, r.diagnostics
}

func (r *Resolver) report(code diag.Code, pos token.Position, format string, args ...any) {
	r.diagnostics = append(r.diagnostics, diag.New(diag.PhaseResolve, code, pos, format, args...))
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, NewScope())
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) innermost() *Scope {
	if len(r.scopes) == 0 {
		return nil
	}
	return r.scopes[len(r.scopes)-1]
}

// declare adds name to the innermost scope without making it readable yet.
// At top level it only tracks whether the global is const.
func (r *Resolver) declare(name *ast.Identifier, constant bool) {
	scope := r.innermost()
	if scope == nil {
		if constant {
			r.globalConsts[name.Name] = true
		} else {
			delete(r.globalConsts, name.Name)
		}
		return
	}
	if _, exists := scope.LookupLocal(name.Name); exists {
		r.report(diag.DuplicateDeclaration, name.Pos(), "'%s' is already declared in this scope", name.Name)
		return
	}
	scope.Declare(name.Name, constant)
}

func (r *Resolver) define(name string) {
	if scope := r.innermost(); scope != nil {
		scope.Define(name)
	}
}

// bindLocal records the distance from the innermost scope to the scope
// declaring name. Nothing is recorded for globals.
func (r *Resolver) bindLocal(node ast.Node, name string) (*Binding, bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if b, ok := r.scopes[i].LookupLocal(name); ok {
			r.bindings.depths[node] = len(r.scopes) - 1 - i
			return b, true
		}
	}
	return nil, false
}
