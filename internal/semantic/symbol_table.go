package semantic

// Symbol is whatever declaration a name resolves to: a *ast.Variable,
// *ast.Parameter, or *ast.Function.
type Symbol interface{}

// SymbolTable is a single lexical scope: a mapping from name to declaration
// plus a link to the enclosing scope. Grounded on
// CWBudde/go-dws's internal/semantic/symbol_table.go, but unlike DWScript
// this table does not lower names before comparison — GoxLang identifiers
// are case-sensitive (only the Assignment type-string compare in the
// checker is case-insensitive, and that's a types.GoxType comparison, not a
// name lookup).
type SymbolTable struct {
	symbols map[string]Symbol
	outer   *SymbolTable
}

// NewSymbolTable creates a fresh top-level (global) scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]Symbol)}
}

// NewEnclosedSymbolTable creates a child scope nested inside outer.
func NewEnclosedSymbolTable(outer *SymbolTable) *SymbolTable {
	return &SymbolTable{symbols: make(map[string]Symbol), outer: outer}
}

// Define records name in this scope, shadowing any declaration of the same
// name in an enclosing scope.
func (s *SymbolTable) Define(name string, sym Symbol) {
	s.symbols[name] = sym
}

// Resolve looks up name in this scope, then walks outward through enclosing
// scopes. It reports false if name is not declared anywhere in the chain.
func (s *SymbolTable) Resolve(name string) (Symbol, bool) {
	if sym, ok := s.symbols[name]; ok {
		return sym, true
	}
	if s.outer != nil {
		return s.outer.Resolve(name)
	}
	return nil, false
}

// DefinedLocally reports whether name is declared directly in this scope,
// ignoring enclosing scopes.
func (s *SymbolTable) DefinedLocally(name string) bool {
	_, ok := s.symbols[name]
	return ok
}

// IsGlobal reports whether this scope is the outermost (has no outer link).
func (s *SymbolTable) IsGlobal() bool {
	return s.outer == nil
}
