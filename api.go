package jsonschema

// Validate is a compiled predicate over the JSON value model: it reports
// whether a document satisfies the schema it was compiled from. It never
// returns an error — per §7, validation predicates always resolve to a
// boolean, even when a format validator's underlying library call fails.
type Validate func(doc Value) bool

// compiler and minimizer are injected by the compile and minify
// subpackages via RegisterCompiler/RegisterMinimizer at package init,
// keeping the root package free of an import cycle (compile and minify
// both depend on the root package for Schema/Value).
var (
	compilerImpl  func(*Schema) (Validate, error)
	minimizerImpl func(*Schema) (*Schema, error)
)

// RegisterCompiler wires the compile subpackage's implementation into the
// root package's Compile entry point. It is called from an init function
// in package compile and is not meant to be called by library users.
func RegisterCompiler(fn func(*Schema) (Validate, error)) { compilerImpl = fn }

// RegisterMinimizer wires the minify subpackage's implementation into the
// root package's Minimize entry point, analogous to RegisterCompiler.
func RegisterMinimizer(fn func(*Schema) (*Schema, error)) { minimizerImpl = fn }

// Compile lowers a schema AST into a callable predicate, per §4.6. It
// tolerates cyclic schemas (§4.6.3). Callers should build one Validate per
// Schema and reuse it; see §5 for concurrency guarantees.
func Compile(s *Schema) (Validate, error) {
	if s == nil {
		return nil, &ArgumentError{Name: "s"}
	}
	if compilerImpl == nil {
		return nil, &SchemaConstructionError{Reason: "compile subpackage not linked; import github.com/jsonschema-go/core/compile"}
	}
	return compilerImpl(s)
}

// Minimize rewrites a schema into a structurally smaller, semantically
// equivalent form by applying the reduction rules of §4.4 to a fixed
// point, per §4.5. It never mutates s.
func Minimize(s *Schema) (*Schema, error) {
	if s == nil {
		return nil, &ArgumentError{Name: "s"}
	}
	if minimizerImpl == nil {
		return nil, &SchemaConstructionError{Reason: "minify subpackage not linked; import github.com/jsonschema-go/core/minify"}
	}
	return minimizerImpl(s)
}

// ParseSchemaJSON decodes raw JSON bytes into a schema AST in one step:
// ParseJSON into the value model, then SchemaFromValue.
func ParseSchemaJSON(data []byte) (*Schema, error) {
	v, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return SchemaFromValue(v)
}

// ParseSchemaYAML decodes raw YAML bytes into a schema AST, for the
// common case of schemas authored in YAML (OpenAPI-embedded schemas,
// Kubernetes CRD validation blocks) per §11.
func ParseSchemaYAML(data []byte) (*Schema, error) {
	v, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return SchemaFromValue(v)
}
