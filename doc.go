// Package jsonschema compiles JSON Schema documents into executable
// validators and rewrites them into smaller, semantically equivalent
// forms.
//
// Design policy:
//   - Keep only public APIs in the root package; put the traversal
//     substrate under internal/.
//   - Place the reduction rules and fixed-point driver under minify/, and
//     the validator compiler and format validators under compile/.
//   - The root package is a thin front door: Compile and Minimize
//     delegate to compile.Compile and minify.Minimize respectively.
//
// Typical usage:
//
//	sch, err := jsonschema.ParseSchemaYAML(raw)
//	validate, err := jsonschema.Compile(sch)
//	ok := validate(doc)
//
//	small, err := jsonschema.Minimize(sch)
package jsonschema
