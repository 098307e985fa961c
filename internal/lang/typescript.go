package lang

import (
	ts "github.com/smacker/go-tree-sitter/typescript/typescript"
)

func init() {
	register(TypeScript, &Capability{
		Extensions: []string{".ts", ".tsx"},
		Grammar:    ts.GetLanguage,
		Kinds: map[Category][]string{
			CatFunction:  {"function_declaration", "generator_function_declaration"},
			CatAggregate: {"class_declaration", "abstract_class_declaration"},
			CatInterface: {"interface_declaration"},
			CatAlias:     {"type_alias_declaration"},
			CatEnum:      {"enum_declaration"},
			CatConst:     {"lexical_declaration", "variable_declaration"},
		},
		ExportWrapper:        "export_statement",
		Visibility:           jsVisibility,
		ExportGatedConstants: true,
		FunctionValueKinds:   jsFunctionValueKinds,
		Bindings:             jsBindings,
	})
}
