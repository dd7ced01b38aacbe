package treesit

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	bashlang "github.com/smacker/go-tree-sitter/bash"
	clang "github.com/smacker/go-tree-sitter/c"
	cpplang "github.com/smacker/go-tree-sitter/cpp"
	golang "github.com/smacker/go-tree-sitter/golang"
	jslang "github.com/smacker/go-tree-sitter/javascript"
	lualang "github.com/smacker/go-tree-sitter/lua"
	python "github.com/smacker/go-tree-sitter/python"
	ruby "github.com/smacker/go-tree-sitter/ruby"
	rust "github.com/smacker/go-tree-sitter/rust"
	toml "github.com/smacker/go-tree-sitter/toml"
	tsxlang "github.com/smacker/go-tree-sitter/typescript/tsx"
	tslang "github.com/smacker/go-tree-sitter/typescript/typescript"
	yaml "github.com/smacker/go-tree-sitter/yaml"
	tsjson "github.com/tree-sitter/tree-sitter-json/bindings/go"
)

// Language describes one tree-sitter grammar and its indentation table.
type Language struct {
	Name    string
	Classes Classes
	// Comments lists the comment node kinds. A continuation whose first
	// content is a comment does not indent.
	Comments KindSet
	// Dedent lists the keywords that pull their line back one level.
	Dedent []string
	// IndentUnit is the width of one level in spaces.
	IndentUnit int
	// Strict makes any error node a parse failure. Otherwise only a tree
	// with nothing recovered fails.
	Strict bool

	// KeyStrings styles strings that are mapping keys as types.
	KeyStrings      bool
	FunctionContext KindSet
	TypeContext     KindSet

	load func() *sitter.Language
}

// Go node kinds.
const (
	goBlock                NodeKind = "block"
	goLiteralValue         NodeKind = "literal_value"
	goFieldDeclList        NodeKind = "field_declaration_list"
	goInterfaceType        NodeKind = "interface_type"
	goExprSwitch           NodeKind = "expression_switch_statement"
	goTypeSwitch           NodeKind = "type_switch_statement"
	goSelect               NodeKind = "select_statement"
	goArgumentList         NodeKind = "argument_list"
	goParameterList        NodeKind = "parameter_list"
	goParenExpr            NodeKind = "parenthesized_expression"
	goImportSpecList       NodeKind = "import_spec_list"
	goVarDecl              NodeKind = "var_declaration"
	goConstDecl            NodeKind = "const_declaration"
	goComment              NodeKind = "comment"
	goFunctionDeclaration  NodeKind = "function_declaration"
	goMethodDeclaration    NodeKind = "method_declaration"
	goCallExpression       NodeKind = "call_expression"
	goSelectorExpression   NodeKind = "selector_expression"
	goTypeSpec             NodeKind = "type_spec"
	goTypeDeclaration      NodeKind = "type_declaration"
	goParameterDeclaration NodeKind = "parameter_declaration"
)

// Python node kinds.
const (
	pyFunctionDefinition NodeKind = "function_definition"
	pyClassDefinition    NodeKind = "class_definition"
	pyIf                 NodeKind = "if_statement"
	pyFor                NodeKind = "for_statement"
	pyWhile              NodeKind = "while_statement"
	pyWith               NodeKind = "with_statement"
	pyTry                NodeKind = "try_statement"
	pyMatch              NodeKind = "match_statement"
	pyCaseClause         NodeKind = "case_clause"
	pyDecorated          NodeKind = "decorated_definition"
	pyArgumentList       NodeKind = "argument_list"
	pyParameters         NodeKind = "parameters"
	pyTuple              NodeKind = "tuple"
	pyList               NodeKind = "list"
	pyDictionary         NodeKind = "dictionary"
	pySet                NodeKind = "set"
	pyParenExpr          NodeKind = "parenthesized_expression"
	pyImportFrom         NodeKind = "import_from_statement"
	pyComment            NodeKind = "comment"
	pyCall               NodeKind = "call"
)

// Ruby node kinds.
const (
	rbIf             NodeKind = "if"
	rbUnless         NodeKind = "unless"
	rbWhile          NodeKind = "while"
	rbUntil          NodeKind = "until"
	rbFor            NodeKind = "for"
	rbCase           NodeKind = "case"
	rbMethod         NodeKind = "method"
	rbSingletonMeth  NodeKind = "singleton_method"
	rbClass          NodeKind = "class"
	rbSingletonClass NodeKind = "singleton_class"
	rbModule         NodeKind = "module"
	rbBegin          NodeKind = "begin"
	rbDoBlock        NodeKind = "do_block"
	rbBlock          NodeKind = "block"
	rbHash           NodeKind = "hash"
	rbArray          NodeKind = "array"
	rbArgumentList   NodeKind = "argument_list"
	rbParameters     NodeKind = "method_parameters"
	rbParenthesized  NodeKind = "parenthesized_statements"
	rbComment        NodeKind = "comment"
	rbCall           NodeKind = "call"
)

// Rust node kinds.
const (
	rsBlock           NodeKind = "block"
	rsDeclList        NodeKind = "declaration_list"
	rsFieldDeclList   NodeKind = "field_declaration_list"
	rsEnumVariantList NodeKind = "enum_variant_list"
	rsMatchBlock      NodeKind = "match_block"
	rsFieldInitList   NodeKind = "field_initializer_list"
	rsUseList         NodeKind = "use_list"
	rsArguments       NodeKind = "arguments"
	rsParameters      NodeKind = "parameters"
	rsTupleExpr       NodeKind = "tuple_expression"
	rsArrayExpr       NodeKind = "array_expression"
	rsParenExpr       NodeKind = "parenthesized_expression"
	rsTypeArguments   NodeKind = "type_arguments"
	rsLineComment     NodeKind = "line_comment"
	rsBlockComment    NodeKind = "block_comment"
	rsFunctionItem    NodeKind = "function_item"
	rsCallExpression  NodeKind = "call_expression"
	rsFieldExpression NodeKind = "field_expression"
	rsStructItem      NodeKind = "struct_item"
	rsEnumItem        NodeKind = "enum_item"
	rsTraitItem       NodeKind = "trait_item"
	rsTypeItem        NodeKind = "type_item"
)

// C and C++ node kinds.
const (
	cCompound       NodeKind = "compound_statement"
	cFieldDeclList  NodeKind = "field_declaration_list"
	cEnumeratorList NodeKind = "enumerator_list"
	cInitList       NodeKind = "initializer_list"
	cDeclList       NodeKind = "declaration_list"
	cArgumentList   NodeKind = "argument_list"
	cParameterList  NodeKind = "parameter_list"
	cParenExpr      NodeKind = "parenthesized_expression"
	cComment        NodeKind = "comment"
	cFunctionDef    NodeKind = "function_definition"
	cCallExpression NodeKind = "call_expression"
)

// JavaScript and TypeScript node kinds.
const (
	jsStatementBlock   NodeKind = "statement_block"
	jsClassBody        NodeKind = "class_body"
	jsObject           NodeKind = "object"
	jsObjectPattern    NodeKind = "object_pattern"
	jsSwitchBody       NodeKind = "switch_body"
	jsArguments        NodeKind = "arguments"
	jsFormalParameters NodeKind = "formal_parameters"
	jsArray            NodeKind = "array"
	jsParenExpr        NodeKind = "parenthesized_expression"
	jsNamedImports     NodeKind = "named_imports"
	jsTemplateString   NodeKind = "template_string"
	jsComment          NodeKind = "comment"
	jsFunctionDecl     NodeKind = "function_declaration"
	jsMethodDef        NodeKind = "method_definition"
	jsCallExpression   NodeKind = "call_expression"
	jsMemberExpression NodeKind = "member_expression"
	jsClassDecl        NodeKind = "class_declaration"
	tsObjectType       NodeKind = "object_type"
	tsInterfaceBody    NodeKind = "interface_body"
	tsEnumBody         NodeKind = "enum_body"
	tsTypeArguments    NodeKind = "type_arguments"
	tsTypeAnnotation   NodeKind = "type_annotation"
	tsInterfaceDecl    NodeKind = "interface_declaration"
	tsTypeAliasDecl    NodeKind = "type_alias_declaration"
)

// Bash node kinds.
const (
	shIf         NodeKind = "if_statement"
	shDoGroup    NodeKind = "do_group"
	shCompound   NodeKind = "compound_statement"
	shCase       NodeKind = "case_statement"
	shSubshell   NodeKind = "subshell"
	shArray      NodeKind = "array"
	shComment    NodeKind = "comment"
	shFunction   NodeKind = "function_definition"
	shCommandNam NodeKind = "command_name"
)

// JSON, YAML and TOML node kinds.
const (
	jsonObject      NodeKind = "object"
	jsonArray       NodeKind = "array"
	jsonComment     NodeKind = "comment"
	yamlMappingPair NodeKind = "block_mapping_pair"
	yamlSeqItem     NodeKind = "block_sequence_item"
	yamlFlowMapping NodeKind = "flow_mapping"
	yamlFlowSeq     NodeKind = "flow_sequence"
	yamlComment     NodeKind = "comment"
	tomlArray       NodeKind = "array"
	tomlInlineTable NodeKind = "inline_table"
	tomlComment     NodeKind = "comment"
)

// Lua node kinds.
const (
	luaFunctionStmt NodeKind = "function_statement"
	luaFunctionExpr NodeKind = "function"
	luaFunctionName NodeKind = "function_name"
	luaIf           NodeKind = "if_statement"
	luaFor          NodeKind = "for_statement"
	luaWhile        NodeKind = "while_statement"
	luaRepeat       NodeKind = "repeat_statement"
	luaDo           NodeKind = "do_statement"
	luaTable        NodeKind = "tableconstructor"
	luaArguments    NodeKind = "function_arguments"
	luaParameters   NodeKind = "parameter_list"
	luaComment      NodeKind = "comment"
	luaCall         NodeKind = "function_call"
)

var jsClasses = classes(
	[]NodeKind{jsStatementBlock, jsClassBody, jsObject, jsObjectPattern, jsSwitchBody},
	[]NodeKind{jsArguments, jsFormalParameters, jsArray, jsParenExpr, jsNamedImports},
)

var tsClasses = classes(
	[]NodeKind{jsStatementBlock, jsClassBody, jsObject, jsObjectPattern, jsSwitchBody, tsObjectType, tsInterfaceBody, tsEnumBody},
	[]NodeKind{jsArguments, jsFormalParameters, jsArray, jsParenExpr, jsNamedImports, tsTypeArguments},
)

var jsFunctionContext = kinds(jsFunctionDecl, jsMethodDef, jsCallExpression, jsMemberExpression)

var cDedent = []string{"case", "default", "public", "private", "protected"}

var languages = map[string]*Language{
	"go": {
		Name: "go",
		Classes: classes(
			[]NodeKind{goBlock, goLiteralValue, goFieldDeclList, goInterfaceType, goExprSwitch, goTypeSwitch, goSelect},
			[]NodeKind{goArgumentList, goParameterList, goParenExpr, goImportSpecList, goVarDecl, goConstDecl},
		),
		Comments:        kinds(goComment),
		Dedent:          []string{"case", "default"},
		IndentUnit:      4,
		FunctionContext: kinds(goFunctionDeclaration, goMethodDeclaration, goCallExpression, goSelectorExpression),
		TypeContext:     kinds(goTypeSpec, goTypeDeclaration, goParameterDeclaration, goVarDecl),
		load:            golang.GetLanguage,
	},
	"python": {
		Name: "python",
		Classes: classes(
			[]NodeKind{pyFunctionDefinition, pyClassDefinition, pyIf, pyFor, pyWhile, pyWith, pyTry, pyMatch, pyCaseClause},
			[]NodeKind{pyArgumentList, pyParameters, pyTuple, pyList, pyDictionary, pySet, pyParenExpr, pyImportFrom},
		),
		Comments:        kinds(pyComment),
		Dedent:          []string{"else", "elif", "except", "finally"},
		IndentUnit:      4,
		FunctionContext: kinds(pyFunctionDefinition, pyCall, pyDecorated),
		TypeContext:     kinds(pyClassDefinition),
		load:            python.GetLanguage,
	},
	"ruby": {
		Name: "ruby",
		Classes: classes(
			[]NodeKind{rbIf, rbUnless, rbWhile, rbUntil, rbFor, rbCase, rbMethod, rbSingletonMeth, rbClass, rbSingletonClass, rbModule, rbBegin, rbDoBlock, rbBlock, rbHash},
			[]NodeKind{rbArray, rbArgumentList, rbParameters, rbParenthesized},
		),
		Comments:        kinds(rbComment),
		Dedent:          []string{"end", "else", "elsif", "when", "in", "rescue", "ensure"},
		IndentUnit:      2,
		FunctionContext: kinds(rbMethod, rbSingletonMeth, rbCall),
		TypeContext:     kinds(rbClass, rbModule),
		load:            ruby.GetLanguage,
	},
	"rust": {
		Name: "rust",
		Classes: classes(
			[]NodeKind{rsBlock, rsDeclList, rsFieldDeclList, rsEnumVariantList, rsMatchBlock, rsFieldInitList, rsUseList},
			[]NodeKind{rsArguments, rsParameters, rsTupleExpr, rsArrayExpr, rsParenExpr, rsTypeArguments},
		),
		Comments:        kinds(rsLineComment, rsBlockComment),
		IndentUnit:      4,
		FunctionContext: kinds(rsFunctionItem, rsCallExpression, rsFieldExpression),
		TypeContext:     kinds(rsStructItem, rsEnumItem, rsTraitItem, rsTypeItem),
		load:            rust.GetLanguage,
	},
	"c": {
		Name: "c",
		Classes: classes(
			[]NodeKind{cCompound, cFieldDeclList, cEnumeratorList, cInitList},
			[]NodeKind{cArgumentList, cParameterList, cParenExpr},
		),
		Comments:        kinds(cComment),
		Dedent:          cDedent[:2],
		IndentUnit:      4,
		FunctionContext: kinds(cFunctionDef, cCallExpression),
		load:            clang.GetLanguage,
	},
	"cpp": {
		Name: "cpp",
		Classes: classes(
			[]NodeKind{cCompound, cFieldDeclList, cEnumeratorList, cInitList, cDeclList},
			[]NodeKind{cArgumentList, cParameterList, cParenExpr},
		),
		Comments:        kinds(cComment),
		Dedent:          cDedent,
		IndentUnit:      4,
		FunctionContext: kinds(cFunctionDef, cCallExpression),
		load:            cpplang.GetLanguage,
	},
	"javascript": {
		Name:            "javascript",
		Classes:         jsClasses,
		Comments:        kinds(jsComment),
		Dedent:          []string{"case", "default"},
		IndentUnit:      2,
		FunctionContext: jsFunctionContext,
		TypeContext:     kinds(jsClassDecl),
		load:            jslang.GetLanguage,
	},
	"typescript": {
		Name:            "typescript",
		Classes:         tsClasses,
		Comments:        kinds(jsComment),
		Dedent:          []string{"case", "default"},
		IndentUnit:      2,
		FunctionContext: jsFunctionContext,
		TypeContext:     kinds(tsInterfaceDecl, tsTypeAliasDecl, tsTypeAnnotation, jsClassDecl),
		load:            tslang.GetLanguage,
	},
	"tsx": {
		Name:            "tsx",
		Classes:         tsClasses,
		Comments:        kinds(jsComment),
		Dedent:          []string{"case", "default"},
		IndentUnit:      2,
		FunctionContext: jsFunctionContext,
		TypeContext:     kinds(tsInterfaceDecl, tsTypeAliasDecl, tsTypeAnnotation, jsClassDecl),
		load:            tsxlang.GetLanguage,
	},
	"bash": {
		Name: "bash",
		Classes: classes(
			[]NodeKind{shIf, shDoGroup, shCompound, shCase, shSubshell},
			[]NodeKind{shArray},
		),
		Comments:        kinds(shComment),
		Dedent:          []string{"fi", "done", "esac", "else", "elif", "then"},
		IndentUnit:      2,
		FunctionContext: kinds(shFunction, shCommandNam),
		load:            bashlang.GetLanguage,
	},
	"json": {
		Name:       "json",
		Classes:    classes([]NodeKind{jsonObject, jsonArray}, nil),
		Comments:   kinds(jsonComment),
		IndentUnit: 2,
		Strict:     true,
		KeyStrings: true,
		load: func() *sitter.Language {
			return sitter.NewLanguage(tsjson.Language())
		},
	},
	"yaml": {
		Name:       "yaml",
		Classes:    classes([]NodeKind{yamlMappingPair, yamlSeqItem, yamlFlowMapping, yamlFlowSeq}, nil),
		Comments:   kinds(yamlComment),
		IndentUnit: 2,
		load:       yaml.GetLanguage,
	},
	"toml": {
		Name:       "toml",
		Classes:    classes(nil, []NodeKind{tomlArray, tomlInlineTable}),
		Comments:   kinds(tomlComment),
		IndentUnit: 2,
		load:       toml.GetLanguage,
	},
	"lua": {
		Name: "lua",
		Classes: classes(
			[]NodeKind{luaFunctionStmt, luaFunctionExpr, luaIf, luaFor, luaWhile, luaRepeat, luaDo, luaTable},
			[]NodeKind{luaArguments, luaParameters},
		),
		Comments:        kinds(luaComment),
		Dedent:          []string{"end", "else", "elseif", "until"},
		IndentUnit:      2,
		FunctionContext: kinds(luaFunctionStmt, luaFunctionName, luaCall),
		load:            lualang.GetLanguage,
	},
}

// Lookup returns the built-in grammar called name.
func Lookup(name string) (*Language, bool) {
	l, ok := languages[name]
	return l, ok
}

// Languages returns the names of the built-in grammars.
func Languages() []string {
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
