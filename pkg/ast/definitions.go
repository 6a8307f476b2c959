package ast

import "risl/interpreter-go/pkg/token"

// Definitions

type LetStatement struct {
	nodeImpl
	statementMarker

	Name        *Identifier `json:"name"`
	Mutable     bool        `json:"mutable,omitempty"`
	Initializer Expression  `json:"initializer,omitempty"`
}

func NewLetStatement(name *Identifier, mutable bool, initializer Expression, pos token.Position) *LetStatement {
	return &LetStatement{nodeImpl: newNodeImpl(NodeLetStatement, pos), Name: name, Mutable: mutable, Initializer: initializer}
}

type ConstStatement struct {
	nodeImpl
	statementMarker

	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
}

func NewConstStatement(name *Identifier, value Expression, pos token.Position) *ConstStatement {
	return &ConstStatement{nodeImpl: newNodeImpl(NodeConstStatement, pos), Name: name, Value: value}
}

type FunctionDefinition struct {
	nodeImpl
	statementMarker

	ID     *Identifier   `json:"id"`
	Params []*Identifier `json:"params"`
	Body   *Block        `json:"body"`
}

func NewFunctionDefinition(id *Identifier, params []*Identifier, body *Block, pos token.Position) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition, pos), ID: id, Params: params, Body: body}
}

// InitializerName is the method run when a struct type is called.
const InitializerName = "init"

type StructDefinition struct {
	nodeImpl
	statementMarker

	ID      *Identifier           `json:"id"`
	Methods []*FunctionDefinition `json:"methods"`
}

func NewStructDefinition(id *Identifier, methods []*FunctionDefinition, pos token.Position) *StructDefinition {
	return &StructDefinition{nodeImpl: newNodeImpl(NodeStructDefinition, pos), ID: id, Methods: methods}
}
