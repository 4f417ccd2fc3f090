package parser

import (
	"github.com/dhamidi/pl0/syms"
	"github.com/dhamidi/pl0/tree"
)

// Start sets of the grammar rules. Recovery sets are built per call
// site by union so that the recovery context always reflects the
// caller's continuation.
var (
	lvalueStart    = NewTokenSet(TokenIdent)
	statementStart = lvalueStart.Union(TokenWhile, TokenIf,
		TokenRead, TokenWrite, TokenCall, TokenBegin, TokenSkip, TokenDo)
	declarationStart = NewTokenSet(TokenConst, TokenType, TokenVar, TokenProcedure)
	blockStart       = declarationStart.Union(TokenBegin)
	constantStart    = NewTokenSet(TokenIdent, TokenNumber, TokenMinus)
	typeStart        = NewTokenSet(TokenIdent, TokenLBracket)
	factorStart      = lvalueStart.Union(TokenNumber, TokenLParen)
	termStart        = factorStart
	expStart         = termStart.Union(TokenPlus, TokenMinus)
	conditionStart   = expStart
)

// Operator sets for expressions.
var (
	relOps  = NewTokenSet(TokenEQ, TokenNE, TokenLT, TokenGT, TokenLE, TokenGE)
	expOps  = NewTokenSet(TokenPlus, TokenMinus)
	termOps = NewTokenSet(TokenStar, TokenSlash)
)

// Program -> Block EOF
func (p *Parser) parseProgram(recoverSet TokenSet) *tree.Program {
	if !p.tokens.BeginRule("Program", blockStart, recoverSet) {
		return nil
	}
	p.table = syms.NewTable()
	mainProc, ok := p.table.AddProcedure("<main>", p.tokens.Pos())
	if !ok {
		p.tokens.fatal("could not add <main> to the symbol table")
		return nil
	}
	locals := p.table.NewScope(mainProc)
	p.table.SetLocal(mainProc, locals)
	block := p.parseBlock(recoverSet)
	p.leaveScope()
	// Nothing can follow end of file, so there is no Expect here.
	p.tokens.EndRule("Program", recoverSet)
	return &tree.Program{Start: block.Pos(), Block: block}
}

// Block -> { Declaration } CompoundStatement
func (p *Parser) parseBlock(recoverSet TokenSet) *tree.Block {
	if !p.tokens.BeginRule("Block", blockStart, recoverSet) {
		pos := p.tokens.Pos()
		return &tree.Block{Start: pos, Body: &tree.BadStmt{Start: pos}, Locals: p.currentScope()}
	}
	var procedures []*tree.ProcedureDecl
	for p.tokens.IsIn(declarationStart) {
		procedures = p.parseDeclaration(procedures, recoverSet.UnionSet(blockStart))
	}
	body := p.parseCompoundStatement(recoverSet)
	p.tokens.EndRule("Block", recoverSet)
	return &tree.Block{Start: body.Pos(), Procedures: procedures, Body: body, Locals: p.currentScope()}
}

// Declaration -> ConstDefList | TypeDefList | VarDeclList | ProcedureDef
func (p *Parser) parseDeclaration(procedures []*tree.ProcedureDecl, recoverSet TokenSet) []*tree.ProcedureDecl {
	p.tokens.BeginRuleNoRecover("Declaration", declarationStart)
	switch {
	case p.tokens.IsMatch(TokenConst):
		p.parseConstDefList(recoverSet)
	case p.tokens.IsMatch(TokenType):
		p.parseTypeDefList(recoverSet)
	case p.tokens.IsMatch(TokenVar):
		p.parseVarDeclList(recoverSet)
	case p.tokens.IsMatch(TokenProcedure):
		procedures = append(procedures, p.parseProcedureDef(recoverSet))
	default:
		p.tokens.fatal("unreachable branch in parseDeclaration")
	}
	p.tokens.EndRule("Declaration", recoverSet)
	return procedures
}

// ConstDefList -> "const" ConstDef { ConstDef }
func (p *Parser) parseConstDefList(recoverSet TokenSet) {
	p.tokens.BeginRuleNoRecover("Constant Definition List", NewTokenSet(TokenConst))
	p.tokens.Match(TokenConst)
	for {
		p.parseConstDef(recoverSet.Union(TokenIdent))
		if !p.tokens.IsMatch(TokenIdent) {
			break
		}
	}
	p.tokens.EndRule("Constant Definition List", recoverSet)
}

// ConstDef -> IDENT "=" Constant ";"
func (p *Parser) parseConstDef(recoverSet TokenSet) {
	if !p.tokens.BeginRule("Constant Definition", NewTokenSet(TokenIdent), recoverSet) {
		return
	}
	name := p.tokens.Name()
	pos := p.tokens.Pos()
	p.tokens.Match(TokenIdent)
	p.tokens.Expect(TokenEQ, constantStart)
	value := p.parseConstant(recoverSet.Union(TokenSemicolon))
	if _, ok := p.table.AddConstant(name, pos, value); !ok {
		p.errors.Error("Constant identifier "+name+" already declared in this scope", pos)
	}
	p.tokens.Expect(TokenSemicolon, recoverSet)
	p.tokens.EndRule("Constant Definition", recoverSet)
}

// Constant -> NUMBER | IDENT | "-" Constant
func (p *Parser) parseConstant(recoverSet TokenSet) tree.ConstExp {
	if !p.tokens.BeginRule("Constant", constantStart, recoverSet) {
		return &tree.BadConst{Start: p.tokens.Pos(), Scope: p.currentScope()}
	}
	var result tree.ConstExp
	switch {
	case p.tokens.IsMatch(TokenNumber):
		result = &tree.NumberConst{Start: p.tokens.Pos(), Scope: p.currentScope(), Value: p.tokens.IntValue()}
		p.tokens.Match(TokenNumber)
	case p.tokens.IsMatch(TokenIdent):
		result = &tree.ConstRef{Start: p.tokens.Pos(), Scope: p.currentScope(), Name: p.tokens.Name()}
		p.tokens.Match(TokenIdent)
	case p.tokens.IsMatch(TokenMinus):
		pos := p.tokens.Pos()
		p.tokens.Match(TokenMinus)
		result = &tree.NegateConst{Start: pos, Scope: p.currentScope(), Operand: p.parseConstant(recoverSet)}
	default:
		p.tokens.fatal("unreachable branch in parseConstant")
		result = &tree.BadConst{Start: p.tokens.Pos(), Scope: p.currentScope()}
	}
	p.tokens.EndRule("Constant", recoverSet)
	return result
}

// TypeDefList -> "type" TypeDef { TypeDef }
func (p *Parser) parseTypeDefList(recoverSet TokenSet) {
	p.tokens.BeginRuleNoRecover("Type Definition List", NewTokenSet(TokenType))
	p.tokens.Match(TokenType)
	for {
		p.parseTypeDef(recoverSet.Union(TokenIdent))
		if !p.tokens.IsMatch(TokenIdent) {
			break
		}
	}
	p.tokens.EndRule("Type Definition List", recoverSet)
}

// TypeDef -> IDENT "=" Type ";"
func (p *Parser) parseTypeDef(recoverSet TokenSet) {
	if !p.tokens.BeginRule("Type Definition", NewTokenSet(TokenIdent), recoverSet) {
		return
	}
	name := p.tokens.Name()
	pos := p.tokens.Pos()
	p.tokens.Match(TokenIdent)
	p.tokens.Expect(TokenEQ, typeStart)
	typ := p.parseType(recoverSet.Union(TokenSemicolon))
	if _, ok := p.table.AddType(name, pos, typ); !ok {
		p.errors.Error("Type identifier "+name+" already declared in this scope", pos)
	}
	p.tokens.Expect(TokenSemicolon, recoverSet)
	p.tokens.EndRule("Type Definition", recoverSet)
}

// Type -> TypeIdentifier | SubrangeType
func (p *Parser) parseType(recoverSet TokenSet) *syms.Type {
	if !p.tokens.BeginRule("Type", typeStart, recoverSet) {
		return syms.ErrorType
	}
	typ := syms.ErrorType
	switch {
	case p.tokens.IsMatch(TokenIdent):
		typ = p.parseTypeIdentifier(recoverSet)
	case p.tokens.IsMatch(TokenLBracket):
		typ = p.parseSubrangeType(recoverSet)
	default:
		p.tokens.fatal("unreachable branch in parseType")
	}
	p.tokens.EndRule("Type", recoverSet)
	return typ
}

// SubrangeType -> "[" Constant ".." Constant "]"
func (p *Parser) parseSubrangeType(recoverSet TokenSet) *syms.Type {
	if !p.tokens.BeginRule("Subrange Type", NewTokenSet(TokenLBracket), recoverSet) {
		return syms.ErrorType
	}
	p.tokens.Match(TokenLBracket)
	lower := p.parseConstant(recoverSet.Union(TokenRange))
	p.tokens.Expect(TokenRange, constantStart)
	upper := p.parseConstant(recoverSet.Union(TokenRBracket))
	p.tokens.Expect(TokenRBracket, recoverSet)
	p.tokens.EndRule("Subrange Type", recoverSet)
	return syms.SubrangeType(lower, upper)
}

// TypeIdentifier -> IDENT
func (p *Parser) parseTypeIdentifier(recoverSet TokenSet) *syms.Type {
	if !p.tokens.BeginRule("Type Identifier", NewTokenSet(TokenIdent), recoverSet) {
		return syms.ErrorType
	}
	name := p.tokens.Name()
	pos := p.tokens.Pos()
	p.tokens.Match(TokenIdent)
	p.tokens.EndRule("Type Identifier", recoverSet)
	return syms.NamedType(name, p.table.Current(), pos)
}

// VarDeclList -> "var" VarDecl { VarDecl }
func (p *Parser) parseVarDeclList(recoverSet TokenSet) {
	p.tokens.BeginRuleNoRecover("Variable Declaration List", NewTokenSet(TokenVar))
	p.tokens.Match(TokenVar)
	for {
		p.parseVarDecl(recoverSet.Union(TokenIdent))
		if !p.tokens.IsMatch(TokenIdent) {
			break
		}
	}
	p.tokens.EndRule("Variable Declaration List", recoverSet)
}

// VarDecl -> IDENT ":" TypeIdentifier ";"
func (p *Parser) parseVarDecl(recoverSet TokenSet) {
	if !p.tokens.BeginRule("Variable Declaration", NewTokenSet(TokenIdent), recoverSet) {
		return
	}
	name := p.tokens.Name()
	pos := p.tokens.Pos()
	p.tokens.Match(TokenIdent)
	p.tokens.Expect(TokenColon, typeStart)
	typ := p.parseTypeIdentifier(recoverSet.Union(TokenSemicolon))
	// Assignable locations always get reference type.
	if _, ok := p.table.AddVariable(name, pos, syms.ReferenceType(typ)); !ok {
		p.errors.Error("Variable identifier "+name+" already declared in this scope", pos)
	}
	p.tokens.Expect(TokenSemicolon, recoverSet)
	p.tokens.EndRule("Variable Declaration", recoverSet)
}

// ProcedureDef -> ProcedureHead "=" Block ";"
func (p *Parser) parseProcedureDef(recoverSet TokenSet) *tree.ProcedureDecl {
	p.tokens.BeginRuleNoRecover("Procedure Definition", NewTokenSet(TokenProcedure))
	// Forgetting the = is a common mistake, so the head's recovery set
	// also covers the tokens that can follow it.
	procEntry := p.parseProcedureHead(recoverSet.Union(TokenEQ).UnionSet(blockStart))
	locals := p.table.NewScope(procEntry)
	p.table.SetLocal(procEntry, locals)
	p.tokens.Expect(TokenEQ, blockStart)
	block := p.parseBlock(recoverSet.Union(TokenSemicolon))
	p.leaveScope()
	p.tokens.Expect(TokenSemicolon, recoverSet)
	p.tokens.EndRule("Procedure Definition", recoverSet)
	return &tree.ProcedureDecl{Name: p.table.Entry(procEntry).Name, Entry: int(procEntry), Block: block}
}

// ProcedureHead -> "procedure" IDENT "(" ")"
func (p *Parser) parseProcedureHead(recoverSet TokenSet) syms.EntryID {
	p.tokens.BeginRuleNoRecover("Procedure Header", NewTokenSet(TokenProcedure))
	p.tokens.Match(TokenProcedure)
	var procEntry syms.EntryID
	if p.tokens.IsMatch(TokenIdent) {
		name := p.tokens.Name()
		pos := p.tokens.Pos()
		entry, ok := p.table.AddProcedure(name, pos)
		if !ok {
			entry = p.table.AddDanglingProcedure(name, pos)
			p.errors.Error("Procedure identifier "+name+" already declared in this scope", pos)
		}
		procEntry = entry
	} else {
		procEntry = p.table.AddDanglingProcedure("<undefined>", p.tokens.Pos())
	}
	p.tokens.Expect(TokenIdent, NewTokenSet(TokenLParen))
	p.tokens.Expect(TokenLParen, NewTokenSet(TokenRParen))
	// Formal parameter lists are always empty for now.
	p.tokens.Expect(TokenRParen, recoverSet)
	p.tokens.EndRule("Procedure Header", recoverSet)
	return procEntry
}

// CompoundStatement -> "begin" StatementList "end"
func (p *Parser) parseCompoundStatement(recoverSet TokenSet) tree.Stmt {
	if !p.tokens.BeginRule("Compound Statement", NewTokenSet(TokenBegin), recoverSet) {
		return &tree.BadStmt{Start: p.tokens.Pos()}
	}
	p.tokens.Match(TokenBegin)
	body := p.parseStatementList(recoverSet.Union(TokenEnd))
	p.tokens.Expect(TokenEnd, recoverSet)
	p.tokens.EndRule("Compound Statement", recoverSet)
	return body
}

// StatementList -> Statement { ";" Statement }
func (p *Parser) parseStatementList(recoverSet TokenSet) *tree.StmtList {
	result := &tree.StmtList{Start: p.tokens.Pos()}
	if !p.tokens.BeginRule("Statement List", statementStart, recoverSet) {
		return result
	}
	result.Add(p.parseStatement(recoverSet.Union(TokenSemicolon)))
	for p.tokens.IsMatch(TokenSemicolon) {
		p.tokens.Match(TokenSemicolon)
		result.Add(p.parseStatement(recoverSet.Union(TokenSemicolon)))
	}
	p.tokens.EndRule("Statement List", recoverSet)
	return result
}

// Statement -> Assignment | While | If | Read | Write | Call
//            | CompoundStatement | Skip | Do
func (p *Parser) parseStatement(recoverSet TokenSet) tree.Stmt {
	if !p.tokens.BeginRule("Statement", statementStart, recoverSet) {
		return &tree.BadStmt{Start: p.tokens.Pos()}
	}
	var result tree.Stmt
	switch p.tokens.Kind() {
	case TokenIdent:
		result = p.parseAssignment(recoverSet)
	case TokenWhile:
		result = p.parseWhileStatement(recoverSet)
	case TokenIf:
		result = p.parseIfStatement(recoverSet)
	case TokenRead:
		result = p.parseReadStatement(recoverSet)
	case TokenWrite:
		result = p.parseWriteStatement(recoverSet)
	case TokenCall:
		result = p.parseCallStatement(recoverSet)
	case TokenBegin:
		result = p.parseCompoundStatement(recoverSet)
	case TokenSkip:
		result = p.parseSkipStatement(recoverSet)
	case TokenDo:
		result = p.parseDoStatement(recoverSet)
	default:
		p.tokens.fatal("unreachable branch in parseStatement")
		result = &tree.BadStmt{Start: p.tokens.Pos()}
	}
	p.tokens.EndRule("Statement", recoverSet)
	return result
}

// Assignment -> LValueList ":=" ConditionList
//
// Targets and values are parsed independently; a count mismatch yields
// one diagnostic and the shorter side is padded with error nodes so
// both lists always come out the same length.
func (p *Parser) parseAssignment(recoverSet TokenSet) tree.Stmt {
	if !p.tokens.BeginRule("Assignment", lvalueStart, recoverSet) {
		pos := p.tokens.Pos()
		return &tree.Assignment{
			Start:   pos,
			LValues: []tree.Expr{&tree.BadExpr{Start: pos}},
			Exps:    []tree.Expr{&tree.BadExpr{Start: pos}},
		}
	}
	// = is a common typo for :=, so lvalue recovery includes it.
	var left, right []tree.Expr
	left = append(left, p.parseLValue(recoverSet.Union(TokenAssign, TokenEQ, TokenComma)))
	pos := p.tokens.Pos()
	for p.tokens.IsMatch(TokenComma) {
		p.tokens.Expect(TokenComma, lvalueStart)
		left = append(left, p.parseLValue(recoverSet.Union(TokenAssign, TokenEQ, TokenComma)))
		pos = p.tokens.Pos()
	}
	p.tokens.Expect(TokenAssign, conditionStart)
	right = append(right, p.parseCondition(recoverSet.Union(TokenComma)))
	for p.tokens.IsMatch(TokenComma) {
		p.tokens.Expect(TokenComma, conditionStart)
		right = append(right, p.parseCondition(recoverSet.Union(TokenComma)))
	}
	if len(left) != len(right) {
		p.errors.Error("number of variables doesn't match number of expressions in assignment", pos)
		for len(left) < len(right) {
			left = append(left, &tree.BadExpr{Start: p.tokens.Pos()})
		}
		for len(right) < len(left) {
			right = append(right, &tree.BadExpr{Start: p.tokens.Pos()})
		}
	}
	p.tokens.EndRule("Assignment", recoverSet)
	return &tree.Assignment{Start: pos, LValues: left, Exps: right}
}

// While -> "while" Condition "do" Statement
func (p *Parser) parseWhileStatement(recoverSet TokenSet) tree.Stmt {
	p.tokens.BeginRuleNoRecover("While Statement", NewTokenSet(TokenWhile))
	pos := p.tokens.Pos()
	p.tokens.Match(TokenWhile)
	cond := p.parseCondition(recoverSet.Union(TokenDo))
	p.tokens.Expect(TokenDo, statementStart)
	body := p.parseStatement(recoverSet)
	p.tokens.EndRule("While Statement", recoverSet)
	return &tree.While{Start: pos, Cond: cond, Body: body}
}

// Do -> "do" DoBranch { "[]" DoBranch } "od"
func (p *Parser) parseDoStatement(recoverSet TokenSet) tree.Stmt {
	p.tokens.BeginRuleNoRecover("Do Statement", NewTokenSet(TokenDo))
	pos := p.tokens.Pos()
	p.tokens.Match(TokenDo)
	var branches []*tree.DoBranch
	branches = append(branches, p.parseDoBranch(recoverSet.Union(TokenSeparator, TokenOd)))
	for p.tokens.IsMatch(TokenSeparator) {
		p.tokens.Match(TokenSeparator)
		branches = append(branches, p.parseDoBranch(recoverSet.Union(TokenSeparator, TokenOd)))
	}
	p.tokens.Expect(TokenOd, recoverSet)
	p.tokens.EndRule("Do Statement", recoverSet)
	return &tree.Do{Start: pos, Branches: branches}
}

// DoBranch -> Condition "then" StatementList [ "exit" ]
func (p *Parser) parseDoBranch(recoverSet TokenSet) *tree.DoBranch {
	p.tokens.BeginRuleNoRecover("Do Branch", conditionStart)
	pos := p.tokens.Pos()
	cond := p.parseCondition(recoverSet.Union(TokenThen))
	p.tokens.Expect(TokenThen, statementStart)
	body := p.parseStatementList(recoverSet.Union(TokenExit))
	exits := false
	if p.tokens.IsMatch(TokenExit) {
		p.tokens.Match(TokenExit)
		exits = true
	}
	p.tokens.EndRule("Do Branch", recoverSet)
	return &tree.DoBranch{Start: pos, Cond: cond, Body: body, Exits: exits}
}

// If -> "if" Condition "then" Statement "else" Statement
func (p *Parser) parseIfStatement(recoverSet TokenSet) tree.Stmt {
	p.tokens.BeginRuleNoRecover("If Statement", NewTokenSet(TokenIf))
	pos := p.tokens.Pos()
	p.tokens.Match(TokenIf)
	cond := p.parseCondition(recoverSet.Union(TokenThen))
	p.tokens.Expect(TokenThen, statementStart)
	thenStmt := p.parseStatement(recoverSet.Union(TokenElse))
	p.tokens.Expect(TokenElse, statementStart)
	elseStmt := p.parseStatement(recoverSet)
	p.tokens.EndRule("If Statement", recoverSet)
	return &tree.If{Start: pos, Cond: cond, Then: thenStmt, Else: elseStmt}
}

// Read -> "read" LValue
//
// A read statement is an assignment of the value read to the variable.
func (p *Parser) parseReadStatement(recoverSet TokenSet) tree.Stmt {
	p.tokens.BeginRuleNoRecover("Read Statement", NewTokenSet(TokenRead))
	p.tokens.Match(TokenRead)
	pos := p.tokens.Pos()
	lval := p.parseLValue(recoverSet)
	p.tokens.EndRule("Read Statement", recoverSet)
	return &tree.Assignment{
		Start:   pos,
		LValues: []tree.Expr{lval},
		Exps:    []tree.Expr{&tree.Read{Start: pos}},
	}
}

// Write -> "write" Exp
func (p *Parser) parseWriteStatement(recoverSet TokenSet) tree.Stmt {
	p.tokens.BeginRuleNoRecover("Write Statement", NewTokenSet(TokenWrite))
	p.tokens.Match(TokenWrite)
	pos := p.tokens.Pos()
	exp := p.parseExp(recoverSet)
	p.tokens.EndRule("Write Statement", recoverSet)
	return &tree.Write{Start: pos, Exp: exp}
}

// Call -> "call" IDENT "(" ")"
func (p *Parser) parseCallStatement(recoverSet TokenSet) tree.Stmt {
	p.tokens.BeginRuleNoRecover("Call Statement", NewTokenSet(TokenCall))
	p.tokens.Match(TokenCall)
	pos := p.tokens.Pos()
	name := "<noid>"
	if p.tokens.IsMatch(TokenIdent) {
		name = p.tokens.Name()
	}
	p.tokens.Expect(TokenIdent, NewTokenSet(TokenLParen))
	p.tokens.Expect(TokenLParen, NewTokenSet(TokenRParen))
	// Actual parameter lists are always empty for now.
	p.tokens.Expect(TokenRParen, recoverSet)
	p.tokens.EndRule("Call Statement", recoverSet)
	return &tree.Call{Start: pos, Name: name}
}

// Skip -> "skip"
func (p *Parser) parseSkipStatement(recoverSet TokenSet) tree.Stmt {
	p.tokens.BeginRuleNoRecover("Skip Statement", NewTokenSet(TokenSkip))
	pos := p.tokens.Pos()
	p.tokens.Match(TokenSkip)
	p.tokens.EndRule("Skip Statement", recoverSet)
	return &tree.Skip{Start: pos}
}

// Condition -> Exp [ RelOp Exp ]
func (p *Parser) parseCondition(recoverSet TokenSet) tree.Expr {
	if !p.tokens.BeginRule("Condition", conditionStart, recoverSet) {
		return &tree.BadExpr{Start: p.tokens.Pos()}
	}
	cond := p.parseExp(recoverSet.UnionSet(relOps))
	if p.tokens.IsIn(relOps) {
		pos := p.tokens.Pos()
		op := p.parseRelOp(recoverSet.UnionSet(expStart))
		right := p.parseExp(recoverSet)
		cond = &tree.Binary{Start: pos, Op: op, Left: cond, Right: right}
	}
	p.tokens.EndRule("Condition", recoverSet)
	return cond
}

// RelOp -> "=" | "!=" | "<" | "<=" | ">" | ">="
func (p *Parser) parseRelOp(recoverSet TokenSet) tree.Operator {
	p.tokens.BeginRuleNoRecover("RelOp", relOps)
	op := tree.OpInvalid
	switch p.tokens.Kind() {
	case TokenEQ:
		op = tree.OpEqual
		p.tokens.Match(TokenEQ)
	case TokenNE:
		op = tree.OpNotEqual
		p.tokens.Match(TokenNE)
	case TokenLT:
		op = tree.OpLess
		p.tokens.Match(TokenLT)
	case TokenLE:
		op = tree.OpLessEqual
		p.tokens.Match(TokenLE)
	case TokenGT:
		op = tree.OpGreater
		p.tokens.Match(TokenGT)
	case TokenGE:
		op = tree.OpGreaterEqual
		p.tokens.Match(TokenGE)
	default:
		p.tokens.fatal("unreachable branch in parseRelOp")
	}
	p.tokens.EndRule("RelOp", recoverSet)
	return op
}

// Exp -> [ "+" | "-" ] Term { ( "+" | "-" ) Term }
func (p *Parser) parseExp(recoverSet TokenSet) tree.Expr {
	if !p.tokens.BeginRule("Expression", expStart, recoverSet) {
		return &tree.BadExpr{Start: p.tokens.Pos()}
	}
	pos := p.tokens.Pos()
	negate := false
	if p.tokens.IsMatch(TokenMinus) {
		negate = true
		p.tokens.Match(TokenMinus)
	} else if p.tokens.IsMatch(TokenPlus) {
		p.tokens.Match(TokenPlus)
	}
	exp := p.parseTerm(recoverSet.UnionSet(expOps))
	if negate {
		exp = &tree.Unary{Start: pos, Op: tree.OpNeg, Operand: exp}
	}
	for p.tokens.IsIn(expOps) {
		op := tree.OpInvalid
		pos = p.tokens.Pos()
		if p.tokens.IsMatch(TokenMinus) {
			op = tree.OpSub
			p.tokens.Match(TokenMinus)
		} else {
			op = tree.OpAdd
			p.tokens.Match(TokenPlus)
		}
		right := p.parseTerm(recoverSet.UnionSet(expOps))
		exp = &tree.Binary{Start: pos, Op: op, Left: exp, Right: right}
	}
	p.tokens.EndRule("Expression", recoverSet)
	return exp
}

// Term -> Factor { ( "*" | "/" ) Factor }
func (p *Parser) parseTerm(recoverSet TokenSet) tree.Expr {
	if !p.tokens.BeginRule("Term", termStart, recoverSet) {
		return &tree.BadExpr{Start: p.tokens.Pos()}
	}
	term := p.parseFactor(recoverSet.UnionSet(termOps))
	for p.tokens.IsIn(termOps) {
		op := tree.OpInvalid
		pos := p.tokens.Pos()
		if p.tokens.IsMatch(TokenStar) {
			op = tree.OpMul
			p.tokens.Match(TokenStar)
		} else {
			op = tree.OpDiv
			p.tokens.Match(TokenSlash)
		}
		right := p.parseFactor(recoverSet.UnionSet(termOps))
		term = &tree.Binary{Start: pos, Op: op, Left: term, Right: right}
	}
	p.tokens.EndRule("Term", recoverSet)
	return term
}

// Factor -> "(" Condition ")" | NUMBER | LValue
func (p *Parser) parseFactor(recoverSet TokenSet) tree.Expr {
	if !p.tokens.BeginRule("Factor", factorStart, recoverSet) {
		return &tree.BadExpr{Start: p.tokens.Pos()}
	}
	var result tree.Expr
	switch {
	case p.tokens.IsMatch(TokenIdent):
		result = p.parseLValue(recoverSet)
	case p.tokens.IsMatch(TokenNumber):
		result = &tree.Number{Start: p.tokens.Pos(), Value: p.tokens.IntValue()}
		p.tokens.Match(TokenNumber)
	case p.tokens.IsMatch(TokenLParen):
		p.tokens.Match(TokenLParen)
		result = p.parseCondition(recoverSet.Union(TokenRParen))
		p.tokens.Expect(TokenRParen, recoverSet)
	default:
		p.tokens.fatal("unreachable branch in parseFactor")
		result = &tree.BadExpr{Start: p.tokens.Pos()}
	}
	p.tokens.EndRule("Factor", recoverSet)
	return result
}

// LValue -> IDENT
func (p *Parser) parseLValue(recoverSet TokenSet) tree.Expr {
	if !p.tokens.BeginRule("LValue", NewTokenSet(TokenIdent), recoverSet) {
		return &tree.BadExpr{Start: p.tokens.Pos()}
	}
	result := &tree.Identifier{Start: p.tokens.Pos(), Name: p.tokens.Name()}
	p.tokens.Match(TokenIdent)
	p.tokens.EndRule("LValue", recoverSet)
	return result
}
