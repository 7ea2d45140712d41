package hir

import (
	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/source"
)

// exitKind distinguishes why a scope is being unwound, since defer bodies
// only run for the exit kinds their keyword names: Maybe (`?defer`) only on
// a normal exit, Error (`%defer`) only while propagating a `try` failure.
type exitKind uint8

const (
	exitNormal exitKind = iota
	exitError
)

type deferEntry struct {
	kind ast.DeferKind
	body ast.ExprID
}

// loopCtx records a loop's break/continue targets and the defer-scope depth
// at loop entry, so `break`/`continue` (optionally labeled) know how many
// enclosing scopes to unwind through.
type loopCtx struct {
	label          source.Name
	continueTarget BlockID
	breakTarget    BlockID
	scopeDepth     int
}

// Builder lowers one function body at a time into a Func.
type Builder struct {
	file  *ast.File
	bag   *diag.Bag
	names *source.Interner

	f   *Func
	cur BlockID

	scopes [][]deferEntry
	labels map[source.Name]BlockID
	loops  []loopCtx
	locals map[source.Name]LocalID
}

func NewBuilder(file *ast.File, bag *diag.Bag, names *source.Interner) *Builder {
	return &Builder{file: file, bag: bag, names: names}
}

// LowerFn lowers item's body (an ExprBlock) into a Func. Callers must not
// pass an extern prototype (Body == NoExpr).
func (b *Builder) LowerFn(item *ast.Item) *Func {
	b.f = &Func{Name: item.Name}
	b.labels = make(map[source.Name]BlockID)
	b.locals = make(map[source.Name]LocalID)
	b.scopes = nil
	b.loops = nil

	b.f.Entry = b.newBlock()
	b.cur = b.f.Entry

	for _, p := range item.Params {
		local := b.newLocal(p.Name)
		b.locals[p.Name] = local
		b.f.Params = append(b.f.Params, Param{Name: p.Name, Local: local})
	}

	body := b.file.Exprs.Get(item.Body)
	b.pushScope()
	b.lowerStmts(body.Stmts)
	if !b.terminated(b.cur) {
		b.runDefersFrom(len(b.scopes)-1, exitNormal)
		b.setTerm(b.cur, Terminator{Kind: TermReturn, Value: ast.NoExpr})
	}
	b.popScope()
	b.backpatchGotos()
	return b.f
}

func (b *Builder) newBlock() BlockID {
	b.f.Blocks = append(b.f.Blocks, BasicBlock{ID: BlockID(len(b.f.Blocks) + 1)})
	return BlockID(len(b.f.Blocks))
}

func (b *Builder) newLocal(name source.Name) LocalID {
	b.f.NumLocals++
	id := LocalID(b.f.NumLocals)
	if b.f.LocalNames == nil {
		b.f.LocalNames = make(map[LocalID]source.Name)
	}
	b.f.LocalNames[id] = name
	return id
}

func (b *Builder) block(id BlockID) *BasicBlock { return &b.f.Blocks[id-1] }

func (b *Builder) terminated(id BlockID) bool { return b.block(id).Term.Kind != TermInvalid }

func (b *Builder) setTerm(id BlockID, t Terminator) {
	if b.terminated(id) {
		return // already exited (e.g. a `return` already closed this block); drop dead edges
	}
	b.block(id).Term = t
}

func (b *Builder) emit(instr Instr) {
	if b.terminated(b.cur) {
		return // dead code after an unconditional exit; nothing reaches it
	}
	blk := b.block(b.cur)
	blk.Instr = append(blk.Instr, instr)
}

func (b *Builder) pushScope() { b.scopes = append(b.scopes, nil) }

func (b *Builder) popScope() { b.scopes = b.scopes[:len(b.scopes)-1] }

func (b *Builder) recordDefer(kind ast.DeferKind, body ast.ExprID) {
	top := len(b.scopes) - 1
	b.scopes[top] = append(b.scopes[top], deferEntry{kind: kind, body: body})
}

func deferMatches(kind ast.DeferKind, exit exitKind) bool {
	switch kind {
	case ast.DeferUnconditional:
		return true
	case ast.DeferMaybe:
		return exit == exitNormal
	case ast.DeferError:
		return exit == exitError
	default:
		return false
	}
}

// runDefersFrom emits the matching defer bodies of every scope from the top
// down to (and including) depth, innermost scope first and each scope's own
// defers in reverse declaration order — the standard last-declared-first-run
// unwind order.
func (b *Builder) runDefersFrom(depth int, exit exitKind) {
	for i := len(b.scopes) - 1; i >= depth; i-- {
		entries := b.scopes[i]
		for j := len(entries) - 1; j >= 0; j-- {
			if deferMatches(entries[j].kind, exit) {
				b.emit(Instr{Kind: InstrDeferCall, Expr: entries[j].body})
			}
		}
	}
}

// lowerStmts lowers a statement list in the current block, opening a fresh
// (dead) block after any statement that terminates its block when later
// statements in the same list still need somewhere to lower into.
func (b *Builder) lowerStmts(stmts []ast.StmtID) {
	for i, id := range stmts {
		b.lowerStmt(b.file.Stmts.Get(id))
		if b.terminated(b.cur) && i < len(stmts)-1 {
			b.cur = b.newBlock()
		}
	}
}

func (b *Builder) lowerStmt(s *ast.Stmt) {
	switch s.Kind {
	case ast.StmtLet:
		local := b.newLocal(s.Name)
		b.locals[s.Name] = local
		if s.Value.Valid() {
			b.lowerInitInto(s.Value, local, s.Name, s.Type)
		}
	case ast.StmtExpr:
		b.lowerExprStmt(s.Value)
	case ast.StmtReturn:
		b.lowerReturn(s.Value)
	case ast.StmtBreak:
		b.lowerBreak(s)
	case ast.StmtContinue:
		b.lowerContinue(s)
	case ast.StmtDefer:
		b.recordDefer(s.DeferKind, s.Value)
	case ast.StmtLabel:
		b.lowerLabelStmt(s)
	case ast.StmtGoto:
		b.lowerGotoStmt(s)
	}
}

// lowerInitInto lowers a let-binding's initializer. A propagating `try`
// initializer still needs its own error-exit branch; anything else is bound
// opaquely and left for internal/mir to actually evaluate.
func (b *Builder) lowerInitInto(value ast.ExprID, local LocalID, name source.Name, declType ast.TypeExprID) {
	e := b.file.Exprs.Get(value)
	if e.Kind == ast.ExprTry && !e.ElseBody.Valid() {
		ok := b.lowerTryPropagate(e)
		b.emit(Instr{Kind: InstrBind, Expr: e.A, Local: local, Name: name, DeclType: declType})
		b.cur = ok
		return
	}
	b.emit(Instr{Kind: InstrBind, Expr: value, Local: local, Name: name, DeclType: declType})
}

// lowerExprStmt lowers an expression used as a statement. Control-flow
// keywords used directly as statements (if/while/for/switch/block/a
// propagating try) get real basic blocks; the same keywords nested inside
// an arbitrary expression position (e.g. `x + (if c {1} else {2})`) are
// left as a single opaque instruction for internal/mir's typed lowering,
// which needs the full expression tree anyway to assign temporaries.
func (b *Builder) lowerExprStmt(id ast.ExprID) {
	e := b.file.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprComptime:
		b.lowerExprStmt(e.A) // comptime-ness is a Stage-2 evaluation concern, not a block shape
	case ast.ExprInline:
		b.lowerInlineStmt(e.A)
	case ast.ExprBlock:
		b.pushScope()
		b.lowerStmts(e.Stmts)
		if !b.terminated(b.cur) {
			b.runDefersFrom(len(b.scopes)-1, exitNormal)
		}
		b.popScope()
	case ast.ExprIf:
		b.lowerIfStmt(e)
	case ast.ExprWhile:
		b.lowerWhileStmt(e)
	case ast.ExprFor:
		b.lowerForStmt(e)
	case ast.ExprSwitch:
		b.lowerSwitchStmt(e)
	case ast.ExprTry:
		if !e.ElseBody.Valid() {
			ok := b.lowerTryPropagate(e)
			b.cur = ok
			return
		}
		b.emit(Instr{Kind: InstrEval, Expr: id})
	default:
		b.emit(Instr{Kind: InstrEval, Expr: id})
	}
}

// lowerInlineStmt lowers an `inline while`/`inline for`, recording its
// header block in Func.InlineLoops so Stage-2 knows to unroll it at
// compile time instead of emitting a runtime loop. Any other inline-marked
// expression has no loop to unroll, so it lowers exactly like its unwrapped
// form.
func (b *Builder) lowerInlineStmt(id ast.ExprID) {
	e := b.file.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprWhile:
		header := b.lowerWhileStmt(e)
		b.f.InlineLoops = append(b.f.InlineLoops, header)
	case ast.ExprFor:
		header := b.lowerForStmt(e)
		b.f.InlineLoops = append(b.f.InlineLoops, header)
	default:
		b.lowerExprStmt(id)
	}
}

// lowerBody lowers an if/while/for arm's body (an ExprBlock, or a bare
// expression when braces were omitted) inside its own defer scope.
func (b *Builder) lowerBody(id ast.ExprID) {
	e := b.file.Exprs.Get(id)
	b.pushScope()
	if e.Kind == ast.ExprBlock {
		b.lowerStmts(e.Stmts)
	} else {
		b.lowerExprStmt(id)
	}
	if !b.terminated(b.cur) {
		b.runDefersFrom(len(b.scopes)-1, exitNormal)
	}
	b.popScope()
}

// lowerBranchOn lowers a boolean condition directly into a two-way branch,
// recursively splitting `&&`/`||`/`!` into their own blocks so short-circuit
// evaluation never has to materialize an intermediate boolean value.
func (b *Builder) lowerBranchOn(cond ast.ExprID, thenBlk, elseBlk BlockID) {
	e := b.file.Exprs.Get(cond)
	if e.Kind == ast.ExprBinary && e.BinOp == ast.OpBoolAnd {
		mid := b.newBlock()
		b.lowerBranchOn(e.A, mid, elseBlk)
		b.cur = mid
		b.lowerBranchOn(e.B, thenBlk, elseBlk)
		return
	}
	if e.Kind == ast.ExprBinary && e.BinOp == ast.OpBoolOr {
		mid := b.newBlock()
		b.lowerBranchOn(e.A, thenBlk, mid)
		b.cur = mid
		b.lowerBranchOn(e.B, thenBlk, elseBlk)
		return
	}
	if e.Kind == ast.ExprUnary && e.UnOp == ast.OpNot {
		b.lowerBranchOn(e.A, elseBlk, thenBlk)
		return
	}
	b.setTerm(b.cur, Terminator{Kind: TermBranch, Cond: cond, Then: thenBlk, Else: elseBlk})
}

// bindOptional binds an `if`/`while` optional-binding condition's name
// (`if (const x ?= e)`) to a fresh local inside the branch taken when e was
// present, holding e itself; internal/sema resolves the unwrap to e's
// nullable/error-union payload type once that type is known.
func (b *Builder) bindOptional(e *ast.Expr) {
	if !e.Binding.Valid() {
		return
	}
	local := b.newLocal(e.Binding)
	b.locals[e.Binding] = local
	b.emit(Instr{Kind: InstrBind, Expr: e.Cond, Local: local, Name: e.Binding})
}

func (b *Builder) lowerIfStmt(e *ast.Expr) {
	thenBlk := b.newBlock()
	mergeBlk := b.newBlock()
	elseBlk := mergeBlk
	if e.ElseBody.Valid() {
		elseBlk = b.newBlock()
	}
	b.lowerBranchOn(e.Cond, thenBlk, elseBlk)

	b.cur = thenBlk
	b.bindOptional(e)
	b.lowerBody(e.A)
	if !b.terminated(b.cur) {
		b.setTerm(b.cur, Terminator{Kind: TermJump, Target: mergeBlk})
	}

	if e.ElseBody.Valid() {
		b.cur = elseBlk
		b.lowerBody(e.ElseBody)
		if !b.terminated(b.cur) {
			b.setTerm(b.cur, Terminator{Kind: TermJump, Target: mergeBlk})
		}
	}
	b.cur = mergeBlk
}

// lowerWhileStmt lowers `while (cond) [: (cont)] body [else elseBody]` and
// returns its header block, so a caller unwrapping an `inline while` can
// record it in Func.InlineLoops.
func (b *Builder) lowerWhileStmt(e *ast.Expr) BlockID {
	header := b.newBlock()
	bodyBlk := b.newBlock()
	mergeBlk := b.newBlock()
	exitBlk := mergeBlk
	if e.ElseBody.Valid() {
		exitBlk = b.newBlock()
	}

	b.setTerm(b.cur, Terminator{Kind: TermJump, Target: header})
	b.cur = header
	b.lowerBranchOn(e.Cond, bodyBlk, exitBlk)

	b.loops = append(b.loops, loopCtx{continueTarget: header, breakTarget: mergeBlk, scopeDepth: len(b.scopes)})
	b.cur = bodyBlk
	b.bindOptional(e)
	b.lowerBody(e.A)
	if !b.terminated(b.cur) && e.Cont.Valid() {
		b.emit(Instr{Kind: InstrEval, Expr: e.Cont})
	}
	if !b.terminated(b.cur) {
		b.setTerm(b.cur, Terminator{Kind: TermJump, Target: header})
	}
	b.loops = b.loops[:len(b.loops)-1]

	if e.ElseBody.Valid() {
		b.cur = exitBlk
		b.lowerBody(e.ElseBody)
		if !b.terminated(b.cur) {
			b.setTerm(b.cur, Terminator{Kind: TermJump, Target: mergeBlk})
		}
	}
	b.cur = mergeBlk
	return header
}

// lowerForStmt lowers `for (iterable) |elem[, index]| body`. The iterable
// and per-iteration advance/bounds-check are opaque InstrEval slots here:
// they depend on the iterable's resolved type (slice vs array vs range),
// which only internal/sema knows, so Stage-1 only fixes the block shape.
func (b *Builder) lowerForStmt(e *ast.Expr) BlockID {
	header := b.newBlock()
	bodyBlk := b.newBlock()
	mergeBlk := b.newBlock()

	b.emit(Instr{Kind: InstrEval, Expr: e.Cond})
	b.setTerm(b.cur, Terminator{Kind: TermJump, Target: header})

	b.cur = header
	b.lowerBranchOn(e.Cond, bodyBlk, mergeBlk)

	elemLocal := b.newLocal(e.Binding)
	b.locals[e.Binding] = elemLocal
	if e.IndexName.Valid() {
		idxLocal := b.newLocal(e.IndexName)
		b.locals[e.IndexName] = idxLocal
	}

	b.loops = append(b.loops, loopCtx{continueTarget: header, breakTarget: mergeBlk, scopeDepth: len(b.scopes)})
	b.cur = bodyBlk
	b.lowerBody(e.A)
	if !b.terminated(b.cur) {
		b.setTerm(b.cur, Terminator{Kind: TermJump, Target: header})
	}
	b.loops = b.loops[:len(b.loops)-1]

	b.cur = mergeBlk
	return header
}

func (b *Builder) lowerSwitchStmt(e *ast.Expr) {
	mergeBlk := b.newBlock()
	var edges []SwitchEdge
	defaultBlk := NoBlock
	caseBlocks := make([]BlockID, len(e.Cases))

	for i, c := range e.Cases {
		blk := b.newBlock()
		caseBlocks[i] = blk
		if c.Else {
			defaultBlk = blk
			continue
		}
		var plain []ast.ExprID
		for _, v := range c.Values {
			if v.RangeEnd.Valid() {
				edges = append(edges, SwitchEdge{Values: []ast.ExprID{v.Value, v.RangeEnd}, Range: true, Target: blk})
			} else {
				plain = append(plain, v.Value)
			}
		}
		if len(plain) > 0 {
			edges = append(edges, SwitchEdge{Values: plain, Target: blk})
		}
	}
	b.setTerm(b.cur, Terminator{Kind: TermSwitch, Cond: e.Cond, Edges: edges, Default: defaultBlk})

	for i, c := range e.Cases {
		b.cur = caseBlocks[i]
		b.lowerBody(c.Body)
		if !b.terminated(b.cur) {
			b.setTerm(b.cur, Terminator{Kind: TermJump, Target: mergeBlk})
		}
	}
	if defaultBlk == NoBlock {
		// exhaustiveness is sema's job (check-switch-prongs); Stage-1 just
		// has no edge to fall through on if every declared prong was taken.
	}
	b.cur = mergeBlk
}

// lowerTryPropagate lowers a propagating `try expr` (ExprTry with no
// ElseBody): on failure it unwinds every enclosing scope's Error/
// Unconditional defers and returns the error; the returned block is where
// the unwrapped-success path continues.
func (b *Builder) lowerTryPropagate(e *ast.Expr) BlockID {
	okBlk := b.newBlock()
	errBlk := b.newBlock()
	b.emit(Instr{Kind: InstrEval, Expr: e.A})
	b.setTerm(b.cur, Terminator{Kind: TermBranch, Cond: e.A, Then: okBlk, Else: errBlk})

	b.cur = errBlk
	b.runDefersFrom(0, exitError)
	b.setTerm(b.cur, Terminator{Kind: TermReturn, Value: e.A})
	return okBlk
}

func (b *Builder) lowerReturn(value ast.ExprID) {
	if value.Valid() {
		b.emit(Instr{Kind: InstrEval, Expr: value})
	}
	b.runDefersFrom(0, exitNormal)
	b.setTerm(b.cur, Terminator{Kind: TermReturn, Value: value})
}

func (b *Builder) findLoop(label source.Name) *loopCtx {
	for i := len(b.loops) - 1; i >= 0; i-- {
		if !label.Valid() || b.loops[i].label == label {
			return &b.loops[i]
		}
	}
	return nil
}

func (b *Builder) lowerBreak(s *ast.Stmt) {
	loop := b.findLoop(s.Label)
	if loop == nil {
		b.bag.Add(diag.Errorf(diag.CodeLoopControlMisuse, s.Span, "break outside a loop"))
		b.setTerm(b.cur, Terminator{Kind: TermUnreachable})
		return
	}
	if s.Value.Valid() {
		b.emit(Instr{Kind: InstrEval, Expr: s.Value})
	}
	b.runDefersFrom(loop.scopeDepth, exitNormal)
	b.setTerm(b.cur, Terminator{Kind: TermJump, Target: loop.breakTarget})
}

func (b *Builder) lowerContinue(s *ast.Stmt) {
	loop := b.findLoop(s.Label)
	if loop == nil {
		b.bag.Add(diag.Errorf(diag.CodeLoopControlMisuse, s.Span, "continue outside a loop"))
		b.setTerm(b.cur, Terminator{Kind: TermUnreachable})
		return
	}
	b.runDefersFrom(loop.scopeDepth, exitNormal)
	b.setTerm(b.cur, Terminator{Kind: TermJump, Target: loop.continueTarget})
}

func (b *Builder) lowerLabelStmt(s *ast.Stmt) {
	if !b.terminated(b.cur) {
		next := b.newBlock()
		b.setTerm(b.cur, Terminator{Kind: TermJump, Target: next})
		b.cur = next
	}
	b.labels[s.Name] = b.cur
}

// lowerGotoStmt records a forward or backward goto. A backward reference
// (the label already has a block) resolves immediately; a forward one is
// queued for Builder.backpatchGotos. Scope depth is recorded so a later
// pass can reject gotos that cross a defer boundary (spec.md's "goto across
// defers" restriction), which needs the label's own scope depth to compare
// against and so is left to internal/sema once both ends are known.
func (b *Builder) lowerGotoStmt(s *ast.Stmt) {
	if target, ok := b.labels[s.Name]; ok {
		b.setTerm(b.cur, Terminator{Kind: TermJump, Target: target})
		return
	}
	blk := b.block(b.cur)
	b.f.PendingGotos = append(b.f.PendingGotos, Goto{
		Block: b.cur, Index: len(blk.Instr), Label: s.Name, Scope: len(b.scopes),
	})
}

// backpatchGotos resolves every forward goto recorded during lowering
// against the now-complete label table, turning its block into a jump.
// Any goto whose label was never declared stays in PendingGotos for the
// caller to diagnose.
func (b *Builder) backpatchGotos() {
	var unresolved []Goto
	for _, g := range b.f.PendingGotos {
		target, ok := b.labels[g.Label]
		if !ok {
			unresolved = append(unresolved, g)
			continue
		}
		b.setTerm(g.Block, Terminator{Kind: TermJump, Target: target})
	}
	b.f.PendingGotos = unresolved
}
