package resolver

type functionKind int

const (
	functionNone functionKind = iota
	functionPlain
	functionMethod
	functionInitializer
	functionLambda
)

// pushFunction enters a function body. Loops outside the function do not
// enclose its break and continue statements, so the loop depth restarts at 0;
// the returned value restores it.
func (r *Resolver) pushFunction(kind functionKind) int {
	r.functions = append(r.functions, kind)
	saved := r.loopDepth
	r.loopDepth = 0
	return saved
}

func (r *Resolver) popFunction(savedLoopDepth int) {
	if len(r.functions) > 0 {
		r.functions = r.functions[:len(r.functions)-1]
	}
	r.loopDepth = savedLoopDepth
}

// currentFunction returns the innermost function kind, or functionNone at top level.
func (r *Resolver) currentFunction() functionKind {
	if len(r.functions) == 0 {
		return functionNone
	}
	return r.functions[len(r.functions)-1]
}

func (r *Resolver) pushLoopContext() {
	r.loopDepth++
}

func (r *Resolver) popLoopContext() {
	if r.loopDepth > 0 {
		r.loopDepth--
	}
}

func (r *Resolver) inLoopContext() bool {
	return r.loopDepth > 0
}

func (r *Resolver) pushMethodContext() {
	r.methodDepth++
}

func (r *Resolver) popMethodContext() {
	if r.methodDepth > 0 {
		r.methodDepth--
	}
}

func (r *Resolver) inMethodContext() bool {
	return r.methodDepth > 0
}
