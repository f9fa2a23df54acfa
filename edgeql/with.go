package edgeql

// WithNode compiles a set of named sub-builders as `with` bindings and
// a body builder as the statement that follows them, keeping every
// binding's variables and globals in the same shared namespace as the
// rest of the Build call.
type WithNode struct {
	baseNode

	bindings []withBinding
	body     *Builder
}

type withBinding struct {
	name    string
	builder *Builder
}

func newWithNode() *WithNode {
	return &WithNode{baseNode: baseNode{kind: KindWith}}
}

// Bind registers a named binding, compiled and exposed as a `with`
// global other bindings and the body can reference by name.
func (n *WithNode) Bind(name string, b *Builder) *WithNode {
	n.bindings = append(n.bindings, withBinding{name: name, builder: b})
	return n
}

// Body sets the builder whose compiled text becomes this node's text.
func (n *WithNode) Body(b *Builder) *WithNode {
	n.body = b
	return n
}

// Visit runs only the Visit phase of every binding and the body, so the
// outer Build call can see whether any of them requires introspection
// before deciding whether to fetch SchemaInfo. Their Finalize phase
// (where an auto-generated conflict clause would need that SchemaInfo)
// is deferred to this node's own Finalize.
func (n *WithNode) Visit(ctx *BuildContext) error {
	for _, binding := range n.bindings {
		if err := binding.builder.visitNodes(ctx); err != nil {
			return err
		}
		if binding.builder.requiresIntrospection() {
			n.requiresIntrospection = true
		}
	}
	if n.body != nil {
		if err := n.body.visitNodes(ctx); err != nil {
			return err
		}
		if n.body.requiresIntrospection() {
			n.requiresIntrospection = true
		}
	}
	return nil
}

func (n *WithNode) Finalize(ctx *BuildContext) error {
	for _, binding := range n.bindings {
		if err := binding.builder.finalizeNodes(ctx); err != nil {
			return err
		}
		ctx.Globals.AddNamed(binding.name, ReadySubQuery(binding.builder.joinText()))
	}
	if n.body != nil {
		if err := n.body.finalizeNodes(ctx); err != nil {
			return err
		}
		n.buf.WriteString(n.body.joinText())
	}

	if n.nodeCtx.SetAsGlobal {
		name := n.nodeCtx.GlobalName
		if name == "" {
			name = generateVariableName()
		}
		ctx.Globals.AddNamed(name, ReadySubQuery(n.buf.String()))
		n.buf.Reset()
		n.buf.WriteString(name)
	}
	return nil
}

// AsGlobal promotes the finished statement to a `with` binding.
func (n *WithNode) AsGlobal(name string) *WithNode {
	n.nodeCtx.SetAsGlobal = true
	n.nodeCtx.GlobalName = name
	return n
}
