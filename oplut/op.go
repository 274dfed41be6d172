package oplut

// Op is the fixed-width integer being matched.
type Op uint32

// OpBits is the width of an Op in bits.
const OpBits = 32

// Action is invoked with the caller's context and the value being resolved.
type Action interface {
	Invoke(ctx any, val Op) int
}

// Func adapts an ordinary function to the Action interface.
type Func func(ctx any, val Op) int

func (f Func) Invoke(ctx any, val Op) int {
	return f(ctx, val)
}

// Callback receives the data bound with Bind in addition to the dispatch
// context and the value.
type Callback func(data, ctx any, val Op) int

type bound struct {
	cb   Callback
	data any
}

func (b *bound) Invoke(ctx any, val Op) int {
	return b.cb(b.data, ctx, val)
}

// Bind returns an Action calling cb with the given data.
func Bind(cb Callback, data any) Action {
	return &bound{cb: cb, data: data}
}

// Nop is an Action that does nothing and returns 0.
var Nop Action = Func(func(any, Op) int { return 0 })

// Pattern describes the values with val&Mask == Value&Mask.
type Pattern struct {
	Value  Op
	Mask   Op
	Action Action
}

// Matches reports whether val satisfies the pattern.
func (p *Pattern) Matches(val Op) bool {
	return val&p.Mask == p.Value&p.Mask
}
