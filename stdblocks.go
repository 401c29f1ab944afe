package fbhost

// Standard type tags registered at startup. These are stubs: type tag and
// port introspection are correct, execution behaviour doesn't exist yet.
const (
	TypeSetReset = "E_SR"
	TypeCycle    = "E_CYCLE"
	TypeSwitch   = "E_SWITCH"
)

// RegisterStandardTypes installs the standard stub block types into
// factory.
func RegisterStandardTypes(factory *Factory) {
	factory.RegisterType(TypeSetReset, func() FunctionBlock { return newSetReset() })
	factory.RegisterType(TypeCycle, func() FunctionBlock { return newCycle() })
	factory.RegisterType(TypeSwitch, func() FunctionBlock { return newSwitch() })
}

// setReset is the E_SR stub: one data output, Q.
type setReset struct {
	BaseBlock
}

func newSetReset() *setReset {
	return &setReset{BaseBlock: BaseBlock{Type: TypeSetReset}}
}

func (b *setReset) DataOutput(name string) (Port, bool) {
	if name == "Q" {
		return Port{}, true
	}
	return Port{}, false
}

// cycle is the E_CYCLE stub: one data input, DT.
type cycle struct {
	BaseBlock
}

func newCycle() *cycle {
	return &cycle{BaseBlock: BaseBlock{Type: TypeCycle}}
}

func (b *cycle) DataInput(name string) (Port, bool) {
	if name == "DT" {
		return Port{}, true
	}
	return Port{}, false
}

// switchBlock is the E_SWITCH stub: one data input, G.
type switchBlock struct {
	BaseBlock
}

func newSwitch() *switchBlock {
	return &switchBlock{BaseBlock: BaseBlock{Type: TypeSwitch}}
}

func (b *switchBlock) DataInput(name string) (Port, bool) {
	if name == "G" {
		return Port{}, true
	}
	return Port{}, false
}
