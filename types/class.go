package types

type Class uint8

const (
	Signed Class = iota
	Unsigned
	Float
)

var classNames = [...]string{
	Signed:   "signed",
	Unsigned: "unsigned",
	Float:    "float",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

func (c Class) IsInteger() bool {
	return c == Signed || c == Unsigned
}
