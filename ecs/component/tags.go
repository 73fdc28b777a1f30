package component

// Name is a human readable label used in depth reports.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()

// Label marks the text child that rides along with a demo square.
type Label struct {
	Text string
}

var LabelComponent = NewComponent[Label]()
