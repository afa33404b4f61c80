package types

// SourcePriority orders registered sources. Higher values are probed
// first. The named tiers are conventions; getters may register at any
// integer value and ties preserve registration order.
type SourcePriority int

const (
	PriorityPackage   SourcePriority = 0
	PriorityRemote    SourcePriority = 10
	PriorityLan       SourcePriority = 20
	PriorityLocal     SourcePriority = 30
	PriorityPreferred SourcePriority = 40
)

func (p SourcePriority) String() string {
	switch p {
	case PriorityPackage:
		return "package"
	case PriorityRemote:
		return "remote"
	case PriorityLan:
		return "lan"
	case PriorityLocal:
		return "local"
	case PriorityPreferred:
		return "preferred"
	default:
		return "custom"
	}
}
