package common

const (
	SrcFileExtension = ".rt"
	ProjectFileName  = "rtos-mod.toml"
	RtosVersion      = "0.1.0"

	// DefaultMaxDepth is the default limit on nested statement contexts
	DefaultMaxDepth = 64
)
