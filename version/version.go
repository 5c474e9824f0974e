package version

// Values injected at build time using the go linker -X option
var (
	GitHash   = "unknown"
	BuildTime = "unknown"
)
