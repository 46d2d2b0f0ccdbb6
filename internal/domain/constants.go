package domain

const (
	DefaultListenAddress              = "0.0.0.0:8080"
	DefaultObservabilityListenAddress = "0.0.0.0:9090"
	DefaultMaxBodyBytes               = 4 * 1024 * 1024

	// ResponseContentType is set on every rendered response.
	ResponseContentType = "application/json-rpc"

	// ElapsedHeader carries wall-clock time since request receipt. Debug
	// mode only.
	ElapsedHeader = "X-Elapsed-Time"
)

// AcceptedContentTypes are the media type tokens a request content type may
// begin with. Anything else is rejected before envelope logic runs.
var AcceptedContentTypes = []string{
	"application/json-rpc",
	"application/json",
	"application/jsonrequest",
}
