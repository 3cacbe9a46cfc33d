package api

// Capability is the access level a caller must hold for an endpoint.
type Capability int

const (
	// Public endpoints are open to anonymous callers.
	Public Capability = iota
	// Authenticated endpoints require a valid access token.
	Authenticated
	// Admin endpoints additionally require the admin flag.
	Admin
)

type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
)

// policy is the single table mapping (resource, action) to the required
// capability. It is consulted once per request by the Authorize middleware;
// handlers carry no per-endpoint role checks.
var policy = map[string]Capability{
	"airports:list":         Public,
	"airports:create":       Admin,
	"routes:list":           Public,
	"routes:create":         Admin,
	"airplane-types:list":   Public,
	"airplane-types:create": Admin,
	"airplanes:list":        Public,
	"airplanes:retrieve":    Public,
	"airplanes:create":      Admin,
	"crew:list":             Public,
	"crew:create":           Admin,
	"flights:list":          Public,
	"flights:retrieve":      Public,
	"flights:create":        Admin,
	"orders:list":           Authenticated,
	"orders:create":         Authenticated,
}

// RequiredCapability returns the capability for a (resource, action) pair.
// Unknown pairs default to Admin so a missing table entry can never open an
// endpoint by accident.
func RequiredCapability(resource string, action Action) Capability {
	if cap, ok := policy[resource+":"+string(action)]; ok {
		return cap
	}
	return Admin
}
