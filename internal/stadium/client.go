package stadium

import "strings"

// Client is the authenticated identity booking operations act on behalf
// of. Authentication itself happens outside the core; by the time a
// Client reaches the registry it is assumed valid.
type Client struct {
	Username string
	Name     string
	Surname  string
}

// Equal reports client identity: a case-insensitive username match.
func (c Client) Equal(other Client) bool {
	return strings.EqualFold(c.Username, other.Username)
}
