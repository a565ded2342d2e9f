package stadium

// Team is a named football team taking part in matches.
type Team struct {
	Name string
}

// Equal reports whether two teams are the same, by exact name.
func (t Team) Equal(other Team) bool { return t.Name == other.Name }
