package domain

// AccessSession is the authenticated caller, passed explicitly to every flow
type AccessSession struct {
	Subject string
	Roles   []string
	Token   string // access token, пробрасывается во внешний API
}

// HasAnyRole returns true if the session carries at least one of roles
func (s *AccessSession) HasAnyRole(roles ...string) bool {
	for _, have := range s.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Owns returns true if the resource owner matches the session subject
func (s *AccessSession) Owns(ownerID string) bool {
	return s != nil && s.Subject != "" && s.Subject == ownerID
}
