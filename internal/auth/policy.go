package auth

// MutationPolicy is the per-resource write protection level. The jobs and
// portfolio resources are deliberately public (the site owner wants visitors
// to manage them), the blog is owner-only.
type MutationPolicy int

const (
	PolicyPublic MutationPolicy = iota
	PolicyAuthenticated
	PolicyOwnerOnly
)

func (p MutationPolicy) String() string {
	switch p {
	case PolicyPublic:
		return "public"
	case PolicyAuthenticated:
		return "authenticated"
	case PolicyOwnerOnly:
		return "owner-only"
	default:
		return "unknown"
	}
}

// RequiresSession says whether a mutating request under this policy must
// carry a valid session.
func (p MutationPolicy) RequiresSession() bool {
	return p != PolicyPublic
}

// CanModify decides whether the resolved identity may mutate a record owned
// by ownerID. The whole policy is exact, case-sensitive equality of opaque
// identifiers: no roles, no admin override.
func CanModify(claims *Claims, ownerID string) bool {
	return claims != nil && claims.UserID == ownerID
}
