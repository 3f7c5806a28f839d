package auth

// CanMutate reports whether the authenticated user may mutate a resource
// created by authorID. Authorship is immutable and is the sole basis for
// mutation rights: there is no co-ownership and no role escalation. A
// mismatch includes the case where the resource's author no longer exists.
func CanMutate(authorID, userID int) bool {
	return authorID == userID
}
