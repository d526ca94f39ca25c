package policy

// Ownable is implemented by every account-scoped row.
type Ownable interface {
	GetUserID() string
}

// Owns reports whether userID owns resource. Resources that do not
// implement Ownable are denied so a missing implementation fails closed.
func Owns(userID string, resource any) bool {
	if userID == "" || resource == nil {
		return false
	}
	ownable, ok := resource.(Ownable)
	if !ok {
		return false
	}
	return ownable.GetUserID() == userID
}

// FilterOwned keeps the rows owned by userID. The hosted backend already
// scopes reads with row level security; this guards the local backend and
// misconfigured policies alike.
func FilterOwned[T any](userID string, rows []T) []T {
	out := rows[:0:0]
	for i := range rows {
		if Owns(userID, &rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}
