package storage

// NotInRepoError indicates the working directory is outside a git repository.
type NotInRepoError struct{}

func (e NotInRepoError) Error() string {
	return "not in a git repository"
}
