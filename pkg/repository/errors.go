package repository

import "fmt"

// InvalidCreateRepositoryError is returned when a registry document cannot
// be turned into a repository. Data holds whatever was read before the
// failure so the caller can report it.
type InvalidCreateRepositoryError struct {
	Name string
	Data []byte
	Err  error
}

func (e *InvalidCreateRepositoryError) Error() string {
	return fmt.Sprintf("creating repository for %s: %v", e.Name, e.Err)
}

func (e *InvalidCreateRepositoryError) Unwrap() error {
	return e.Err
}
