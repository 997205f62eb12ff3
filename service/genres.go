package service

type genres interface {
	ListGenres() ([]string, error)
}

// ListGenres service retrieves the distinct genres in the catalog, for the
// genre filter dropdown.
func (s *service) ListGenres() ([]string, error) {
	return s.repo.GetAllGenres()
}
