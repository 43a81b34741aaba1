package repositories

import "fmt"

// RepositoryContainer holds all repository instances
type RepositoryContainer struct {
	ProductRepo ProductRepository
}

// Validate validates that all repositories are set
func (rc *RepositoryContainer) Validate() error {
	if rc.ProductRepo == nil {
		return fmt.Errorf("product repository is nil")
	}
	return nil
}
