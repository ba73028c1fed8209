package repository

// Factory describes access to repositories backed by one storage.
type Factory interface {
	Orders() OrderRepository
}
