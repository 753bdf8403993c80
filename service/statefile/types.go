package statefile

type service struct {
	path string
}

type StateService interface {
	Path() string
	Write(projectID string) error
	Read() (string, error)
	Clean() error
}
