package projectid

import "io"

type service struct {
	entropy io.Reader
}

type GeneratorService interface {
	Generate(prefix string) (string, error)
	Validate(id string) error
}
